package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/quadsim/internal/compute"
	"github.com/san-kum/quadsim/internal/quad"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Segments != 400000 {
		t.Errorf("expected 400000 segments, got %d", cfg.Segments)
	}
	if cfg.Threshold != compute.DecisionThreshold {
		t.Errorf("expected threshold %d, got %d", compute.DecisionThreshold, cfg.Threshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"odd segments", func(c *Config) { c.Segments = 401 }, quad.ErrConfiguration},
		{"reversed bounds", func(c *Config) { c.Left, c.Right = 10, 1 }, quad.ErrConfiguration},
		{"non-positive left", func(c *Config) { c.Left = 0 }, quad.ErrDomain},
		{"zero runs", func(c *Config) { c.Runs = 0 }, quad.ErrConfiguration},
		{"zero threshold", func(c *Config) { c.Threshold = 0 }, quad.ErrConfiguration},
		{"unknown accelerator", func(c *Config) { c.Accelerator = "tpu" }, quad.ErrConfiguration},
		{"empty grid", func(c *Config) { c.Emulator = compute.Grid{} }, quad.ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadsim.yaml")

	cfg := DefaultConfig()
	cfg.Segments = 1000
	cfg.Accelerator = compute.DeviceEmulated
	cfg.Emulator = compute.Grid{Blocks: 8, Threads: 32}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("segments: 2000\naccelerator: none\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Segments != 2000 {
		t.Errorf("expected 2000 segments, got %d", loaded.Segments)
	}
	if loaded.Accelerator != compute.DeviceNone {
		t.Errorf("expected accelerator none, got %s", loaded.Accelerator)
	}
	if loaded.Runs != DefaultRuns || loaded.Emulator != compute.DefaultGrid() {
		t.Errorf("unset fields should keep defaults, got %+v", loaded)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Segments != 1000 {
		t.Errorf("expected 1000 segments, got %d", cfg.Segments)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := DefaultConfig()
		cfg.Apply(GetPreset(name))
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestPresetsStraddleThreshold(t *testing.T) {
	if compute.Select(GetPreset("boundary").Segments) != compute.ChooseCPU {
		t.Error("boundary preset should select cpu")
	}
	if compute.Select(GetPreset("crossover").Segments) != compute.ChooseAccelerator {
		t.Error("crossover preset should select accelerator")
	}
}

func TestListPresets_Sorted(t *testing.T) {
	names := ListPresets()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("presets not sorted: %v", names)
		}
	}
}
