package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/quadsim/internal/compute"
	"github.com/san-kum/quadsim/internal/quad"
)

const (
	DefaultLeft     = quad.DefaultLeft
	DefaultRight    = quad.DefaultRight
	DefaultSegments = quad.DefaultSegments
	DefaultRuns     = 10
	DefaultLogLevel = "warn"
	DefaultDataDir  = ".quadsim"
)

type Config struct {
	Left        float64      `yaml:"left"`
	Right       float64      `yaml:"right"`
	Segments    int          `yaml:"segments"`
	Runs        int          `yaml:"runs"`
	Threshold   int          `yaml:"threshold"`
	Accelerator string       `yaml:"accelerator"`
	Fallback    bool         `yaml:"fallback"`
	Emulator    compute.Grid `yaml:"emulator"`
	LogLevel    string       `yaml:"log_level"`
	DataDir     string       `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Left:        quad.Default.Left(),
		Right:       quad.Default.Right(),
		Segments:    quad.Default.Segments(),
		Runs:        DefaultRuns,
		Threshold:   compute.DecisionThreshold,
		Accelerator: compute.DeviceAuto,
		Fallback:    true,
		Emulator:    compute.DefaultGrid(),
		LogLevel:    DefaultLogLevel,
		DataDir:     DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params builds the validated integration problem described by c.
func (c *Config) Params() (quad.Params, error) {
	return quad.NewParams(c.Left, c.Right, c.Segments)
}

// Validate checks every field that is not covered by Params.
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}
	if c.Runs < 1 {
		return &quad.ConfigurationError{Field: "runs", Value: c.Runs, Reason: "must be at least 1"}
	}
	if c.Threshold < 1 {
		return &quad.ConfigurationError{Field: "threshold", Value: c.Threshold, Reason: "must be positive"}
	}
	if !slices.Contains(compute.DeviceKinds, c.Accelerator) {
		return &quad.ConfigurationError{Field: "accelerator", Value: c.Accelerator, Reason: fmt.Sprintf("must be one of %v", compute.DeviceKinds)}
	}
	if !c.Emulator.Valid() {
		return &quad.ConfigurationError{Field: "emulator", Value: c.Emulator, Reason: "blocks and threads must be positive"}
	}
	return nil
}

// Apply copies the problem fields of a preset onto c.
func (c *Config) Apply(p *Config) {
	c.Left = p.Left
	c.Right = p.Right
	c.Segments = p.Segments
	if p.Runs > 0 {
		c.Runs = p.Runs
	}
}
