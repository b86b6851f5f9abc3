package config

import (
	"sort"

	"github.com/san-kum/quadsim/internal/compute"
)

var Presets = map[string]*Config{
	"default":   {Left: DefaultLeft, Right: DefaultRight, Segments: DefaultSegments, Runs: DefaultRuns},
	"small":     {Left: DefaultLeft, Right: DefaultRight, Segments: 1000, Runs: 100},
	"boundary":  {Left: DefaultLeft, Right: DefaultRight, Segments: compute.DecisionThreshold - 2, Runs: 50},
	"crossover": {Left: DefaultLeft, Right: DefaultRight, Segments: compute.DecisionThreshold, Runs: 50},
	"large":     {Left: DefaultLeft, Right: DefaultRight, Segments: 4000000, Runs: 5},
	"wide":      {Left: 1, Right: 1e6, Segments: 2000000, Runs: 5},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
