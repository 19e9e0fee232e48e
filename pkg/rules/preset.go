package rules

import (
	"slices"

	"github.com/matzehuels/boogie/pkg/errors"
	"github.com/matzehuels/boogie/pkg/palette"
)

// DefaultPreset is used when no preset is named.
const DefaultPreset = "victory"

type preset struct {
	description string
	build       func() *Config
}

var presets = map[string]preset{
	"victory": {
		description: "tan recoloring, controlled stripes and dots",
		build:       DefaultConfig,
	},
	"classic": {
		description: "near-black recoloring, controlled stripes and dots",
		build: func() *Config {
			cfg := DefaultConfig()
			cfg.ColorChange.Palette = slices.Clone(palette.Ink)
			return cfg
		},
	},
	"nostripes": {
		description: "recoloring and dots without stripes",
		build: func() *Config {
			cfg := DefaultConfig()
			cfg.Rules = []string{NameColorChange, NameDot}
			return cfg
		},
	},
}

// Preset returns a fresh copy of the named configuration.
func Preset(name string) (*Config, error) {
	if name == "" {
		name = DefaultPreset
	}
	p, ok := presets[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidPreset, "unknown preset %q (available: %v)", name, PresetNames())
	}
	return p.build(), nil
}

// PresetNames returns the preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// PresetDescription returns the one-line summary of a preset, or "" if
// it does not exist.
func PresetDescription(name string) string {
	return presets[name].description
}
