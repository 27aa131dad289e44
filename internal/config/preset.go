package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/VoidMesh/terrain/services/noise"
	"github.com/VoidMesh/terrain/services/scatter"
	"github.com/VoidMesh/terrain/services/terrain"
)

// Preset is the YAML document describing a terrain and its default scatter
// batches. Fields missing from the file keep their defaults.
type Preset struct {
	Terrain terrain.Config `yaml:"terrain"`
	Scatter ScatterPreset  `yaml:"scatter"`
}

// ScatterPreset holds the placer options and the batches run by default.
type ScatterPreset struct {
	Options  scatter.Options        `yaml:"options"`
	Requests []scatter.SpawnRequest `yaml:"requests"`
}

type rawPreset struct {
	Terrain yaml.Node `yaml:"terrain"`
	Scatter struct {
		Options  yaml.Node   `yaml:"options"`
		Requests []yaml.Node `yaml:"requests"`
	} `yaml:"scatter"`
}

// DefaultPreset is the stock terrain with default placer options and no
// scatter batches.
func DefaultPreset() Preset {
	return Preset{
		Terrain: terrain.DefaultConfig(),
		Scatter: ScatterPreset{Options: scatter.DefaultOptions()},
	}
}

// ParsePreset decodes a YAML preset over DefaultPreset. Every request is
// decoded over DefaultSpawnRequest so unset windows stay unconstrained.
func ParsePreset(data []byte) (Preset, error) {
	preset := DefaultPreset()

	var raw rawPreset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Preset{}, fmt.Errorf("failed to parse preset: %w", err)
	}

	if !raw.Terrain.IsZero() {
		if err := raw.Terrain.Decode(&preset.Terrain); err != nil {
			return Preset{}, fmt.Errorf("failed to decode terrain section: %w", err)
		}
	}
	if !raw.Scatter.Options.IsZero() {
		if err := raw.Scatter.Options.Decode(&preset.Scatter.Options); err != nil {
			return Preset{}, fmt.Errorf("failed to decode scatter options: %w", err)
		}
	}

	for i := range raw.Scatter.Requests {
		req := scatter.DefaultSpawnRequest("")
		if err := raw.Scatter.Requests[i].Decode(&req); err != nil {
			return Preset{}, fmt.Errorf("failed to decode scatter request %d: %w", i, err)
		}
		preset.Scatter.Requests = append(preset.Scatter.Requests, req)
	}

	if err := preset.Terrain.Validate(); err != nil {
		return Preset{}, err
	}
	return preset, nil
}

// LoadPreset reads and parses the preset file at path.
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("failed to read preset %s: %w", path, err)
	}
	return ParsePreset(data)
}

// ResolvePreset loads the configured preset, or the default one when no
// file is set, and applies the environment overrides.
func (c TerrainConfig) ResolvePreset() (Preset, error) {
	preset := DefaultPreset()
	if c.PresetFile != "" {
		loaded, err := LoadPreset(c.PresetFile)
		if err != nil {
			return Preset{}, err
		}
		preset = loaded
	}

	if c.Seed != nil {
		preset.Terrain.Seed = *c.Seed
	}
	if c.NoiseBackend != "" {
		preset.Terrain.NoiseBackend = noise.Backend(c.NoiseBackend)
	}
	if c.QuadsX > 0 {
		preset.Terrain.Grid.QuadsX = c.QuadsX
	}
	if c.QuadsY > 0 {
		preset.Terrain.Grid.QuadsY = c.QuadsY
	}
	if c.Workers > 0 {
		preset.Terrain.Workers = c.Workers
	}
	if c.ScatterSeed != nil {
		preset.Scatter.Options.Seed = *c.ScatterSeed
	}

	if err := preset.Terrain.Validate(); err != nil {
		return Preset{}, err
	}
	return preset, nil
}
