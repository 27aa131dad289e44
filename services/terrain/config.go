package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/VoidMesh/terrain/services/heightfield"
	"github.com/VoidMesh/terrain/services/noise"
)

// DefaultSeed seeds the terrain noise when none is configured.
const DefaultSeed = 1337

// MinWaterUVTile is the smallest accepted water UV tiling factor.
const MinWaterUVTile = 0.1

// WaterConfig controls the flat water plane emitted as section 2.
type WaterConfig struct {
	Show bool `json:"show" yaml:"show"`
	// Z is the flood level in terrain-local units
	Z float64 `json:"z" yaml:"z"`
	// Padding extends the plane beyond the terrain edge
	Padding float64 `json:"padding" yaml:"padding"`
	UVTile  float64 `json:"uv_tile" yaml:"uv_tile"`
	// ZOffset lifts the rendered plane to avoid z-fighting at shores
	ZOffset float64 `json:"z_offset" yaml:"z_offset"`
}

// SlabConfig controls the build-pad overlay emitted as section 1.
type SlabConfig struct {
	Show    bool    `json:"show" yaml:"show"`
	ZOffset float64 `json:"z_offset" yaml:"z_offset"`
	// Inset shrinks the slab so it stays inside the blended pad edge
	Inset float64 `json:"inset" yaml:"inset"`
}

// DebugConfig controls normal visualization.
type DebugConfig struct {
	DrawNormals  bool    `json:"draw_normals" yaml:"draw_normals"`
	NormalLength float64 `json:"normal_length" yaml:"normal_length"`
	MaxSamples   int     `json:"max_samples" yaml:"max_samples"`
}

// Config is everything a terrain build depends on.
type Config struct {
	Grid         heightfield.GridConfig `json:"grid" yaml:"grid"`
	Seed         int64                  `json:"seed" yaml:"seed"`
	NoiseBackend noise.Backend          `json:"noise_backend" yaml:"noise_backend"`
	// Origin translates terrain-local coordinates into world space
	Origin          mgl64.Vec3  `json:"origin" yaml:"origin"`
	CreateCollision bool        `json:"create_collision" yaml:"create_collision"`
	Workers         int         `json:"workers" yaml:"workers"`
	Water           WaterConfig `json:"water" yaml:"water"`
	Slab            SlabConfig  `json:"slab" yaml:"slab"`
	Debug           DebugConfig `json:"debug" yaml:"debug"`
}

// DefaultConfig returns the stock terrain: default grid, seed 1337, water at
// zero and a slab over the build pad.
func DefaultConfig() Config {
	return Config{
		Grid:            heightfield.DefaultGridConfig(),
		Seed:            DefaultSeed,
		NoiseBackend:    noise.BackendGradient,
		CreateCollision: true,
		Workers:         1,
		Water: WaterConfig{
			Show:    true,
			Z:       0,
			Padding: 200,
			UVTile:  1,
			ZOffset: 0.5,
		},
		Slab: SlabConfig{
			Show:    true,
			ZOffset: 1,
			Inset:   20,
		},
		Debug: DebugConfig{
			DrawNormals:  true,
			NormalLength: 300,
			MaxSamples:   512,
		},
	}
}

// Validate checks the grid and the noise backend name.
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if _, err := noise.ParseBackend(string(c.NoiseBackend)); err != nil {
		return fmt.Errorf("%w: %v", heightfield.ErrInvalidConfig, err)
	}
	return nil
}

// Normalize clamps tolerant fields and resolves the backend name.
func (c Config) Normalize() Config {
	c.Grid = c.Grid.Normalize()
	if backend, err := noise.ParseBackend(string(c.NoiseBackend)); err == nil {
		c.NoiseBackend = backend
	}
	if c.Water.UVTile < MinWaterUVTile {
		c.Water.UVTile = MinWaterUVTile
	}
	if c.Water.Padding < 0 {
		c.Water.Padding = 0
	}
	if c.Slab.Inset < 0 {
		c.Slab.Inset = 0
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Debug.MaxSamples <= 0 {
		c.Debug.MaxSamples = 512
	}
	return c
}
