package heightfield

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidConfig is wrapped by every GridConfig validation failure.
var ErrInvalidConfig = errors.New("invalid grid configuration")

// MinFalloff is the floor applied to the flatten falloff distance.
const MinFalloff = 1.0

// FlattenRegion describes a rectangular pad blended toward a constant height.
// Center and Size are in terrain-local units.
type FlattenRegion struct {
	Enabled bool       `json:"enabled" yaml:"enabled"`
	Center  mgl64.Vec2 `json:"center" yaml:"center"`
	Size    mgl64.Vec2 `json:"size" yaml:"size"`
	Height  float64    `json:"height" yaml:"height"`
	Falloff float64    `json:"falloff" yaml:"falloff"`
}

// HalfExtents returns half the pad size on each axis.
func (f FlattenRegion) HalfExtents() (float64, float64) {
	return 0.5 * f.Size.X(), 0.5 * f.Size.Y()
}

// GridConfig holds every parameter a grid build depends on. Changing any
// field invalidates a built height cache.
type GridConfig struct {
	QuadsX       int           `json:"quads_x" yaml:"quads_x"`
	QuadsY       int           `json:"quads_y" yaml:"quads_y"`
	Spacing      float64       `json:"spacing" yaml:"spacing"`
	Amplitude    float64       `json:"amplitude" yaml:"amplitude"`
	Octaves      int           `json:"octaves" yaml:"octaves"`
	Lacunarity   float64       `json:"lacunarity" yaml:"lacunarity"`
	Persistence  float64       `json:"persistence" yaml:"persistence"`
	FeatureScale float64       `json:"feature_scale" yaml:"feature_scale"`
	NoiseOffset  mgl64.Vec2    `json:"noise_offset" yaml:"noise_offset"`
	Flatten      FlattenRegion `json:"flatten" yaml:"flatten"`
}

// DefaultGridConfig returns the stock 200x200 terrain with a 50m build pad.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		QuadsX:       200,
		QuadsY:       200,
		Spacing:      100,
		Amplitude:    1200,
		Octaves:      4,
		Lacunarity:   2.0,
		Persistence:  0.45,
		FeatureScale: 0.0125,
		// Small offsets keep samples off the lattice corners
		NoiseOffset: mgl64.Vec2{37.123, 53.789},
		Flatten: FlattenRegion{
			Enabled: true,
			Center:  mgl64.Vec2{0, 0},
			Size:    mgl64.Vec2{5000, 5000},
			Height:  0,
			Falloff: 800,
		},
	}
}

// Validate rejects configurations that cannot describe a grid.
func (c GridConfig) Validate() error {
	switch {
	case c.QuadsX < 1 || c.QuadsY < 1:
		return fmt.Errorf("%w: quad counts must be >= 1, got %dx%d", ErrInvalidConfig, c.QuadsX, c.QuadsY)
	case !(c.Spacing > 0):
		return fmt.Errorf("%w: grid spacing must be > 0, got %v", ErrInvalidConfig, c.Spacing)
	case c.Octaves < 1:
		return fmt.Errorf("%w: octaves must be >= 1, got %d", ErrInvalidConfig, c.Octaves)
	case !(c.Lacunarity > 0):
		return fmt.Errorf("%w: lacunarity must be > 0, got %v", ErrInvalidConfig, c.Lacunarity)
	case !(c.FeatureScale > 0):
		return fmt.Errorf("%w: feature scale must be > 0, got %v", ErrInvalidConfig, c.FeatureScale)
	}
	return nil
}

// Normalize clamps the tolerant fields: persistence into [0,1] and the
// flatten falloff to at least MinFalloff.
func (c GridConfig) Normalize() GridConfig {
	if c.Persistence < 0 {
		c.Persistence = 0
	} else if c.Persistence > 1 {
		c.Persistence = 1
	}
	if c.Flatten.Falloff < MinFalloff {
		c.Flatten.Falloff = MinFalloff
	}
	return c
}

// VertsX is the vertex count along X.
func (c GridConfig) VertsX() int { return c.QuadsX + 1 }

// VertsY is the vertex count along Y.
func (c GridConfig) VertsY() int { return c.QuadsY + 1 }

// HalfExtent returns half the terrain's local width and height.
func (c GridConfig) HalfExtent() (float64, float64) {
	return float64(c.QuadsX) * c.Spacing * 0.5, float64(c.QuadsY) * c.Spacing * 0.5
}
