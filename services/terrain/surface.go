package terrain

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/VoidMesh/terrain/services/heightfield"
	"github.com/VoidMesh/terrain/services/mesh"
	"github.com/VoidMesh/terrain/services/noise"
	"github.com/VoidMesh/terrain/services/scatter"
)

var _ scatter.Terrain = (*Surface)(nil)

// Surface is one completed terrain build. It is never mutated after
// Regenerate returns it, so any number of readers may query it.
type Surface struct {
	cfg       Config
	noise     noise.Generator
	sampler   *heightfield.Sampler
	mesh      mesh.Mesh
	sections  []mesh.Section
	minHeight float64
	maxHeight float64
	buildTime time.Duration
}

// Config is the configuration the surface was built from.
func (s *Surface) Config() Config { return s.cfg }

// Mesh is the surface geometry in terrain-local space.
func (s *Surface) Mesh() mesh.Mesh { return s.mesh }

// Sections are the render sections emitted for this build.
func (s *Surface) Sections() []mesh.Section { return s.sections }

// HeightRange returns the lowest and highest local vertex height.
func (s *Surface) HeightRange() (float64, float64) { return s.minHeight, s.maxHeight }

// BuildDuration is how long the grid and mesh took to build.
func (s *Surface) BuildDuration() time.Duration { return s.buildTime }

// LocalHalfExtents returns half the terrain width and height.
func (s *Surface) LocalHalfExtents() (float64, float64) {
	return s.cfg.Grid.HalfExtent()
}

// LocalToWorld translates a local XY position by the origin.
func (s *Surface) LocalToWorld(localX, localY float64) mgl64.Vec2 {
	return mgl64.Vec2{localX + s.cfg.Origin.X(), localY + s.cfg.Origin.Y()}
}

// WorldToLocal removes the origin from a world XY position.
func (s *Surface) WorldToLocal(x, y float64) mgl64.Vec2 {
	return mgl64.Vec2{x - s.cfg.Origin.X(), y - s.cfg.Origin.Y()}
}

// HeightAtLocalXY returns the local height at a local position.
func (s *Surface) HeightAtLocalXY(localX, localY float64, clampToBounds bool) float64 {
	return s.sampler.HeightAtLocalXY(localX, localY, clampToBounds)
}

// HeightAtWorldXY returns the world Z of the surface under a world position.
func (s *Surface) HeightAtWorldXY(x, y float64, clampToBounds bool) float64 {
	local := s.WorldToLocal(x, y)
	return s.sampler.HeightAtLocalXY(local.X(), local.Y(), clampToBounds) + s.cfg.Origin.Z()
}

// NormalAtLocalXY returns the unit surface normal at a local position.
func (s *Surface) NormalAtLocalXY(localX, localY float64, clampToBounds bool) mgl64.Vec3 {
	return s.sampler.NormalAtLocalXY(localX, localY, clampToBounds)
}

// NormalAtWorldXY returns the unit surface normal under a world position.
// The origin is a pure translation, so the normal needs no transform.
func (s *Surface) NormalAtWorldXY(x, y float64, clampToBounds bool) mgl64.Vec3 {
	local := s.WorldToLocal(x, y)
	return s.sampler.NormalAtLocalXY(local.X(), local.Y(), clampToBounds)
}

// WaterLevel is the flood level in world Z.
func (s *Surface) WaterLevel() float64 {
	return s.cfg.Water.Z + s.cfg.Origin.Z()
}

// FlattenCore returns the flatten pad when flattening is enabled.
func (s *Surface) FlattenCore() (heightfield.FlattenRegion, bool) {
	f := s.cfg.Grid.Flatten
	return f, f.Enabled
}
