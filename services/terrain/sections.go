package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/VoidMesh/terrain/services/mesh"
)

// buildSections assembles the surface, slab and water sections. Overlays
// whose extents collapse to nothing are skipped.
func buildSections(cfg Config, surface mesh.Mesh) []mesh.Section {
	sections := []mesh.Section{
		mesh.NewSection(mesh.SectionSurface, surface, cfg.CreateCollision),
	}

	if slab, ok := slabQuad(cfg); ok {
		sections = append(sections, mesh.NewSection(mesh.SectionSlab, slab, false))
	}
	if water, ok := waterQuad(cfg); ok {
		sections = append(sections, mesh.NewSection(mesh.SectionWater, water, false))
	}
	return sections
}

func slabQuad(cfg Config) (mesh.Mesh, bool) {
	flatten := cfg.Grid.Flatten
	if !cfg.Slab.Show || !flatten.Enabled {
		return mesh.Mesh{}, false
	}
	hx := 0.5 * math.Max(0, flatten.Size.X()-2*cfg.Slab.Inset)
	hy := 0.5 * math.Max(0, flatten.Size.Y()-2*cfg.Slab.Inset)

	return mesh.FlatQuad(flatten.Center, mgl64.Vec2{hx, hy}, flatten.Height+cfg.Slab.ZOffset, 1)
}

func waterQuad(cfg Config) (mesh.Mesh, bool) {
	if !cfg.Water.Show {
		return mesh.Mesh{}, false
	}
	halfW, halfH := cfg.Grid.HalfExtent()
	half := mgl64.Vec2{halfW + cfg.Water.Padding, halfH + cfg.Water.Padding}

	return mesh.FlatQuad(mgl64.Vec2{}, half, cfg.Water.Z+cfg.Water.ZOffset, cfg.Water.UVTile)
}
