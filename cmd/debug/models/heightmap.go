package models

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/terrain/cmd/debug/components"
	"github.com/VoidMesh/terrain/services/scatter"
)

// WaterBandIndex marks a preview cell below the water level.
const WaterBandIndex = -1

// HeightBands samples the terrain on a cols x rows lattice spanning its
// local extent and classifies each cell. Row 0 is the north (max Y) edge.
// Dry cells are spread over the land bands by their share of the dry
// height range.
func HeightBands(t scatter.Terrain, cols, rows int) [][]int {
	if t == nil || cols < 1 || rows < 1 {
		return nil
	}

	halfW, halfH := t.LocalHalfExtents()
	water := t.WaterLevel()

	heights := make([][]float64, rows)
	lo, hi := math.Inf(1), math.Inf(-1)
	for r := 0; r < rows; r++ {
		heights[r] = make([]float64, cols)
		localY := halfH - (float64(r)+0.5)*(2*halfH/float64(rows))
		for c := 0; c < cols; c++ {
			localX := -halfW + (float64(c)+0.5)*(2*halfW/float64(cols))
			world := t.LocalToWorld(localX, localY)
			h := t.HeightAtWorldXY(world.X(), world.Y(), true)
			heights[r][c] = h
			if h >= water {
				lo = math.Min(lo, h)
				hi = math.Max(hi, h)
			}
		}
	}

	bands := make([][]int, rows)
	top := len(components.LandBands) - 1
	for r := range heights {
		bands[r] = make([]int, cols)
		for c, h := range heights[r] {
			switch {
			case h < water:
				bands[r][c] = WaterBandIndex
			case hi <= lo:
				bands[r][c] = 0
			default:
				band := int((h - lo) / (hi - lo) * float64(len(components.LandBands)))
				bands[r][c] = min(band, top)
			}
		}
	}
	return bands
}

// RenderHeightmap draws the classified lattice with one colored symbol per
// cell.
func RenderHeightmap(bands [][]int) string {
	var s strings.Builder
	for r, row := range bands {
		if r > 0 {
			s.WriteString("\n")
		}
		for _, band := range row {
			b := components.WaterBand
			if band >= 0 {
				b = components.LandBands[band]
			}
			s.WriteString(lipgloss.NewStyle().Foreground(b.Color).Render(b.Symbol))
		}
	}
	return s.String()
}
