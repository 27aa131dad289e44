// Package mesh turns a sampled height grid into renderable geometry.
package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/VoidMesh/terrain/services/heightfield"
)

// TangentX is the constant tangent written for every generated vertex.
var TangentX = mgl64.Vec3{1, 0, 0}

// Mesh is an indexed triangle list with per-vertex attributes.
type Mesh struct {
	Vertices  []mgl64.Vec3 `json:"vertices"`
	Triangles []int32      `json:"triangles"`
	Normals   []mgl64.Vec3 `json:"normals"`
	UVs       []mgl64.Vec2 `json:"uvs"`
	Tangents  []mgl64.Vec3 `json:"tangents"`
}

// TriangleCount is the number of triangles described by the index list.
func (m Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// HeightRange returns the lowest and highest vertex Z. An empty mesh yields zeros.
func (m Mesh) HeightRange() (float64, float64) {
	if len(m.Vertices) == 0 {
		return 0, 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range m.Vertices {
		lo = math.Min(lo, v.Z())
		hi = math.Max(hi, v.Z())
	}
	return lo, hi
}

// Build triangulates grid. Each quad becomes (v00,v11,v10) and (v00,v01,v11),
// which face +Z. Normals are the area-weighted sum of adjacent face normals.
func Build(grid heightfield.Grid) Mesh {
	total := len(grid.Vertices)
	m := Mesh{
		Vertices:  grid.Vertices,
		Triangles: buildTriangles(grid),
		UVs:       grid.UVs,
		Tangents:  make([]mgl64.Vec3, total),
	}
	m.Normals = accumulateNormals(m.Vertices, m.Triangles)
	for i := range m.Tangents {
		m.Tangents[i] = TangentX
	}
	return m
}

func buildTriangles(grid heightfield.Grid) []int32 {
	tris := make([]int32, 0, grid.QuadsX*grid.QuadsY*6)
	for y := 0; y < grid.QuadsY; y++ {
		for x := 0; x < grid.QuadsX; x++ {
			v00 := int32(grid.Index(x, y))
			v10 := int32(grid.Index(x+1, y))
			v01 := int32(grid.Index(x, y+1))
			v11 := int32(grid.Index(x+1, y+1))

			tris = append(tris,
				v00, v11, v10,
				v00, v01, v11,
			)
		}
	}
	return tris
}

func accumulateNormals(vertices []mgl64.Vec3, tris []int32) []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, len(vertices))
	for t := 0; t+2 < len(tris); t += 3 {
		ia, ib, ic := tris[t], tris[t+1], tris[t+2]
		a, b, c := vertices[ia], vertices[ib], vertices[ic]

		// Unnormalized, so larger faces weigh more
		face := c.Sub(a).Cross(b.Sub(a))
		normals[ia] = normals[ia].Add(face)
		normals[ib] = normals[ib].Add(face)
		normals[ic] = normals[ic].Add(face)
	}
	for i, n := range normals {
		normals[i] = heightfield.SafeNormal(n)
	}
	return normals
}

// FlatQuad builds a horizontal rectangle at height z from its center and half
// extents. UVs run from 0 to uvMax. It reports false when either extent is
// not positive, in which case no quad should be emitted.
func FlatQuad(center, halfExtents mgl64.Vec2, z, uvMax float64) (Mesh, bool) {
	hx, hy := halfExtents.X(), halfExtents.Y()
	if !(hx > 0) || !(hy > 0) {
		return Mesh{}, false
	}
	cx, cy := center.X(), center.Y()

	return Mesh{
		Vertices: []mgl64.Vec3{
			{cx - hx, cy - hy, z}, // BL
			{cx + hx, cy - hy, z}, // BR
			{cx + hx, cy + hy, z}, // TR
			{cx - hx, cy + hy, z}, // TL
		},
		Triangles: []int32{0, 2, 1, 0, 3, 2},
		Normals: []mgl64.Vec3{
			heightfield.UpVector, heightfield.UpVector, heightfield.UpVector, heightfield.UpVector,
		},
		UVs: []mgl64.Vec2{
			{0, 0},
			{uvMax, 0},
			{uvMax, uvMax},
			{0, uvMax},
		},
		Tangents: []mgl64.Vec3{TangentX, TangentX, TangentX, TangentX},
	}, true
}

// DefaultDebugSamples caps how many normals are handed to a debug sink.
const DefaultDebugSamples = 512

// DebugSamples returns an evenly strided subset of at most maxSamples
// vertex/normal pairs. A non-positive maxSamples uses DefaultDebugSamples.
func DebugSamples(vertices, normals []mgl64.Vec3, maxSamples int) ([]mgl64.Vec3, []mgl64.Vec3) {
	if maxSamples <= 0 {
		maxSamples = DefaultDebugSamples
	}
	n := min(len(vertices), len(normals))
	if n == 0 {
		return nil, nil
	}

	step := max(1, (n+maxSamples-1)/maxSamples)
	points := make([]mgl64.Vec3, 0, n/step+1)
	dirs := make([]mgl64.Vec3, 0, n/step+1)
	for i := 0; i < n; i += step {
		points = append(points, vertices[i])
		dirs = append(dirs, heightfield.SafeNormal(normals[i]))
	}
	return points, dirs
}
