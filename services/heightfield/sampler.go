package heightfield

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"github.com/VoidMesh/terrain/services/noise"
)

// DegenerateLengthSq is the squared length below which a vector is treated
// as zero and replaced by UpVector.
const DegenerateLengthSq = 1e-12

// UpVector is the canonical surface normal of flat ground.
var UpVector = mgl64.Vec3{0, 0, 1}

// ErrNoNoiseSource is returned when a sampler is built without noise.
var ErrNoNoiseSource = errors.New("heightfield: noise source is required")

// SafeNormal normalizes v, returning UpVector when v is degenerate.
func SafeNormal(v mgl64.Vec3) mgl64.Vec3 {
	lenSq := v.Dot(v)
	if !(lenSq >= DegenerateLengthSq) || math.IsInf(lenSq, 0) {
		return UpVector
	}
	l := math.Sqrt(lenSq)
	return mgl64.Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Grid is the output of a full build: centered local vertex positions with
// Z set to the sampled height, and per-vertex UVs in [0,1].
type Grid struct {
	QuadsX   int
	QuadsY   int
	Vertices []mgl64.Vec3
	UVs      []mgl64.Vec2
}

// VertsX is the vertex count along X.
func (g Grid) VertsX() int { return g.QuadsX + 1 }

// VertsY is the vertex count along Y.
func (g Grid) VertsY() int { return g.QuadsY + 1 }

// Index returns the row-major vertex index of (ix, iy).
func (g Grid) Index(ix, iy int) int { return iy*g.VertsX() + ix }

// Sampler maps grid indices to heights and answers continuous queries over
// the built grid. Builds and queries must not run concurrently.
type Sampler struct {
	cfg   GridConfig
	noise noise.Source
	cache HeightCache
}

// NewSampler validates cfg and binds it to the noise source.
func NewSampler(cfg GridConfig, src noise.Source) (*Sampler, error) {
	s := &Sampler{}
	if err := s.Reconfigure(cfg, src); err != nil {
		return nil, err
	}
	return s, nil
}

// Reconfigure replaces the configuration and noise source. The cache is
// always invalidated, even when cfg is rejected.
func (s *Sampler) Reconfigure(cfg GridConfig, src noise.Source) error {
	s.cache.invalidate()
	if src == nil {
		return ErrNoNoiseSource
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg.Normalize()
	s.noise = src
	return nil
}

// Config returns the normalized configuration in use.
func (s *Sampler) Config() GridConfig {
	return s.cfg
}

// CacheState reports whether queries are served from the cache.
func (s *Sampler) CacheState() CacheState {
	if s.cache.Matches(s.cfg.VertsX(), s.cfg.VertsY()) {
		return CacheValid
	}
	return CacheUnbuilt
}

// Cache exposes the current cache.
func (s *Sampler) Cache() *HeightCache {
	return &s.cache
}

// LocalXYAtIndex returns the centered local position of vertex (ix, iy).
func (s *Sampler) LocalXYAtIndex(ix, iy int) (float64, float64) {
	halfW, halfH := s.cfg.HalfExtent()
	return float64(ix)*s.cfg.Spacing - halfW, float64(iy)*s.cfg.Spacing - halfH
}

// SampleHeightAtIndex evaluates the noise in index space and applies the
// flatten blend at the given local position.
func (s *Sampler) SampleHeightAtIndex(ix, iy int, localX, localY float64) float64 {
	c := &s.cfg
	nx := (float64(ix) + c.NoiseOffset.X()) * c.FeatureScale
	ny := (float64(iy) + c.NoiseOffset.Y()) * c.FeatureScale

	height := noise.FBm(s.noise, nx, ny, c.Octaves, c.Lacunarity, c.Persistence) * c.Amplitude

	if c.Flatten.Enabled {
		w := FlattenWeight(c.Flatten, localX, localY)
		height = blend(height, c.Flatten.Height, w)
	}
	return height
}

// FlattenWeight is 1 inside the pad rectangle and decays with a smoothstep to
// 0 at one falloff distance outside it.
func FlattenWeight(f FlattenRegion, localX, localY float64) float64 {
	hx, hy := f.HalfExtents()
	sx := math.Abs(localX-f.Center.X()) - hx
	sy := math.Abs(localY-f.Center.Y()) - hy
	dist := math.Max(sx, sy)

	t := mgl64.Clamp(dist/math.Max(f.Falloff, MinFalloff), 0, 1)
	return 1 - t*t*(3-2*t)
}

// BuildGrid samples every vertex once and marks the cache valid on completion.
func (s *Sampler) BuildGrid() Grid {
	grid, heights := s.allocGrid()
	s.buildRows(grid, heights, 0, grid.VertsY())
	s.cache = newValidCache(grid.VertsX(), grid.VertsY(), heights)
	return grid
}

// BuildGridParallel splits the grid into row bands sampled concurrently. The
// result equals BuildGrid. The cache is only marked valid when every band
// finishes.
func (s *Sampler) BuildGridParallel(ctx context.Context, workers int) (Grid, error) {
	if workers < 1 {
		workers = 1
	}
	grid, heights := s.allocGrid()
	rows := grid.VertsY()
	band := (rows + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < rows; start += band {
		end := min(start+band, rows)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.buildRows(grid, heights, start, end)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.cache.invalidate()
		return Grid{}, fmt.Errorf("parallel grid build: %w", err)
	}

	s.cache = newValidCache(grid.VertsX(), grid.VertsY(), heights)
	return grid, nil
}

func (s *Sampler) allocGrid() (Grid, []float64) {
	total := s.cfg.VertsX() * s.cfg.VertsY()
	grid := Grid{
		QuadsX:   s.cfg.QuadsX,
		QuadsY:   s.cfg.QuadsY,
		Vertices: make([]mgl64.Vec3, total),
		UVs:      make([]mgl64.Vec2, total),
	}
	return grid, make([]float64, total)
}

// buildRows fills rows [startY, endY). Bands touch disjoint slice ranges.
func (s *Sampler) buildRows(grid Grid, heights []float64, startY, endY int) {
	vertsX := grid.VertsX()
	for y := startY; y < endY; y++ {
		index := y * vertsX
		for x := 0; x < vertsX; x, index = x+1, index+1 {
			localX, localY := s.LocalXYAtIndex(x, y)
			h := s.SampleHeightAtIndex(x, y, localX, localY)

			grid.Vertices[index] = mgl64.Vec3{localX, localY, h}
			grid.UVs[index] = mgl64.Vec2{
				float64(x) / float64(s.cfg.QuadsX),
				float64(y) / float64(s.cfg.QuadsY),
			}
			heights[index] = h
		}
	}
}

// HeightAtLocalXY bilinearly interpolates the grid at a local position.
// Outside the grid it returns 0 unless clampToBounds is set. Corners come
// from the cache when it is valid, otherwise they are sampled directly.
func (s *Sampler) HeightAtLocalXY(localX, localY float64, clampToBounds bool) float64 {
	c := &s.cfg
	halfW, halfH := c.HalfExtent()
	quadsX, quadsY := float64(c.QuadsX), float64(c.QuadsY)

	u := snapToLattice((localX + halfW) / c.Spacing)
	v := snapToLattice((localY + halfH) / c.Spacing)

	if !clampToBounds && (u < 0 || u > quadsX || v < 0 || v > quadsY) {
		return 0
	}
	if math.IsNaN(u) || math.IsNaN(v) {
		return 0
	}
	u = mgl64.Clamp(u, 0, quadsX)
	v = mgl64.Clamp(v, 0, quadsY)

	ix := min(int(math.Floor(u)), c.QuadsX-1)
	iy := min(int(math.Floor(v)), c.QuadsY-1)
	tx := u - float64(ix)
	ty := v - float64(iy)

	var h00, h10, h01, h11 float64
	if s.cache.Matches(c.VertsX(), c.VertsY()) {
		h00 = s.cache.at(ix, iy)
		h10 = s.cache.at(ix+1, iy)
		h01 = s.cache.at(ix, iy+1)
		h11 = s.cache.at(ix+1, iy+1)
	} else {
		h00 = s.sampleIndex(ix, iy)
		h10 = s.sampleIndex(ix+1, iy)
		h01 = s.sampleIndex(ix, iy+1)
		h11 = s.sampleIndex(ix+1, iy+1)
	}

	return blend(blend(h00, h10, tx), blend(h01, h11, tx), ty)
}

// NormalAtLocalXY estimates the surface normal from central differences one
// grid spacing either side of the point.
func (s *Sampler) NormalAtLocalXY(localX, localY float64, clampToBounds bool) mgl64.Vec3 {
	d := s.cfg.Spacing

	hL := s.HeightAtLocalXY(localX-d, localY, clampToBounds)
	hR := s.HeightAtLocalXY(localX+d, localY, clampToBounds)
	hD := s.HeightAtLocalXY(localX, localY-d, clampToBounds)
	hU := s.HeightAtLocalXY(localX, localY+d, clampToBounds)

	tangentX := mgl64.Vec3{2 * d, 0, hR - hL}
	tangentY := mgl64.Vec3{0, 2 * d, hU - hD}
	return SafeNormal(tangentX.Cross(tangentY))
}

func (s *Sampler) sampleIndex(ix, iy int) float64 {
	localX, localY := s.LocalXYAtIndex(ix, iy)
	return s.SampleHeightAtIndex(ix, iy, localX, localY)
}

// blend returns a exactly at t=0 and b exactly at t=1.
func blend(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

const latticeSnap = 1e-9

func snapToLattice(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < latticeSnap {
		return r
	}
	return v
}
