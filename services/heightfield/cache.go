package heightfield

// CacheState tags whether a HeightCache may be trusted.
type CacheState int

const (
	CacheUnbuilt CacheState = iota
	CacheValid
)

func (s CacheState) String() string {
	switch s {
	case CacheValid:
		return "valid"
	default:
		return "unbuilt"
	}
}

// HeightCache is the dense row-major height array produced by a full grid
// build. Only a Valid cache whose dimensions match the querying grid is read.
type HeightCache struct {
	state   CacheState
	vertsX  int
	vertsY  int
	heights []float64
}

func newValidCache(vertsX, vertsY int, heights []float64) HeightCache {
	return HeightCache{
		state:   CacheValid,
		vertsX:  vertsX,
		vertsY:  vertsY,
		heights: heights,
	}
}

// State reports the cache tag.
func (c *HeightCache) State() CacheState {
	return c.state
}

// Len is the number of cached samples.
func (c *HeightCache) Len() int {
	return len(c.heights)
}

// Heights returns a copy of the cached samples, or nil when unbuilt.
func (c *HeightCache) Heights() []float64 {
	if c.state != CacheValid {
		return nil
	}
	out := make([]float64, len(c.heights))
	copy(out, c.heights)
	return out
}

// Matches reports whether the cache is valid for a vertsX by vertsY grid.
func (c *HeightCache) Matches(vertsX, vertsY int) bool {
	return c.state == CacheValid &&
		c.vertsX == vertsX &&
		c.vertsY == vertsY &&
		len(c.heights) == vertsX*vertsY
}

func (c *HeightCache) at(ix, iy int) float64 {
	return c.heights[iy*c.vertsX+ix]
}

func (c *HeightCache) invalidate() {
	*c = HeightCache{}
}
