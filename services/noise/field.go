package noise

import (
	"math"
	"math/rand"
)

const permutationSize = 256

// Field is a seedable 2D gradient noise evaluator. It is a plain value: the
// terrain owns one directly and Reseed rebuilds its table in place.
type Field struct {
	perm [permutationSize * 2]int
	seed int64
}

// NewField returns a Field seeded with seed.
func NewField(seed int64) Field {
	var f Field
	f.Reseed(seed)
	return f
}

// Reseed replaces the permutation table with the shuffle derived from seed.
func (f *Field) Reseed(seed int64) {
	var p [permutationSize]int
	for i := range p {
		p[i] = i
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(p), func(i, j int) {
		p[i], p[j] = p[j], p[i]
	})

	// Duplicated so corner lookups never need to wrap
	for i := 0; i < permutationSize; i++ {
		f.perm[i] = p[i]
		f.perm[i+permutationSize] = p[i]
	}
	f.seed = seed
}

// Seed returns the seed the table was built from.
func (f *Field) Seed() int64 {
	return f.seed
}

// Noise2D returns classic Perlin noise at (x, y), roughly in [-1, 1].
// Non-finite input yields 0.
func (f *Field) Noise2D(x, y float64) float64 {
	if !isFinite(x) || !isFinite(y) {
		return 0
	}

	fx := math.Floor(x)
	fy := math.Floor(y)

	X := int(fx) & 255
	Y := int(fy) & 255

	xf := x - fx
	yf := y - fy

	u := fade(xf)
	v := fade(yf)

	aa := f.perm[f.perm[X]+Y]
	ab := f.perm[f.perm[X]+Y+1]
	ba := f.perm[f.perm[X+1]+Y]
	bb := f.perm[f.perm[X+1]+Y+1]

	x1 := lerp(grad(aa, xf, yf), grad(ba, xf-1, yf), u)
	x2 := lerp(grad(ab, xf, yf-1), grad(bb, xf-1, yf-1), u)
	return lerp(x1, x2, v)
}

// FBm2D sums octaves of Noise2D. See FBm.
func (f *Field) FBm2D(x, y float64, octaves int, lacunarity, persistence float64) float64 {
	return FBm(f, x, y, octaves, lacunarity, persistence)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// grad picks one of 8 gradient directions from the low bits of hash.
func grad(hash int, x, y float64) float64 {
	switch hash & 7 {
	case 0:
		return x + y
	case 1:
		return x - y
	case 2:
		return -x + y
	case 3:
		return -x - y
	case 4:
		return x
	case 5:
		return -x
	case 6:
		return y
	default:
		return -y
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
