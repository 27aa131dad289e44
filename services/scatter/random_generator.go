package scatter

import (
	"math/rand"
)

// RandomGenerator implements RandomGeneratorInterface using math/rand.
type RandomGenerator struct {
	rand *rand.Rand
}

// NewRandomGenerator creates a new random generator with the given seed.
func NewRandomGenerator(seed int64) RandomGeneratorInterface {
	source := rand.NewSource(seed)
	return &RandomGenerator{
		rand: rand.New(source),
	}
}

func (r *RandomGenerator) Float64() float64 {
	return r.rand.Float64()
}

// FloatRange draws uniformly from [min, max). Equal bounds return min.
func (r *RandomGenerator) FloatRange(min, max float64) float64 {
	return min + (max-min)*r.rand.Float64()
}
