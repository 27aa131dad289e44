package noise

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/terrain/internal/testutil"
)

const rangeSlack = 1.0001

func TestNewField(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name string
		seed int64
	}{
		{name: "positive seed", seed: 1337},
		{name: "zero seed", seed: 0},
		{name: "negative seed", seed: -9876},
		{name: "max int64 seed", seed: math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := NewField(tt.seed)
			assert.Equal(t, tt.seed, field.Seed())

			// Both halves of the table hold the same permutation of 0..255
			seen := make(map[int]bool, permutationSize)
			for i := 0; i < permutationSize; i++ {
				assert.Equal(t, field.perm[i], field.perm[i+permutationSize])
				seen[field.perm[i]] = true
			}
			assert.Len(t, seen, permutationSize)
		})
	}
}

func TestField_Determinism(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	a := NewField(1337)
	b := NewField(1337)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		x := rng.Float64()*512 - 256
		y := rng.Float64()*512 - 256
		require.Equal(t, a.Noise2D(x, y), b.Noise2D(x, y), "noise differs at (%f, %f)", x, y)
		require.Equal(t,
			a.FBm2D(x, y, 4, 2.0, 0.45),
			b.FBm2D(x, y, 4, 2.0, 0.45),
			"fbm differs at (%f, %f)", x, y)
	}
}

func TestField_ReseedReplacesTable(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	field := NewField(1337)
	before := field.perm

	field.Reseed(42)
	assert.NotEqual(t, before, field.perm, "reseeding should change the permutation")
	assert.Equal(t, int64(42), field.Seed())

	field.Reseed(1337)
	assert.Equal(t, before, field.perm, "reseeding back should restore the original table")
}

func TestField_RangeBound(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	field := NewField(1337)
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 10000; i++ {
		x := (rng.Float64() - 0.5) * 2000
		y := (rng.Float64() - 0.5) * 2000

		n := field.Noise2D(x, y)
		require.GreaterOrEqual(t, n, -rangeSlack)
		require.LessOrEqual(t, n, rangeSlack)

		persistence := rng.Float64()
		f := field.FBm2D(x, y, 1+rng.Intn(8), 2.0, persistence)
		require.GreaterOrEqual(t, f, -rangeSlack)
		require.LessOrEqual(t, f, rangeSlack)
	}
}

func TestField_LatticePointsAreZero(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	field := NewField(1337)
	for _, p := range [][2]float64{{0, 0}, {3, 7}, {-12, 5}, {255, 256}} {
		assert.Equal(t, 0.0, field.Noise2D(p[0], p[1]), "gradient noise vanishes on integer lattice points")
	}
}

func TestField_EdgeCases(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	field := NewField(1337)

	tests := []struct {
		name string
		x, y float64
	}{
		{name: "large positive", x: 1e9 + 0.25, y: 3e9 + 0.75},
		{name: "large negative", x: -1e9 - 0.5, y: -7e8 - 0.125},
		{name: "extreme magnitude", x: 1e300, y: -1e300},
		{name: "NaN input", x: math.NaN(), y: 1},
		{name: "infinite input", x: math.Inf(1), y: math.Inf(-1)},
		{name: "wraps past 255", x: 255.5, y: 511.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result float64
			assert.NotPanics(t, func() {
				result = field.Noise2D(tt.x, tt.y)
			})
			testutil.AssertFinite(t, result)
		})
	}

	assert.Equal(t, 0.0, field.Noise2D(math.NaN(), 0))
}

func TestField_Wraps256(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	field := NewField(5)
	assert.InDelta(t, field.Noise2D(3.3, 4.7), field.Noise2D(3.3+256, 4.7-256), 1e-9)
}

func TestFBm(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	field := NewField(1337)
	x, y := 12.37, -4.91

	tests := []struct {
		name   string
		fbm    func() float64
		expect func(t *testing.T, value float64)
	}{
		{
			name: "single octave equals base noise",
			fbm:  func() float64 { return field.FBm2D(x, y, 1, 2.0, 0.5) },
			expect: func(t *testing.T, value float64) {
				assert.Equal(t, field.Noise2D(x, y), value)
			},
		},
		{
			name: "zero persistence keeps only the first layer",
			fbm:  func() float64 { return field.FBm2D(x, y, 6, 2.0, 0) },
			expect: func(t *testing.T, value float64) {
				assert.Equal(t, field.Noise2D(x, y), value)
			},
		},
		{
			name: "zero octaves returns raw zero sum",
			fbm:  func() float64 { return field.FBm2D(x, y, 0, 2.0, 0.5) },
			expect: func(t *testing.T, value float64) {
				assert.Equal(t, 0.0, value)
			},
		},
		{
			name: "two octaves are amplitude normalized",
			fbm:  func() float64 { return field.FBm2D(x, y, 2, 2.0, 0.5) },
			expect: func(t *testing.T, value float64) {
				want := (field.Noise2D(x, y) + 0.5*field.Noise2D(2*x, 2*y)) / 1.5
				assert.InDelta(t, want, value, 1e-12)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect(t, tt.fbm())
		})
	}
}

func TestParseBackend(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		raw       string
		expected  Backend
		expectErr bool
	}{
		{raw: "", expected: BackendGradient},
		{raw: "gradient", expected: BackendGradient},
		{raw: " Aquilax ", expected: BackendAquilax},
		{raw: "OPENSIMPLEX", expected: BackendOpenSimplex},
		{raw: "value", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			backend, err := ParseBackend(tt.raw)
			if tt.expectErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownBackend))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, backend)
		})
	}
}

func TestGenerator_Backends(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	for _, backend := range []Backend{BackendGradient, BackendAquilax, BackendOpenSimplex} {
		t.Run(string(backend), func(t *testing.T) {
			g1, err := NewGeneratorWithBackend(backend, 2024)
			require.NoError(t, err)
			g2, err := NewGeneratorWithBackend(backend, 2024)
			require.NoError(t, err)

			assert.Equal(t, backend, g1.GetBackend())
			assert.Equal(t, int64(2024), g1.GetSeed())

			for i := 0; i < 50; i++ {
				x := float64(i)*0.731 + 0.1
				y := float64(i)*-0.417 + 0.3
				v := FBm(g1, x, y, 4, 2.0, 0.45)
				testutil.AssertFinite(t, v)
				assert.Equal(t, v, FBm(g2, x, y, 4, 2.0, 0.45), "backend %s must be deterministic", backend)
			}
		})
	}

	_, err := NewGeneratorWithBackend("bogus", 1)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestGenerator_GradientMatchesField(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	g, err := NewGeneratorWithBackend(BackendGradient, 1337)
	require.NoError(t, err)
	field := NewField(1337)

	assert.Equal(t, field.Noise2D(1.25, 9.5), g.Noise2D(1.25, 9.5))

	g.Reseed(42)
	field.Reseed(42)
	assert.Equal(t, field.FBm2D(1.25, 9.5, 4, 2, 0.45), FBm(g, 1.25, 9.5, 4, 2, 0.45))
}

func BenchmarkField_Noise2D(b *testing.B) {
	field := NewField(12345)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x := float64(i%1000) * 0.37
		y := float64(i%1000) * 0.53
		field.Noise2D(x, y)
	}
}

func BenchmarkField_FBm2D(b *testing.B) {
	field := NewField(12345)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x := float64(i%1000) * 0.37
		field.FBm2D(x, x, 4, 2.0, 0.45)
	}
}
