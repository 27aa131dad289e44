package testutil

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

// AssertUnitVector verifies that v has length 1 within tolerance.
func AssertUnitVector(t *testing.T, v mgl64.Vec3, tolerance float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, 1.0, v.Len(), tolerance, msgAndArgs...)
}

// AssertVec3InDelta compares two vectors component-wise.
func AssertVec3InDelta(t *testing.T, expected, actual mgl64.Vec3, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], delta, msgAndArgs...)
	}
}

// AssertFinite verifies that a value is neither NaN nor infinite.
func AssertFinite(t *testing.T, value float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.False(t, math.IsNaN(value), msgAndArgs...)
	assert.False(t, math.IsInf(value, 0), msgAndArgs...)
}

// AssertBetween verifies that min <= value <= max.
func AssertBetween(t *testing.T, value, min, max float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.GreaterOrEqual(t, value, min, msgAndArgs...)
	assert.LessOrEqual(t, value, max, msgAndArgs...)
}
