package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinCosUnitCircle(t *testing.T) {
	for _, f := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.999} {
		s, c := SinCos(f)
		assert.InDelta(t, 1.0, s*s+c*c, 1e-12, "fraction %v", f)
	}
}

func TestSinCosWraparound(t *testing.T) {
	// Fraction 0 and fraction 1 are the same angle
	s0, c0 := SinCos(0)
	s1, c1 := SinCos(1)
	assert.InDelta(t, s0, s1, 1e-12)
	assert.InDelta(t, c0, c1, 1e-12)

	// Hour 23 is adjacent to hour 0, not 23 units away
	s23, c23 := SinCos(23.0 / 24.0)
	gap := math.Hypot(s23-s0, c23-c0)
	s12, c12 := SinCos(12.0 / 24.0)
	far := math.Hypot(s12-s0, c12-c0)
	assert.Less(t, gap, far)
}

func TestCircularMeanSinCosNormalizes(t *testing.T) {
	// Two departures at the same time of day: mean direction is unit length
	s, c := SinCos(0.25)
	ms, mc := CircularMeanSinCos(2*s, 2*c, 2)
	assert.InDelta(t, 1.0, math.Hypot(ms, mc), 1e-12)
	assert.InDelta(t, s, ms, 1e-12)
	assert.InDelta(t, c, mc, 1e-12)
}

func TestCircularMeanUniformSpreadStaysNearZero(t *testing.T) {
	// Departures evenly spread around the clock: the resultant collapses and
	// re-normalization must not divide by the near-zero norm.
	const n = 24
	var sinSum, cosSum float64
	for i := 0; i < n; i++ {
		s, c := SinCos(float64(i) / n)
		sinSum += s
		cosSum += c
	}

	assert.InDelta(t, 0, MeanResultantLength(sinSum, cosSum, n), 1e-9)

	ms, mc := CircularMeanSinCos(sinSum, cosSum, n)
	assert.InDelta(t, 0, ms, 1e-9)
	assert.InDelta(t, 0, mc, 1e-9)
	assert.False(t, math.IsNaN(ms))
	assert.False(t, math.IsNaN(mc))
}

func TestCircularMeanSinCosEmpty(t *testing.T) {
	s, c := CircularMeanSinCos(0, 0, 0)
	assert.Zero(t, s)
	assert.Zero(t, c)
}

func TestCircularMeanAngles(t *testing.T) {
	// Angles straddling the wraparound average to zero, not to pi
	mean := CircularMean([]float64{-0.1, 0.1})
	assert.InDelta(t, 0, mean, 1e-12)
}
