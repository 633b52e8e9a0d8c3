package spatial

import (
	"math"
)

// SinCos encodes a fraction of a full period as a point on the unit circle.
// Both fraction 0 and fraction 1 map to the same (sin, cos) pair, so periodic
// quantities keep their angular continuity.
func SinCos(fraction float64) (sin, cos float64) {
	a := 2 * math.Pi * fraction
	return math.Sin(a), math.Cos(a)
}

// CircularMeanSinCos reduces summed sin/cos components to a unit-length mean
// direction. When the resultant magnitude is below epsilon (angles spread
// evenly around the circle) the raw mean components are returned un-normalized
// rather than dividing by a near-zero norm.
func CircularMeanSinCos(sinSum, cosSum float64, count int) (sin, cos float64) {
	if count <= 0 {
		return 0, 0
	}

	s := sinSum / float64(count)
	c := cosSum / float64(count)

	norm := math.Hypot(s, c)
	if norm > circularNormEpsilon {
		s /= norm
		c /= norm
	}
	return s, c
}

// MeanResultantLength calculates the mean resultant length (R) from summed
// components. R ranges from 0 (uniform distribution) to 1 (all angles
// identical).
func MeanResultantLength(sinSum, cosSum float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return math.Hypot(sinSum, cosSum) / float64(count)
}

// CircularMean calculates the mean of circular data (angles in radians)
// Returns mean angle in radians
func CircularMean(angles []float64) float64 {
	if len(angles) == 0 {
		return 0
	}

	var sumSin, sumCos float64
	for _, angle := range angles {
		sumSin += math.Sin(angle)
		sumCos += math.Cos(angle)
	}

	return math.Atan2(sumSin, sumCos)
}

const circularNormEpsilon = 1e-8
