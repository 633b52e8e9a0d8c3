package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	jfkLat, jfkLon = 40.6413, -73.7781
	laxLat, laxLon = 33.9416, -118.4085
)

func TestHaversineIdenticalPointsIsZero(t *testing.T) {
	assert.InDelta(t, 0, Haversine(jfkLat, jfkLon, jfkLat, jfkLon), 1e-9)
	assert.InDelta(t, 0, Haversine(0, 0, 0, 0), 1e-9)
	assert.InDelta(t, 0, Haversine(-45.5, 170.2, -45.5, 170.2), 1e-9)
}

func TestHaversineSymmetry(t *testing.T) {
	cases := [][4]float64{
		{jfkLat, jfkLon, laxLat, laxLon},
		{51.47, -0.4543, 35.5494, 139.7798},
		{-33.9399, 151.1753, 40.6413, -73.7781},
	}
	for _, c := range cases {
		ab := Haversine(c[0], c[1], c[2], c[3])
		ba := Haversine(c[2], c[3], c[0], c[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestHaversineJFKToLAX(t *testing.T) {
	d := Haversine(jfkLat, jfkLon, laxLat, laxLon)
	assert.InDelta(t, 2151, d, 10)
}

func TestUnitSphereXYZIsUnitLength(t *testing.T) {
	coords := [][2]float64{
		{0, 0}, {90, 0}, {-90, 0}, {jfkLat, jfkLon}, {laxLat, laxLon}, {-45, 170},
	}
	for _, c := range coords {
		x, y, z := UnitSphereXYZ(c[0], c[1])
		norm := math.Sqrt(x*x + y*y + z*z)
		assert.InDelta(t, 1.0, norm, 1e-12)
	}
}

func TestUnitSphereXYZPoles(t *testing.T) {
	_, _, z := UnitSphereXYZ(90, 0)
	assert.InDelta(t, 1.0, z, 1e-12)

	_, _, z = UnitSphereXYZ(-90, 0)
	assert.InDelta(t, -1.0, z, 1e-12)
}

func TestInitialBearingSinCosOnUnitCircle(t *testing.T) {
	s, c := InitialBearingSinCos(jfkLat, jfkLon, laxLat, laxLon)
	assert.InDelta(t, 1.0, s*s+c*c, 1e-12)
}

func TestInitialBearingDueEast(t *testing.T) {
	// From the equator heading east along it, bearing is 90 degrees
	s, c := InitialBearingSinCos(0, 0, 0, 10)
	assert.InDelta(t, 1.0, s, 1e-9)
	assert.InDelta(t, 0.0, c, 1e-9)
}

func TestMidpointXYZAverageOfEndpoints(t *testing.T) {
	x1, y1, z1 := UnitSphereXYZ(jfkLat, jfkLon)
	x2, y2, z2 := UnitSphereXYZ(laxLat, laxLon)
	mx, my, mz := MidpointXYZ(jfkLat, jfkLon, laxLat, laxLon)
	assert.InDelta(t, (x1+x2)/2, mx, 1e-12)
	assert.InDelta(t, (y1+y2)/2, my, 1e-12)
	assert.InDelta(t, (z1+z2)/2, mz, 1e-12)
}

func TestRouteVectorXYZHalved(t *testing.T) {
	x1, y1, z1 := UnitSphereXYZ(jfkLat, jfkLon)
	x2, y2, z2 := UnitSphereXYZ(laxLat, laxLon)
	rx, ry, rz := RouteVectorXYZ(jfkLat, jfkLon, laxLat, laxLon, 2)
	assert.InDelta(t, (x2-x1)/2, rx, 1e-12)
	assert.InDelta(t, (y2-y1)/2, ry, 1e-12)
	assert.InDelta(t, (z2-z1)/2, rz, 1e-12)
}
