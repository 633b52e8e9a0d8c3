package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMiles = 3958.8 // Earth's mean radius in statute miles
)

// Haversine calculates the great-circle distance between two points in miles.
// Symmetric in its arguments; zero for identical points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMiles
}

// UnitSphereXYZ converts a lat/lon pair in degrees to a 3D unit vector.
// Euclidean averaging of these vectors approximates great-circle geometry
// better than averaging raw lat/lon.
func UnitSphereXYZ(lat, lon float64) (x, y, z float64) {
	p := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	// s2 points are already unit vectors
	return p.X, p.Y, p.Z
}

// InitialBearingSinCos calculates the initial bearing (forward azimuth) from
// point 1 to point 2 and returns it as a (sin, cos) unit-circle pair, which
// avoids the 0/360 degree discontinuity of a raw bearing angle.
func InitialBearingSinCos(lat1, lon1, lat2, lon2 float64) (sin, cos float64) {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lonDiff := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(lonDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lonDiff)
	bearing := math.Atan2(y, x)

	return math.Sin(bearing), math.Cos(bearing)
}

// MidpointXYZ returns the Euclidean midpoint of the unit vectors for two
// points. The result is generally not unit length; corpus aggregation
// averages these midpoints directly.
func MidpointXYZ(lat1, lon1, lat2, lon2 float64) (x, y, z float64) {
	x1, y1, z1 := UnitSphereXYZ(lat1, lon1)
	x2, y2, z2 := UnitSphereXYZ(lat2, lon2)
	return (x1 + x2) / 2, (y1 + y2) / 2, (z1 + z2) / 2
}

// RouteVectorXYZ returns the destination-minus-origin unit-vector difference
// divided by div (the embedding uses div=2 so components stay within [-1,1]).
func RouteVectorXYZ(lat1, lon1, lat2, lon2, div float64) (x, y, z float64) {
	x1, y1, z1 := UnitSphereXYZ(lat1, lon1)
	x2, y2, z2 := UnitSphereXYZ(lat2, lon2)
	return (x2 - x1) / div, (y2 - y1) / div, (z2 - z1) / div
}
