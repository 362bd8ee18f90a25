// Package geo holds the spherical geometry used by radius search. Distances
// are converted to angular radii and containment is decided on the great
// circle, never on a flat lng/lat plane.
package geo

import "math"

// EarthRadiusMiles is Earth's mean radius in miles.
const EarthRadiusMiles = 3963.0

// Point is a geographic coordinate.
type Point struct {
	Longitude float64
	Latitude  float64
}

// AngularRadius converts a linear distance in miles to an angular radius in
// radians.
func AngularRadius(distanceMiles float64) float64 {
	return distanceMiles / EarthRadiusMiles
}

// CentralAngle returns the great-circle angle between two points in radians,
// computed with the haversine formula.
func CentralAngle(a, b Point) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLng := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// WithinRadius reports whether point lies inside the spherical cap of the
// given angular radius (radians) around center.
func WithinRadius(center, point Point, radiusRadians float64) bool {
	return CentralAngle(center, point) <= radiusRadians
}

// DistanceMiles returns the great-circle distance between two points in miles.
func DistanceMiles(a, b Point) float64 {
	return CentralAngle(a, b) * EarthRadiusMiles
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
