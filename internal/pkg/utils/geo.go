package utils

import "math"

// DefaultFenceRadiusMeters is used when a company has no radius configured.
const DefaultFenceRadiusMeters = 2000.0

// CalculateHaversineDistance returns the great-circle distance between two
// coordinates in meters.
func CalculateHaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// WithinFence reports whether a distance falls inside a geofence radius.
// The boundary itself counts as inside. A zero or negative radius falls back
// to DefaultFenceRadiusMeters.
func WithinFence(distance, radius float64) bool {
	if radius <= 0 {
		radius = DefaultFenceRadiusMeters
	}
	return distance <= radius
}
