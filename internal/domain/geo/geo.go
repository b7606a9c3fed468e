// Package geo provides great-circle distance helpers for position fixes.
package geo

import "math"

const (
	earthRadiusMeters = 6371000.0
	metersPerMile     = 1609.344
)

// HaversineMeters returns the great-circle distance in meters between two
// points given in signed decimal degrees.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// MetersToMiles converts meters to statute miles.
func MetersToMiles(m float64) float64 {
	return m / metersPerMile
}

// ValidCoordinates reports whether lat/lng fall inside the signed decimal
// degree ranges.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
