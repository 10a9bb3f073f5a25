package geo

import (
	"fmt"
	"math"
	"strconv"
)

// EarthRadiusKm is the mean earth radius used by DistanceKm
const EarthRadiusKm = 6371.0

const directionsURL = "https://www.google.com/maps/dir/?api=1&destination=%s,%s"

func toRadians(degree float64) float64 {
	return degree * math.Pi / 180
}

// DistanceKm returns the great-circle distance between two coordinates
// using the haversine formula.
func DistanceKm(latA, lngA, latB, lngB float64) float64 {
	dLat := toRadians(latB - latA)
	dLng := toRadians(lngB - lngA)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(latA))*math.Cos(toRadians(latB))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	// rounding may push a slightly outside [0, 1] for antipodal points
	a = math.Max(0, math.Min(1, a))

	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

// FormatDistance renders a distance for a responder, in meters below 1 km
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0f m away", km*1000)
	}
	return fmt.Sprintf("%.1f km away", km)
}

// ValidCoordinates checks that a position is finite and on the globe
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// DirectionsURL links to turn-by-turn directions towards a position
func DirectionsURL(lat, lng float64) string {
	return fmt.Sprintf(directionsURL,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lng, 'f', -1, 64))
}
