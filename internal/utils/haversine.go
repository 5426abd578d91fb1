package utils

import (
	"math"

	"github.com/tcrfreight/backend/internal/models"
)

const earthRadiusKm = 6371.0

// HaversineKm is the great-circle distance between two points given in
// decimal degrees.
func HaversineKm(a, b models.Coordinate) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLon := degreesToRadians(b.Lon - a.Lon)

	latA := degreesToRadians(a.Lat)
	latB := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(latA)*math.Cos(latB)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// DistanceKm rounds to the nearest whole kilometer.
func DistanceKm(a, b models.Coordinate) int {
	return int(math.Round(HaversineKm(a, b)))
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}
