package utils

import (
	"math"
	"testing"

	"github.com/tcrfreight/backend/internal/models"
)

func TestDistanceKmSamePointIsZero(t *testing.T) {
	p := models.Coordinate{Lat: 37.5, Lon: 127.0}
	if d := DistanceKm(p, p); d != 0 {
		t.Fatalf("expected 0, got %d", d)
	}
}

func TestDistanceKmSeoulBusan(t *testing.T) {
	seoul := models.Coordinate{Lat: 37.5, Lon: 127.0}
	busan := models.Coordinate{Lat: 35.1, Lon: 129.0}
	d := DistanceKm(seoul, busan)
	if d < 320 || d > 330 {
		t.Fatalf("expected roughly 325 km, got %d", d)
	}
}

func TestDistanceKmIsSymmetric(t *testing.T) {
	a := models.Coordinate{Lat: 51.1, Lon: 71.4}
	b := models.Coordinate{Lat: 43.2, Lon: 76.9}
	if DistanceKm(a, b) != DistanceKm(b, a) {
		t.Fatalf("distance should not depend on direction")
	}
}

func TestHaversineKmQuarterMeridian(t *testing.T) {
	equator := models.Coordinate{Lat: 0, Lon: 0}
	pole := models.Coordinate{Lat: 90, Lon: 0}
	d := HaversineKm(equator, pole)
	want := math.Pi * earthRadiusKm / 2
	if math.Abs(d-want) > 0.5 {
		t.Fatalf("expected %.1f, got %.1f", want, d)
	}
}
