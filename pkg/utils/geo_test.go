package utils

import (
	"math"
	"testing"

	"wandermind/internal/models/response_models"
)

func TestDistanceKm(t *testing.T) {
	bangalore := response_models.Coordinates{Lat: 12.97, Lng: 77.59}
	chennai := response_models.Coordinates{Lat: 13.08, Lng: 80.27}

	got, ok := DistanceKm(bangalore, chennai)
	if !ok {
		t.Fatal("expected a distance for two valid coordinates")
	}
	if got < 280 || got > 300 {
		t.Errorf("Bangalore-Chennai distance = %.1f km, want roughly 290", got)
	}
}

func TestDistanceKmZeroForSamePoint(t *testing.T) {
	p := response_models.Coordinates{Lat: 48.8566, Lng: 2.3522}
	got, ok := DistanceKm(p, p)
	if !ok {
		t.Fatal("expected a distance")
	}
	if got != 0 {
		t.Errorf("distance to self = %v, want 0", got)
	}
}

func TestDistanceKmUnavailableForInvalidInput(t *testing.T) {
	valid := response_models.Coordinates{Lat: 12.97, Lng: 77.59}
	cases := map[string]response_models.Coordinates{
		"nan latitude":           {Lat: math.NaN(), Lng: 77.59},
		"latitude out of range":  {Lat: 91, Lng: 0},
		"longitude out of range": {Lat: 0, Lng: -181},
		"infinite longitude":     {Lat: 0, Lng: math.Inf(1)},
	}

	for name, bad := range cases {
		if _, ok := DistanceKm(valid, bad); ok {
			t.Errorf("%s: expected unavailable result", name)
		}
		if _, ok := DistanceKm(bad, valid); ok {
			t.Errorf("%s (first argument): expected unavailable result", name)
		}
	}
}
