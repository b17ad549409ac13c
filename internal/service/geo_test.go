package service

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
		tolerance              float64
	}{
		{"same point", 51.5074, -0.1278, 51.5074, -0.1278, 0, 0},
		{"london to paris", 51.5074, -0.1278, 48.8566, 2.3522, 344, 2},
		{"london to edinburgh", 51.5074, -0.1278, 55.9533, -3.1883, 534, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("HaversineKm = %v, expected %v +/- %v", got, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestCenterDistanceKm_MissingCoordinates(t *testing.T) {
	// Nil coordinates fall back to the center itself
	if got := CenterDistanceKm(nil, nil); got != 0 {
		t.Errorf("Expected 0 for missing coordinates, got %v", got)
	}

	lat := CenterLat
	if got := CenterDistanceKm(&lat, nil); got != 0 {
		t.Errorf("Expected 0 when either coordinate is missing, got %v", got)
	}
}

func TestCenterDistanceKm_KnownPoint(t *testing.T) {
	lat, lon := 51.4941, -0.1738 // South Kensington
	got := CenterDistanceKm(&lat, &lon)
	if got < 3 || got > 4 {
		t.Errorf("South Kensington should be 3-4km from center, got %v", got)
	}
}

func TestNearestLandmarkKm(t *testing.T) {
	// A point sitting exactly on a registered landmark
	lat, lon := 51.5036, -0.1143 // Waterloo
	if got := NearestLandmarkKm(&lat, &lon); got != 0 {
		t.Errorf("Expected 0 on a landmark, got %v", got)
	}

	// Missing coordinates fall back to the center, which is not itself a
	// landmark, so the minimum is deterministic and non-zero
	got := NearestLandmarkKm(nil, nil)
	if got <= 0 {
		t.Errorf("Expected deterministic non-zero minimum, got %v", got)
	}
	expected := HaversineKm(CenterLat, CenterLon, 51.5036, -0.1143)
	if got != expected {
		t.Errorf("Center fallback should be nearest to Waterloo (%v), got %v", expected, got)
	}
}
