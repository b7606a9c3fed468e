package geo

import (
	"math"
	"testing"
)

func TestHaversineMeters(t *testing.T) {
	// Visalia (36.33, -119.29) to Tulare (36.21, -119.35) is roughly 14.5 km.
	d := HaversineMeters(36.33, -119.29, 36.21, -119.35)
	if d < 13000 || d > 16000 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineMeters_ZeroForSamePoint(t *testing.T) {
	if d := HaversineMeters(36.2077, -119.3473, 36.2077, -119.3473); d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}

func TestMetersToMiles(t *testing.T) {
	if got := MetersToMiles(1609.344); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected 1 mile, got %v", got)
	}
}

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		lat, lng float64
		ok       bool
	}{
		{36.2, -119.3, true},
		{90, 180, true},
		{-90, -180, true},
		{91, 0, false},
		{0, -181, false},
		{math.NaN(), 0, false},
	}
	for _, c := range cases {
		if got := ValidCoordinates(c.lat, c.lng); got != c.ok {
			t.Errorf("ValidCoordinates(%v, %v) = %v, want %v", c.lat, c.lng, got, c.ok)
		}
	}
}
