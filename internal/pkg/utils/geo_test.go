package utils

import (
	"math"
	"testing"
)

func TestCalculateHaversineDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		{"same point", 1.3, 103.8, 1.3, 103.8, 0, 0.001},
		// ~111.19 km per degree of latitude
		{"one degree latitude", 0, 0, 1, 0, 111195, 200},
		{"short hop", 1.3000, 103.8000, 1.3009, 103.8000, 100, 5},
	}

	for _, c := range cases {
		got := CalculateHaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
		if math.Abs(got-c.want) > c.tolerance {
			t.Errorf("%s: CalculateHaversineDistance = %.2f, want %.2f (±%.2f)",
				c.name, got, c.want, c.tolerance)
		}
	}
}

func TestCalculateHaversineDistanceSymmetry(t *testing.T) {
	a := CalculateHaversineDistance(1.3, 103.8, 3.1, 101.6)
	b := CalculateHaversineDistance(3.1, 101.6, 1.3, 103.8)
	if math.Abs(a-b) > 0.0001 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}
