package geo

import (
	"math"
	"testing"
)

func TestHaversineDistanceZero(t *testing.T) {
	if d := HaversineDistance(0, 0, 0, 0); d != 0 {
		t.Errorf("distance between identical points = %f, want 0", d)
	}
	if d := HaversineDistance(40.0, -75.0, 40.0, -75.0); d != 0 {
		t.Errorf("distance between identical points = %f, want 0", d)
	}
}

func TestHaversineDistanceOneDegreeLongitudeAtEquator(t *testing.T) {
	// One degree of longitude along the equator is ~111,320 m.
	d := HaversineDistance(0, 0, 0, 1)
	want := 111320.0
	if math.Abs(d-want)/want > 0.01 {
		t.Errorf("distance = %f, want within 1%% of %f", d, want)
	}
}

func TestHaversineDistanceSymmetry(t *testing.T) {
	d1 := HaversineDistance(40.0, -75.0, 40.1, -75.1)
	d2 := HaversineDistance(40.1, -75.1, 40.0, -75.0)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestHaversineDistanceShortRange(t *testing.T) {
	// 50m of arc expressed as degrees of latitude.
	deltaDeg := 50.0 * 180.0 / (math.Pi * 6371000.0)
	d := HaversineDistance(40.0, -75.0, 40.0+deltaDeg, -75.0)
	if math.Abs(d-50.0) > 0.5 {
		t.Errorf("expected ~50m, got %f", d)
	}
}
