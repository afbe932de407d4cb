package geo

import (
	"errors"
	"math"
	"testing"

	"run-tracker-service/internal/domain"
)

func TestDistanceKmKnownPairs(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tol                    float64
	}{
		{"equator to pole", 0, 0, 0, 90, 10007.5, 0.1},
		{"half circumference", 0, 0, 0, 180, EarthRadiusKm * math.Pi, 1e-6},
		{"half circumference rounded", 0, 0, 0, 180, 20015.1, 0.1},
		{"london to paris", 51.5074, -0.1278, 48.8566, 2.3522, 343.5, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tol {
				t.Fatalf("DistanceKm = %v, want %v (+/- %v)", got, tt.want, tt.tol)
			}
		})
	}
}

func TestDistanceKmMatchesRadiusTimesAngle(t *testing.T) {
	// One degree of longitude on the equator is R * pi / 180.
	got := DistanceKm(0, 0, 0, 1)
	want := EarthRadiusKm * math.Pi / 180
	if math.Abs(got-want)/want > 0.001 {
		t.Fatalf("DistanceKm = %v, want %v within 0.1%%", got, want)
	}
}

func TestDistanceKmSamePointIsZero(t *testing.T) {
	points := []domain.Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: -6.2, Lon: 106.84},
		{Lat: 89.999, Lon: -179.5},
		{Lat: -90, Lon: 180},
	}
	for _, p := range points {
		if d := Distance(p, p); d > 1e-9 {
			t.Errorf("Distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	pairs := [][2]domain.Coordinates{
		{{Lat: 51.5074, Lon: -0.1278}, {Lat: 48.8566, Lon: 2.3522}},
		{{Lat: -33.8688, Lon: 151.2093}, {Lat: 40.7128, Lon: -74.006}},
		{{Lat: -6.18, Lon: 106.82}, {Lat: -6.2, Lon: 106.84}},
		{{Lat: 10, Lon: 170}, {Lat: -10, Lon: -170}},
	}
	for _, p := range pairs {
		ab := Distance(p[0], p[1])
		ba := Distance(p[1], p[0])
		if ab != ba {
			t.Errorf("asymmetric: d(a,b)=%v d(b,a)=%v", ab, ba)
		}
	}
}

func TestDistanceKmNaNPassesThrough(t *testing.T) {
	if d := DistanceKm(math.NaN(), 0, 0, 0); !math.IsNaN(d) {
		t.Fatalf("DistanceKm(NaN, ...) = %v, want NaN", d)
	}
	if d := DistanceKm(0, math.Inf(1), 0, 0); !math.IsNaN(d) {
		t.Fatalf("DistanceKm(..., +Inf, ...) = %v, want NaN", d)
	}
}

func TestDistanceKmOutOfRangeIsNotRejected(t *testing.T) {
	d := DistanceKm(120, 0, 0, 0)
	if math.IsNaN(d) || d < 0 {
		t.Fatalf("DistanceKm(120, 0, 0, 0) = %v, want a finite non-negative value", d)
	}
}

func TestPathDistanceKm(t *testing.T) {
	if d := PathDistanceKm(nil); d != 0 {
		t.Fatalf("empty path = %v, want 0", d)
	}
	if d := PathDistanceKm([]domain.Coordinates{{Lat: 1, Lon: 1}}); d != 0 {
		t.Fatalf("single point = %v, want 0", d)
	}

	path := []domain.Coordinates{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 0, Lon: 2}}
	want := DistanceKm(0, 0, 0, 1) + DistanceKm(0, 1, 0, 2)
	if d := PathDistanceKm(path); math.Abs(d-want) > 1e-9 {
		t.Fatalf("PathDistanceKm = %v, want %v", d, want)
	}
}

func TestValidate(t *testing.T) {
	valid := []domain.Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: 90, Lon: 180},
		{Lat: -90, Lon: -180},
	}
	for _, c := range valid {
		if err := Validate(c); err != nil {
			t.Errorf("Validate(%v) unexpected error: %v", c, err)
		}
	}

	invalid := []domain.Coordinates{
		{Lat: 90.0001, Lon: 0},
		{Lat: 0, Lon: -180.5},
		{Lat: math.NaN(), Lon: 0},
		{Lat: 0, Lon: math.Inf(-1)},
	}
	for _, c := range invalid {
		err := Validate(c)
		if !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("Validate(%v) = %v, want ErrInvalidCoordinate", c, err)
		}
	}
}
