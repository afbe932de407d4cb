package services

import (
	"encoding/json"
	"fmt"
	"math"
	"run-tracker-service/internal/domain"
	"run-tracker-service/internal/geo"
)

// ParsePath decodes a GPS path recorded as a JSON array of [lat, lon] pairs.
func ParsePath(raw string) ([]domain.Coordinates, error) {
	var pairs [][]*float64
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil, &ValidationError{Msg: "failed to parse coordinate JSON", Err: err}
	}

	path := make([]domain.Coordinates, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, invalid(fmt.Sprintf("point %d must be a [lat, lon] pair, got %d values", i, len(p)))
		}
		if p[0] == nil || p[1] == nil {
			return nil, invalid(fmt.Sprintf("point %d must hold two numbers, got null", i))
		}
		path = append(path, domain.Coordinates{Lat: *p[0], Lon: *p[1]})
	}

	return path, nil
}

// PathDistance returns the length of a raw GPS path in kilometers, rounded to 3 decimals.
// Every point must be a valid coordinate.
func PathDistance(raw string) (float64, error) {
	path, err := ParsePath(raw)
	if err != nil {
		return 0, err
	}

	for i, c := range path {
		if err := geo.Validate(c); err != nil {
			return 0, &ValidationError{Msg: fmt.Sprintf("point %d is not a valid coordinate", i), Err: err}
		}
	}

	return roundTo(geo.PathDistanceKm(path), 3), nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
