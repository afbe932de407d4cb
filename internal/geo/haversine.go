// Package geo computes great-circle distances on a spherical Earth.
package geo

import (
	"errors"
	"fmt"
	"math"

	"run-tracker-service/internal/domain"
)

// Mean Earth radius in kilometers.
const EarthRadiusKm = 6371.0

// ErrInvalidCoordinate is returned by Validate for out-of-range or non-finite values.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceKm returns the Haversine distance in kilometers between (lat1, lon1) and (lat2, lon2).
//
// Inputs are not range checked. NaN and Inf propagate as NaN.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1R := toRad(lat1)
	lat2R := toRad(lat2)
	dLat := lat2R - lat1R
	dLon := toRad(lon2) - toRad(lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1R)*math.Cos(lat2R)*sinLon*sinLon

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// Distance is DistanceKm over coordinate values.
func Distance(a, b domain.Coordinates) float64 {
	return DistanceKm(a.Lat, a.Lon, b.Lat, b.Lon)
}

// PathDistanceKm sums the distance between consecutive points.
// Paths with fewer than two points have zero length.
func PathDistanceKm(path []domain.Coordinates) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += Distance(path[i-1], path[i])
	}
	return total
}

// Validate reports whether c lies within [-90, 90] latitude and [-180, 180] longitude.
func Validate(c domain.Coordinates) error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, c.Lat)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, c.Lon)
	}
	return nil
}
