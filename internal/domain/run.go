package domain

import (
	"fmt"
	"math"
)

// Represents a single recorded run owned by one user.
// Manual runs carry no path; GPS runs keep the raw [[lat, lon], ...] JSON
// they were computed from.
type Run struct {
	ID              int64
	UserID          int64
	Date            string
	DistanceKm      float64
	DurationMin     int
	PathCoordinates *string
}

// Pace of the run formatted as "MM:SS / km".
func (r *Run) Pace() string {
	return FormatPace(r.DistanceKm, float64(r.DurationMin))
}

// FormatPace returns minutes per kilometer as "MM:SS / km", or "N/A" when
// either value is not positive.
func FormatPace(distanceKm, durationMin float64) string {
	if distanceKm <= 0 || durationMin <= 0 {
		return "N/A"
	}

	pace := durationMin / distanceKm
	minutes := int(pace)
	seconds := int(math.Round((pace - float64(minutes)) * 60))
	if seconds == 60 {
		minutes++
		seconds = 0
	}

	return fmt.Sprintf("%02d:%02d / km", minutes, seconds)
}
