package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"run-tracker-service/internal/domain"
)

type RunResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"user_id"`
	Date            string  `json:"date"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMin     int     `json:"duration_min"`
	Pace            string  `json:"pace"`
	PathCoordinates *string `json:"path_coordinates"`
}

func NewRunResponse(r *domain.Run) RunResponse {
	return RunResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		Date:            r.Date,
		DistanceKm:      math.Round(r.DistanceKm*100) / 100,
		DurationMin:     r.DurationMin,
		Pace:            r.Pace(),
		PathCoordinates: r.PathCoordinates,
	}
}

type CreateRunRequest struct {
	Date        *string `json:"date"`
	DistanceKm  *Number `json:"distance_km"`
	DurationMin *Number `json:"duration_min"`
}

type UpdateRunRequest struct {
	Date        *string `json:"date"`
	DistanceKm  *Number `json:"distance_km"`
	DurationMin *Number `json:"duration_min"`
}

type GPSRunRequest struct {
	// Either a JSON-encoded string or an inline [[lat, lon], ...] array.
	PathCoordinates json.RawMessage `json:"path_coordinates"`
	DurationMin     *Number         `json:"duration_min"`
	Date            string          `json:"date"`
}

// Path returns the coordinate JSON as text. ok is false when the field is absent or null.
func (r GPSRunRequest) Path() (path string, ok bool, err error) {
	raw := bytes.TrimSpace(r.PathCoordinates)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false, nil
	}

	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &path); err != nil {
			return "", true, err
		}
		return path, true, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", true, err
	}
	return buf.String(), true, nil
}
