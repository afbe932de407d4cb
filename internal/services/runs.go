package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"run-tracker-service/internal/domain"
	"run-tracker-service/internal/ports"
	"strings"
	"time"
)

// Runs shorter than this are treated as a stationary GPS recording.
const MinGPSDistanceKm = 0.01

const dateLayout = "2006-01-02"

type ManualRunInput struct {
	Date        string
	DistanceKm  float64
	DurationMin int
}

type GPSRunInput struct {
	Path        string
	DurationMin float64
	// Empty means today.
	Date string
}

// RunPatch carries the fields of a partial update; nil fields are left unchanged.
type RunPatch struct {
	Date        *string
	DistanceKm  *float64
	DurationMin *int
}

// RunService implements run use-cases scoped to the acting user.
type RunService struct {
	Runs ports.RunRepository
	Now  func() time.Time
}

func NewRunService(runs ports.RunRepository) *RunService {
	return &RunService{Runs: runs, Now: time.Now}
}

// Record a run entered by hand.
func (s *RunService) AddManual(ctx context.Context, userID int64, in ManualRunInput) (*domain.Run, error) {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		return nil, invalid("date is required")
	}
	if err := checkDistance(in.DistanceKm); err != nil {
		return nil, err
	}
	if in.DurationMin < 0 {
		return nil, invalid("duration_min must not be negative")
	}

	run, err := s.Runs.CreateRun(ctx, domain.Run{
		UserID:      userID,
		Date:        date,
		DistanceKm:  in.DistanceKm,
		DurationMin: in.DurationMin,
	})
	if err != nil {
		return nil, fmt.Errorf("add manual run: %w", err)
	}
	return run, nil
}

// Record a run from a GPS path. The stored distance is the Haversine length of the path.
func (s *RunService) AddGPS(ctx context.Context, userID int64, in GPSRunInput) (*domain.Run, error) {
	if math.IsNaN(in.DurationMin) || math.IsInf(in.DurationMin, 0) {
		return nil, invalid("duration_min must be a number")
	}
	if in.DurationMin <= 0 {
		return nil, invalid("run duration must be greater than 0 minutes")
	}
	if in.DurationMin > math.MaxInt32 {
		return nil, invalid("duration_min is out of range")
	}

	distance, err := PathDistance(in.Path)
	if err != nil {
		return nil, err
	}
	if distance < MinGPSDistanceKm {
		return nil, invalid("detected distance is 0 km: too few GPS points or no movement")
	}

	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = s.now().Format(dateLayout)
	}

	path := in.Path
	run, err := s.Runs.CreateRun(ctx, domain.Run{
		UserID:          userID,
		Date:            date,
		DistanceKm:      distance,
		DurationMin:     int(math.Round(in.DurationMin)),
		PathCoordinates: &path,
	})
	if err != nil {
		return nil, fmt.Errorf("add gps run: %w", err)
	}
	return run, nil
}

// List the user's runs, newest first.
func (s *RunService) List(ctx context.Context, userID int64) ([]*domain.Run, error) {
	runs, err := s.Runs.ListRunsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list runs user_id=%d: %w", userID, err)
	}
	return runs, nil
}

// Apply a partial update to a run owned by userID.
func (s *RunService) Update(ctx context.Context, userID, runID int64, patch RunPatch) (*domain.Run, error) {
	run, err := s.owned(ctx, userID, runID)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil {
		d := strings.TrimSpace(*patch.Date)
		if d == "" {
			return nil, invalid("date must not be empty")
		}
		run.Date = d
	}
	if patch.DistanceKm != nil {
		if err := checkDistance(*patch.DistanceKm); err != nil {
			return nil, err
		}
		run.DistanceKm = *patch.DistanceKm
	}
	if patch.DurationMin != nil {
		if *patch.DurationMin < 0 {
			return nil, invalid("duration_min must not be negative")
		}
		run.DurationMin = *patch.DurationMin
	}

	if err := s.Runs.UpdateRun(ctx, *run); err != nil {
		return nil, fmt.Errorf("update run id=%d: %w", runID, err)
	}
	return run, nil
}

// Delete a run owned by userID.
func (s *RunService) Delete(ctx context.Context, userID, runID int64) error {
	if _, err := s.owned(ctx, userID, runID); err != nil {
		return err
	}
	if err := s.Runs.DeleteRun(ctx, runID); err != nil {
		return fmt.Errorf("delete run id=%d: %w", runID, err)
	}
	return nil
}

func (s *RunService) owned(ctx context.Context, userID, runID int64) (*domain.Run, error) {
	run, err := s.Runs.GetRun(ctx, runID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load run id=%d: %w", runID, err)
	}
	if run.UserID != userID {
		return nil, ErrForbidden
	}
	return run, nil
}

func (s *RunService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func checkDistance(km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return invalid("distance_km must be a number")
	}
	if km < 0 {
		return invalid("distance_km must not be negative")
	}
	return nil
}
