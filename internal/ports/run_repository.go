package ports

import (
	"context"
	"run-tracker-service/internal/domain"
)

// Port: a boundary for persisting Run entities.
type RunRepository interface {
	// Store a new run and return it with its assigned ID.
	CreateRun(ctx context.Context, run domain.Run) (*domain.Run, error)
	// Retrieve one run by ID. Returns ErrNotFound if missing.
	GetRun(ctx context.Context, id int64) (*domain.Run, error)
	// Retrieve all runs owned by a user, newest ID first.
	ListRunsByUser(ctx context.Context, userID int64) ([]*domain.Run, error)
	// Overwrite date, distance and duration of an existing run.
	UpdateRun(ctx context.Context, run domain.Run) error
	// Remove a run. Returns ErrNotFound if missing.
	DeleteRun(ctx context.Context, id int64) error
}
