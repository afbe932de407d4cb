// Package memory provides in-process implementations of the ports, used by
// tests and by local runs that need no database.
package memory

import (
	"context"
	"fmt"
	"run-tracker-service/internal/domain"
	"run-tracker-service/internal/ports"
	"sort"
	"sync"
)

// RunRepository is a thread-safe in-memory ports.RunRepository.
type RunRepository struct {
	mu     sync.RWMutex
	nextID int64
	runs   map[int64]domain.Run
}

func NewRunRepository() *RunRepository {
	return &RunRepository{runs: make(map[int64]domain.Run)}
}

func (r *RunRepository) CreateRun(ctx context.Context, run domain.Run) (*domain.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	run.ID = r.nextID
	r.runs[run.ID] = run
	return &run, nil
}

func (r *RunRepository) GetRun(ctx context.Context, id int64) (*domain.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, fmt.Errorf("get run id=%d: %w", id, ports.ErrNotFound)
	}
	return &run, nil
}

func (r *RunRepository) ListRunsByUser(ctx context.Context, userID int64) ([]*domain.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Run, 0)
	for _, run := range r.runs {
		if run.UserID == userID {
			run := run
			out = append(out, &run)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *RunRepository) UpdateRun(ctx context.Context, run domain.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.runs[run.ID]
	if !ok {
		return fmt.Errorf("update run id=%d: %w", run.ID, ports.ErrNotFound)
	}
	cur.Date = run.Date
	cur.DistanceKm = run.DistanceKm
	cur.DurationMin = run.DurationMin
	r.runs[run.ID] = cur
	return nil
}

func (r *RunRepository) DeleteRun(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runs[id]; !ok {
		return fmt.Errorf("delete run id=%d: %w", id, ports.ErrNotFound)
	}
	delete(r.runs, id)
	return nil
}
