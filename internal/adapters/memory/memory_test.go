package memory

import (
	"context"
	"sync"
	"testing"

	"run-tracker-service/internal/domain"
	"run-tracker-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRepositoryConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateRun(ctx, domain.Run{UserID: 1, Date: "2025-10-25", DistanceKm: 1, DurationMin: 5})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	runs, err := repo.ListRunsByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 50)
	for i := 1; i < len(runs); i++ {
		assert.Greater(t, runs[i-1].ID, runs[i].ID)
	}
}

func TestRunRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepository()

	_, err := repo.GetRun(ctx, 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateRun(ctx, domain.Run{ID: 1}), ports.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteRun(ctx, 1), ports.ErrNotFound)
}

func TestUserRepositoryConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	_, err := repo.CreateUser(ctx, "alice", "h")
	require.NoError(t, err)
	_, err = repo.CreateUser(ctx, "alice", "h")
	assert.ErrorIs(t, err, ports.ErrConflict)
}
