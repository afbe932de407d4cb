package memory

import (
	"context"
	"fmt"
	"run-tracker-service/internal/domain"
	"run-tracker-service/internal/ports"
	"sync"
)

// UserRepository is a thread-safe in-memory ports.UserRepository.
type UserRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]domain.User
	byLogin map[string]int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[int64]domain.User),
		byLogin: make(map[string]int64),
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byLogin[username]; ok {
		return nil, fmt.Errorf("create user %q: %w", username, ports.ErrConflict)
	}

	r.nextID++
	u := domain.User{ID: r.nextID, Username: username, PasswordHash: passwordHash}
	r.byID[u.ID] = u
	r.byLogin[username] = u.ID
	return &u, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user %d: %w", id, ports.ErrNotFound)
	}
	return &u, nil
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[username]
	if !ok {
		return nil, fmt.Errorf("get user %q: %w", username, ports.ErrNotFound)
	}
	u := r.byID[id]
	return &u, nil
}
