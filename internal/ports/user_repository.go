package ports

import (
	"context"
	"run-tracker-service/internal/domain"
)

// Port: a boundary for persisting User accounts.
type UserRepository interface {
	// Store a new user. Returns ErrConflict if the username is taken.
	CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
