package ports

import (
	"context"
	"run-tracker-service/internal/domain"
)

// Contract for storing login sessions keyed by token.
type SessionStore interface {
	SaveSession(ctx context.Context, s domain.Session) error
	// Returns ErrNotFound for unknown tokens.
	GetSession(ctx context.Context, token string) (*domain.Session, error)
	DeleteSession(ctx context.Context, token string) error
}
