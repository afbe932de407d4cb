package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"run-tracker-service/internal/domain"
	"run-tracker-service/internal/platform/obs"
	"run-tracker-service/internal/ports"
)

// SQL-backed implementation of the UserRepository port.
type SQLUserRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLUserRepository(db *sql.DB, dialect Dialect) *SQLUserRepository {
	return &SQLUserRepository{DB: db, Dialect: dialect}
}

func (s *SQLUserRepository) CreateUser(ctx context.Context, username, passwordHash string) (_ *domain.User, err error) {
	defer obs.Time(ctx, "users.create")(&err)

	if s.DB == nil {
		return nil, errors.New("sql user repository: DB is nil")
	}

	query := s.Dialect.rebind(`
	INSERT INTO users (username, password_hash)
	VALUES (?, ?)
	RETURNING id;
	`)

	var id int64
	if err := s.DB.QueryRowContext(ctx, query, username, passwordHash).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create user %q: %w", username, ports.ErrConflict)
		}
		return nil, fmt.Errorf("create user %q: insert: %w", username, err)
	}

	return &domain.User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}

func (s *SQLUserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getUser(ctx, "users.get_by_id", `WHERE id = ?`, id)
}

func (s *SQLUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getUser(ctx, "users.get_by_username", `WHERE username = ?`, username)
}

func (s *SQLUserRepository) getUser(ctx context.Context, op, where string, arg any) (_ *domain.User, err error) {
	defer obs.Time(ctx, op)(&err)

	if s.DB == nil {
		return nil, errors.New("sql user repository: DB is nil")
	}

	query := s.Dialect.rebind(`
	SELECT
		id,
		username,
		password_hash
	FROM users
	` + where + `;`)

	var u domain.User
	err = s.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user %v: %w", arg, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %v: scan row: %w", arg, err)
	}

	return &u, nil
}
