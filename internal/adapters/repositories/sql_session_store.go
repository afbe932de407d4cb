package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"run-tracker-service/internal/domain"
	"run-tracker-service/internal/platform/obs"
	"run-tracker-service/internal/ports"
	"time"
)

// SQLSessionStore keeps sessions in the sessions table. Expiry is stored as
// unix milliseconds so both dialects use a plain integer column.
type SQLSessionStore struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLSessionStore(db *sql.DB, dialect Dialect) *SQLSessionStore {
	return &SQLSessionStore{DB: db, Dialect: dialect}
}

func (s *SQLSessionStore) SaveSession(ctx context.Context, sess domain.Session) (err error) {
	defer obs.Time(ctx, "sessions.save")(&err)

	if s.DB == nil {
		return errors.New("sql session store: DB is nil")
	}

	query := s.Dialect.rebind(`
	INSERT INTO sessions (token, user_id, expires_at)
	VALUES (?, ?, ?)
	ON CONFLICT (token) DO UPDATE
	SET user_id = EXCLUDED.user_id,
		expires_at = EXCLUDED.expires_at;
	`)

	if _, err := s.DB.ExecContext(ctx, query, sess.Token, sess.UserID, sess.ExpiresAt.UnixMilli()); err != nil {
		return fmt.Errorf("save session user_id=%d: %w", sess.UserID, err)
	}

	return nil
}

func (s *SQLSessionStore) GetSession(ctx context.Context, token string) (_ *domain.Session, err error) {
	defer obs.Time(ctx, "sessions.get")(&err)

	if s.DB == nil {
		return nil, errors.New("sql session store: DB is nil")
	}

	query := s.Dialect.rebind(`
	SELECT user_id, expires_at
	FROM sessions
	WHERE token = ?;
	`)

	sess := domain.Session{Token: token}
	var expiresAt int64
	err = s.DB.QueryRowContext(ctx, query, token).Scan(&sess.UserID, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get session: %w", ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: scan row: %w", err)
	}
	sess.ExpiresAt = time.UnixMilli(expiresAt).UTC()

	return &sess, nil
}

func (s *SQLSessionStore) DeleteSession(ctx context.Context, token string) (err error) {
	defer obs.Time(ctx, "sessions.delete")(&err)

	if s.DB == nil {
		return errors.New("sql session store: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, s.Dialect.rebind(`DELETE FROM sessions WHERE token = ?;`), token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// DeleteExpired removes sessions that expired before now and returns how many were removed.
func (s *SQLSessionStore) DeleteExpired(ctx context.Context, now time.Time) (_ int64, err error) {
	defer obs.Time(ctx, "sessions.delete_expired")(&err)

	res, err := s.DB.ExecContext(ctx, s.Dialect.rebind(`DELETE FROM sessions WHERE expires_at <= ?;`), now.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: rows affected: %w", err)
	}
	return n, nil
}
