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

// SQL-backed implementation of the RunRepository port.
type SQLRunRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLRunRepository(db *sql.DB, dialect Dialect) *SQLRunRepository {
	return &SQLRunRepository{DB: db, Dialect: dialect}
}

func (s *SQLRunRepository) CreateRun(ctx context.Context, run domain.Run) (_ *domain.Run, err error) {
	defer obs.Time(ctx, "runs.create")(&err)

	if s.DB == nil {
		return nil, errors.New("sql run repository: DB is nil")
	}

	query := s.Dialect.rebind(`
	INSERT INTO runs (
		user_id,
		date,
		distance_km,
		duration_min,
		path_coordinates
	)
	VALUES (?, ?, ?, ?, ?)
	RETURNING id;
	`)

	err = s.DB.QueryRowContext(ctx, query,
		run.UserID, run.Date, run.DistanceKm, run.DurationMin, run.PathCoordinates,
	).Scan(&run.ID)
	if err != nil {
		return nil, fmt.Errorf("create run: insert user_id=%d: %w", run.UserID, err)
	}

	return &run, nil
}

func (s *SQLRunRepository) GetRun(ctx context.Context, id int64) (_ *domain.Run, err error) {
	defer obs.Time(ctx, "runs.get")(&err)

	if s.DB == nil {
		return nil, errors.New("sql run repository: DB is nil")
	}

	query := s.Dialect.rebind(`
	SELECT
		id,
		user_id,
		date,
		distance_km,
		duration_min,
		path_coordinates
	FROM runs
	WHERE id = ?;
	`)

	run, err := scanRun(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run id=%d: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run id=%d: scan row: %w", id, err)
	}

	return run, nil
}

func (s *SQLRunRepository) ListRunsByUser(ctx context.Context, userID int64) (_ []*domain.Run, err error) {
	defer obs.Time(ctx, "runs.list")(&err)

	if s.DB == nil {
		return nil, errors.New("sql run repository: DB is nil")
	}

	query := s.Dialect.rebind(`
	SELECT
		id,
		user_id,
		date,
		distance_km,
		duration_min,
		path_coordinates
	FROM runs
	WHERE user_id = ?
	ORDER BY id DESC;
	`)

	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.Run, 0, 16)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}

func (s *SQLRunRepository) UpdateRun(ctx context.Context, run domain.Run) (err error) {
	defer obs.Time(ctx, "runs.update")(&err)

	if s.DB == nil {
		return errors.New("sql run repository: DB is nil")
	}

	query := s.Dialect.rebind(`
	UPDATE runs
	SET date = ?, distance_km = ?, duration_min = ?
	WHERE id = ?;
	`)

	res, err := s.DB.ExecContext(ctx, query, run.Date, run.DistanceKm, run.DurationMin, run.ID)
	if err != nil {
		return fmt.Errorf("update run id=%d: exec: %w", run.ID, err)
	}

	return requireAffected(res, fmt.Sprintf("update run id=%d", run.ID))
}

func (s *SQLRunRepository) DeleteRun(ctx context.Context, id int64) (err error) {
	defer obs.Time(ctx, "runs.delete")(&err)

	if s.DB == nil {
		return errors.New("sql run repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, s.Dialect.rebind(`DELETE FROM runs WHERE id = ?;`), id)
	if err != nil {
		return fmt.Errorf("delete run id=%d: exec: %w", id, err)
	}

	return requireAffected(res, fmt.Sprintf("delete run id=%d", id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.Run, error) {
	var (
		run  domain.Run
		path sql.NullString
	)
	if err := row.Scan(&run.ID, &run.UserID, &run.Date, &run.DistanceKm, &run.DurationMin, &path); err != nil {
		return nil, err
	}
	if path.Valid {
		run.PathCoordinates = &path.String
	}
	return &run, nil
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ports.ErrNotFound)
	}
	return nil
}
