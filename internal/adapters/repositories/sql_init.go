package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		distance_km REAL NOT NULL,
		duration_min INTEGER NOT NULL,
		path_coordinates TEXT
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expires_at INTEGER NOT NULL
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_runs_user_id_id
	ON runs(user_id, id);
	`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS users (
		id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS runs (
		id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		duration_min INTEGER NOT NULL,
		path_coordinates TEXT
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expires_at BIGINT NOT NULL
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_runs_user_id_id
	ON runs(user_id, id);
	`,
}

// Initialize the database schema for the given dialect.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	statements := sqliteSchema
	if dialect == Postgres {
		statements = postgresSchema
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type RunSeed struct {
	Date            string  `json:"date"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMin     int     `json:"duration_min"`
	PathCoordinates *string `json:"path_coordinates"`
}

type UserSeed struct {
	Username string    `json:"username"`
	Password string    `json:"password"`
	Runs     []RunSeed `json:"runs"`
}

// HashFunc turns a plain-text seed password into the stored hash.
type HashFunc func(password string) (string, error)

// Populate an empty database with users and runs from a JSON file.
// It reports whether anything was inserted; a database that already has
// users is left untouched.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string, hash HashFunc) (bool, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return false, fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var data []UserSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return false, fmt.Errorf("seed: parse json: %w", err)
	}

	for i, u := range data {
		if strings.TrimSpace(u.Username) == "" || u.Password == "" {
			return false, fmt.Errorf("seed: user at index %d: username and password are required", i+1)
		}
		for j, r := range u.Runs {
			if strings.TrimSpace(r.Date) == "" {
				return false, fmt.Errorf("seed: user %q run at index %d: date cannot be empty", u.Username, j+1)
			}
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users;`).Scan(&count); err != nil {
		return false, fmt.Errorf("seed: count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	insertUser := dialect.rebind(`
	INSERT INTO users (username, password_hash)
	VALUES (?, ?)
	RETURNING id;
	`)
	insertRun := dialect.rebind(`
	INSERT INTO runs (user_id, date, distance_km, duration_min, path_coordinates)
	VALUES (?, ?, ?, ?, ?);
	`)

	for _, u := range data {
		h, err := hash(u.Password)
		if err != nil {
			return false, fmt.Errorf("seed: hash password for %q: %w", u.Username, err)
		}

		var userID int64
		if err := tx.QueryRowContext(ctx, insertUser, strings.TrimSpace(u.Username), h).Scan(&userID); err != nil {
			return false, fmt.Errorf("seed: insert user %q: %w", u.Username, err)
		}

		for _, r := range u.Runs {
			if _, err := tx.ExecContext(ctx, insertRun, userID, r.Date, r.DistanceKm, r.DurationMin, r.PathCoordinates); err != nil {
				return false, fmt.Errorf("seed: insert run for %q on %s: %w", u.Username, r.Date, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("seed: commit tx: %w", err)
	}

	return true, nil
}
