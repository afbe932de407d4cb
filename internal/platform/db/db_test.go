package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"data/run_tracker.db", "data/run_tracker.db?" + sqlitePragmas},
		{"file:data/run_tracker.db", "file:data/run_tracker.db?" + sqlitePragmas},
		{"file:data/run_tracker.db?mode=rwc", "file:data/run_tracker.db?mode=rwc&" + sqlitePragmas},
		{"file:data/run_tracker.db?", "file:data/run_tracker.db?" + sqlitePragmas},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sqliteDSN(tt.in), tt.in)
	}
}

func TestSQLiteFilePath(t *testing.T) {
	assert.Equal(t, "data/run_tracker.db", sqliteFilePath("file:data/run_tracker.db?mode=rwc"))
	assert.Equal(t, "data/run_tracker.db", sqliteFilePath("data/run_tracker.db"))
}

func TestOpenSQLiteWithQueryString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runs.db")

	conn, err := Open("sqlite", "file:"+path+"?mode=rwc")
	require.NoError(t, err)
	defer conn.Close()

	var fk int
	require.NoError(t, conn.QueryRowContext(context.Background(), "PRAGMA foreign_keys;").Scan(&fk))
	assert.Equal(t, 1, fk)
}
