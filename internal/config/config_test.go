package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "SESSION_TTL", "SESSION_BACKEND", "LOG_LEVEL", "COOKIE_SECURE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "data/run_tracker.db", cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "sql", cfg.SessionBackend)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DATABASE_URL", "postgres://localhost/runs")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SEED_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "redis", cfg.SessionBackend)
	assert.True(t, cfg.CookieSecure)
	assert.Empty(t, cfg.SeedPath)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("ttl", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "forever")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("negative ttl", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "-1h")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("session backend", func(t *testing.T) {
		t.Setenv("SESSION_BACKEND", "memcached")
		_, err := Load()
		require.Error(t, err)
	})
}
