package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process settings read from the environment.
type Config struct {
	Port           string
	DBDriver       string
	DatabaseURL    string
	SeedPath       string
	SessionTTL     time.Duration
	SessionBackend string
	RedisURL       string
	LogLevel       string
	LogFormat      string
	CookieSecure   bool
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads .env into the environment if the file exists.
// It reports whether a file was loaded.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads and validates all settings.
func Load() (Config, error) {
	cfg := Config{
		Port:           Get("PORT", "5000"),
		DBDriver:       Get("DB_DRIVER", "sqlite"),
		DatabaseURL:    Get("DATABASE_URL", "data/run_tracker.db"),
		SeedPath:       os.Getenv("SEED_PATH"),
		SessionBackend: Get("SESSION_BACKEND", "sql"),
		RedisURL:       Get("REDIS_URL", "redis://localhost:6379/0"),
		LogLevel:       Get("LOG_LEVEL", "info"),
		LogFormat:      Get("LOG_FORMAT", "json"),
	}

	// An explicitly empty SEED_PATH disables seeding.
	if _, ok := os.LookupEnv("SEED_PATH"); !ok {
		cfg.SeedPath = "data/seeds/sample.json"
	}

	ttl, err := time.ParseDuration(Get("SESSION_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: parse SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("load config: SESSION_TTL must be positive, got %s", ttl)
	}
	cfg.SessionTTL = ttl

	secure, err := strconv.ParseBool(Get("COOKIE_SECURE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: parse COOKIE_SECURE: %w", err)
	}
	cfg.CookieSecure = secure

	switch cfg.DBDriver {
	case "sqlite", "pgx":
	default:
		return Config{}, fmt.Errorf("load config: unsupported DB_DRIVER %q (want sqlite or pgx)", cfg.DBDriver)
	}

	switch cfg.SessionBackend {
	case "sql", "redis":
	default:
		return Config{}, fmt.Errorf("load config: unsupported SESSION_BACKEND %q (want sql or redis)", cfg.SessionBackend)
	}

	return cfg, nil
}
