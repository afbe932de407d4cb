package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"run-tracker-service/internal/adapters/repositories"
	"run-tracker-service/internal/adapters/sessions"
	"run-tracker-service/internal/api"
	"run-tracker-service/internal/config"
	"run-tracker-service/internal/platform/db"
	"run-tracker-service/internal/platform/obs"
	"run-tracker-service/internal/ports"
	"run-tracker-service/internal/services"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

const sessionSweepInterval = 15 * time.Minute

// main is the application composition root.
// It wires concrete adapters (SQL, Redis) behind ports and starts the HTTP server.
func main() {
	dotenv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := obs.NewLogger(os.Stderr, "info", "json")
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := obs.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if !dotenv {
		logger.Info().Msg("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	dialect, err := repositories.DialectFor(cfg.DBDriver)
	if err != nil {
		return err
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	users := repositories.NewSQLUserRepository(conn, dialect)
	runs := repositories.NewSQLRunRepository(conn, dialect)

	sessionStore, closeSessions, err := openSessionStore(ctx, cfg, conn, dialect)
	if err != nil {
		return err
	}
	defer closeSessions()

	auth := services.NewAuthService(users, sessionStore, cfg.SessionTTL)

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(ctx, conn, dialect, cfg.SeedPath, auth.HashPassword); err != nil {
		return err
	}

	if store, ok := sessionStore.(*repositories.SQLSessionStore); ok {
		go sweepSessions(ctx, store)
	}

	router := api.NewRouter(api.Deps{
		Runs:         services.NewRunService(runs),
		Auth:         auth,
		Logger:       logger,
		CookieSecure: cfg.CookieSecure,
		Ping:         conn.PingContext,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("db_driver", cfg.DBDriver).Str("sessions", cfg.SessionBackend).Msg("server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openSessionStore(ctx context.Context, cfg config.Config, conn *sql.DB, dialect repositories.Dialect) (ports.SessionStore, func(), error) {
	if cfg.SessionBackend != "redis" {
		return repositories.NewSQLSessionStore(conn, dialect), func() {}, nil
	}

	client, err := sessions.Dial(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return sessions.NewRedisSessionStore(client), func() { client.Close() }, nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, seedPath string, hash repositories.HashFunc) error {
	logger := zerolog.Ctx(ctx)

	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		return err
	}

	if seedPath == "" {
		return nil
	}
	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		logger.Warn().Str("seed_path", seedPath).Msg("seed file not found, skipping sample data")
		return nil
	}

	inserted, err := repositories.SeedFromJSON(ctx, conn, dialect, seedPath, hash)
	if err != nil {
		return err
	}
	if inserted {
		logger.Info().Str("seed_path", seedPath).Msg("sample users and runs created")
	} else {
		logger.Info().Msg("database already has users, skipping sample data")
	}
	return nil
}

func sweepSessions(ctx context.Context, store *repositories.SQLSessionStore) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := store.DeleteExpired(ctx, now)
			if err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Msg("session sweep failed")
				continue
			}
			if n > 0 {
				zerolog.Ctx(ctx).Debug().Int64("removed", n).Msg("expired sessions removed")
			}
		}
	}
}
