package main

import (
	"context"
	"flag"
	"os"
	"run-tracker-service/internal/adapters/repositories"
	"run-tracker-service/internal/config"
	"run-tracker-service/internal/platform/db"
	"run-tracker-service/internal/platform/obs"
	"run-tracker-service/internal/services"
)

// dbtool initializes the schema and loads sample data without starting the server.
func main() {
	schemaOnly := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	dotenv := config.LoadDotEnv()
	cfg, err := config.Load()
	logger := obs.NewLogger(os.Stdout, cfg.LogLevel, "console")
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if !dotenv {
		logger.Info().Msg("no .env file found (using environment variables)")
	}

	dialect, err := repositories.DialectFor(cfg.DBDriver)
	if err != nil {
		logger.Fatal().Err(err).Msg("unsupported driver")
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	ctx := logger.WithContext(context.Background())

	logger.Info().Msg("initializing database schema...")
	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		logger.Fatal().Err(err).Msg("schema initialization failed")
	}
	logger.Info().Msg("schema ready")

	if *schemaOnly || cfg.SeedPath == "" {
		return
	}

	logger.Info().Str("seed_path", cfg.SeedPath).Msg("seeding database...")
	auth := &services.AuthService{}
	inserted, err := repositories.SeedFromJSON(ctx, conn, dialect, cfg.SeedPath, auth.HashPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}
	if !inserted {
		logger.Info().Msg("database already has users, nothing seeded")
		return
	}
	logger.Info().Msg("seeding complete")
}
