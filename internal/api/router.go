package api

import (
	"context"
	"net/http"
	"run-tracker-service/internal/api/handlers"
	"run-tracker-service/internal/services"

	"github.com/rs/zerolog"
)

type Deps struct {
	Runs         *services.RunService
	Auth         *services.AuthService
	Logger       zerolog.Logger
	CookieSecure bool
	// Optional storage check for /health.
	Ping func(ctx context.Context) error
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &handlers.AuthHandler{Auth: d.Auth, CookieSecure: d.CookieSecure}
	runHandler := &handlers.RunHandler{Runs: d.Runs}
	healthHandler := &handlers.HealthHandler{Ping: d.Ping}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/api/distance", handlers.Distance)

	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.Handle("/api/auth/logout", requireAuth(d.Auth, authHandler.Logout))
	mux.HandleFunc("/api/auth/status", authHandler.Status)

	mux.Handle("/api/runs", requireAuth(d.Auth, runHandler.Collection))
	mux.Handle("/api/runs/gps", requireAuth(d.Auth, runHandler.AddGPS))
	mux.Handle("/api/runs/{id}", requireAuth(d.Auth, runHandler.Item))

	return requestContext(d.Logger, loggingMiddleware(mux))
}
