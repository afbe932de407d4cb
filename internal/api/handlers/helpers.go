package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"run-tracker-service/internal/api/dto"
	"run-tracker-service/internal/domain"
	"run-tracker-service/internal/services"

	"github.com/rs/zerolog"
)

// Upper bound on request bodies; GPS paths of a few hours fit comfortably.
const maxBodyBytes = 4 << 20

const invalidNumberMsg = "invalid distance or duration format"

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Err(err).
			Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"message": msg})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// Decode exactly one JSON object from the body into v. On failure a 400 has
// already been written and false is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()

	if err := dec.Decode(v); err != nil {
		var ne *dto.NumberError
		if errors.As(err, &ne) {
			writeError(w, r, http.StatusBadRequest, invalidNumberMsg)
			return false
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// Map service errors onto responses. Unknown errors are logged and hidden.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, r, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, services.ErrRunNotFound):
		writeError(w, r, http.StatusNotFound, "run not found")
	case errors.Is(err, services.ErrForbidden):
		writeError(w, r, http.StatusForbidden, "unauthorized")
	case errors.Is(err, services.ErrUnauthenticated):
		writeError(w, r, http.StatusUnauthorized, "authentication required")
	default:
		zerolog.Ctx(r.Context()).Error().Str("op", op).Err(err).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

type userCtxKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userCtxKey{}).(*domain.User)
	return u
}
