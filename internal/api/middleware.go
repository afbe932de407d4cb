package api

import (
	"context"
	"errors"
	"net/http"
	"run-tracker-service/internal/api/handlers"
	"run-tracker-service/internal/platform/obs"
	"run-tracker-service/internal/services"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// statusWriter captures the final HTTP status code and number of bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestContext tags each request with a request id (reusing a client-sent
// X-Request-ID) and a logger carrying it.
func requestContext(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" || len(reqID) > 64 {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)

		l := logger.With().Str("req_id", reqID).Logger()
		ctx := context.WithValue(r.Context(), obs.RequestIDKey, reqID)
		ctx = l.WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs end-to-end request duration and response size.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{
			ResponseWriter: w,
			status:         0,
		}

		next.ServeHTTP(sw, r)

		zerolog.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.RequestURI()).
			Int("status", sw.status).
			Int("bytes", sw.bytes).
			Int64("dur_ms", time.Since(start).Milliseconds()).
			Msg("request")
	})
}

// requireAuth rejects requests without a live session and stores the user in
// the request context for the wrapped handler.
func requireAuth(auth *services.AuthService, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(handlers.SessionCookie)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		u, err := auth.Authenticate(r.Context(), c.Value)
		if errors.Is(err, services.ErrUnauthenticated) {
			writeUnauthorized(w)
			return
		}
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("authenticate failed")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"internal server error"}` + "\n"))
			return
		}

		next.ServeHTTP(w, r.WithContext(handlers.WithUser(r.Context(), u)))
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required"}` + "\n"))
}
