package handlers

import (
	"errors"
	"net/http"
	"run-tracker-service/internal/api/dto"
	"run-tracker-service/internal/domain"
	"run-tracker-service/internal/services"
)

const SessionCookie = "run_tracker_session"

// AuthHandler exposes registration, login, logout and session status.
type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.Auth.Register(r.Context(), req.Username, req.Password)
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		writeMessage(w, r, http.StatusBadRequest, "username and password are required")
		return
	case errors.Is(err, services.ErrUsernameTaken):
		writeMessage(w, r, http.StatusBadRequest, "username already registered")
		return
	case err != nil:
		writeServiceError(w, r, "auth.register", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.AuthResponse{
		Message: "registration successful",
		User:    userResponse(u),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, sess, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		writeMessage(w, r, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		writeServiceError(w, r, "auth.login", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, r, http.StatusOK, dto.AuthResponse{
		Message: "login successful",
		User:    userResponse(u),
	})
}

// Logout must run behind the auth middleware.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	if c, err := r.Cookie(SessionCookie); err == nil {
		if err := h.Auth.Logout(r.Context(), c.Value); err != nil {
			writeServiceError(w, r, "auth.logout", err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeMessage(w, r, http.StatusOK, "logout successful")
}

func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	c, err := r.Cookie(SessionCookie)
	if err != nil {
		writeJSON(w, r, http.StatusOK, dto.AuthStatusResponse{IsAuthenticated: false})
		return
	}

	u, err := h.Auth.Authenticate(r.Context(), c.Value)
	if errors.Is(err, services.ErrUnauthenticated) {
		writeJSON(w, r, http.StatusOK, dto.AuthStatusResponse{IsAuthenticated: false})
		return
	}
	if err != nil {
		writeServiceError(w, r, "auth.status", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AuthStatusResponse{IsAuthenticated: true, User: userResponse(u)})
}

func userResponse(u *domain.User) *dto.UserResponse {
	return &dto.UserResponse{ID: u.ID, Username: u.Username}
}
