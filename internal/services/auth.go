package services

import (
	"context"
	"errors"
	"fmt"
	"run-tracker-service/internal/domain"
	"run-tracker-service/internal/ports"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService implements registration, password login and session lookup.
type AuthService struct {
	Users    ports.UserRepository
	Sessions ports.SessionStore
	TTL      time.Duration
	// bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
	Now  func() time.Time
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, TTL: ttl, Now: time.Now}
}

// HashPassword returns the bcrypt hash stored for password.
func (s *AuthService) HashPassword(password string) (string, error) {
	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalid("username and password are required")
	}

	if _, err := s.Users.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, fmt.Errorf("register: lookup %q: %w", username, err)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	u, err := s.Users.CreateUser(ctx, username, hash)
	if errors.Is(err, ports.ErrConflict) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return u, nil
}

// Login verifies credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *domain.Session, error) {
	u, err := s.Users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, fmt.Errorf("login: lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	sess := domain.Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: s.now().Add(s.TTL),
	}
	if err := s.Sessions.SaveSession(ctx, sess); err != nil {
		return nil, nil, fmt.Errorf("login: save session: %w", err)
	}
	return u, &sess, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.Sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Authenticate resolves a session token to its user. Expired sessions are removed.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	sess, err := s.Sessions.GetSession(ctx, token)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if sess.Expired(s.now()) {
		if err := s.Sessions.DeleteSession(ctx, token); err != nil {
			return nil, fmt.Errorf("authenticate: drop expired session: %w", err)
		}
		return nil, ErrUnauthenticated
	}

	u, err := s.Users.GetUserByID(ctx, sess.UserID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: load user: %w", err)
	}
	return u, nil
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
