package domain

import "time"

// Registered account. PasswordHash is a bcrypt hash and never leaves the service layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Server-side login record keyed by an opaque token.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
