package services

import "errors"

var (
	ErrRunNotFound        = errors.New("run not found")
	ErrForbidden          = errors.New("run belongs to another user")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("not authenticated")
)

// ValidationError reports input the caller must correct. Msg is safe to show to clients.
type ValidationError struct {
	Msg string
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(msg string) error { return &ValidationError{Msg: msg} }
