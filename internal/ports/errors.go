package ports

import "errors"

// ErrNotFound is returned by adapters when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned by adapters when a unique constraint would be violated.
var ErrConflict = errors.New("conflict")
