package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrEditsLocked           = errors.New("edits are locked")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
