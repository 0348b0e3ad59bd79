package usecase

import "errors"

// Services wrap these with %w; httpapi maps them to status codes.
var (
	// ErrInvalidInput covers malformed ids, unknown plans and bad profile fields.
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrConflict is returned when removing the last remaining profile.
	ErrConflict = errors.New("conflict")
	// ErrDependencyUnavailable means account storage or the summary model failed.
	// Sports providers never surface it; their failures become failed results.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
