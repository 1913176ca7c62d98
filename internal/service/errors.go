package service

import "errors"

// Error kinds surfaced to the boundary. All are expected, recoverable
// conditions; the HTTP layer maps them to status codes.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrRateLimitExceeded  = errors.New("too many registration attempts")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("not enough rights")
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
)
