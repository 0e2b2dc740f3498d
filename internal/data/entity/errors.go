package entity

import "errors"

// Domain errors returned by repositories and services. Handlers map these
// to HTTP status codes with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrSeatUnavailable = errors.New("seat unavailable")
	ErrHoldExpired     = errors.New("hold expired")
	ErrInvalidState    = errors.New("invalid state")
)
