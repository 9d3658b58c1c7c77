package service

import "errors"

// Error taxonomy surfaced to callers. Authorization failures on reads are
// swallowed into empty results instead, so ErrForbidden only ever escapes
// from writes.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
)
