// Package apperr holds the error taxonomy shared by services and
// controllers. Services wrap these sentinels with context via fmt.Errorf
// and %w; controllers map them to HTTP status codes with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
)
