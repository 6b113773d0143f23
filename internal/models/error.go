package models

import "errors"

// Sentinel errors for common failure conditions. Services return these and
// the handlers map them to HTTP status codes with safe messages.
var (
	ErrValidation      = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("resource already exists")
	ErrExternalService = errors.New("external service failure")
	ErrInternalServer  = errors.New("internal server error")
)
