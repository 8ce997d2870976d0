package service

import "errors"

// Common service errors. Handlers map them to HTTP status codes.
var (
	// ErrBadRequest means required input was missing or malformed
	ErrBadRequest = errors.New("bad request")
	// ErrNotFound means a referenced category or question does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrUnprocessable wraps a store failure on an otherwise well-formed request
	ErrUnprocessable = errors.New("unprocessable")
)
