package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the backend could not be reached or answered 5xx.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized covers 401/403 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound covers 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrMalformedResponse means a 2xx response did not carry the
	// documented {data, message} envelope.
	ErrMalformedResponse = errors.New("malformed response")
)

// Error is a backend failure: the HTTP status plus the message the server
// put in its response envelope (if any).
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("http status %d", e.Status)
}

// Unwrap maps the status onto a sentinel so callers can use errors.Is
// without caring about exact codes.
func (e *Error) Unwrap() error {
	switch {
	case e.Status == 401 || e.Status == 403:
		return ErrUnauthorized
	case e.Status == 404:
		return ErrNotFound
	case e.Status >= 500:
		return ErrUnavailable
	}
	return nil
}
