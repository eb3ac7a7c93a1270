package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested movie or person does not exist
	ErrNotFound = errors.New("not found")

	// ErrServerOffline indicates the metadata API is unreachable
	ErrServerOffline = errors.New("metadata server is unreachable")

	// ErrAuthFailed indicates the API key or access token was rejected
	ErrAuthFailed = errors.New("api key is invalid")

	// ErrStorage indicates the watchlist could not be read or written
	ErrStorage = errors.New("watchlist storage failure")
)

// ServerError is a non-2xx response from the metadata API
type ServerError struct {
	Status  int    // HTTP status code
	Message string // server-supplied status_message, may be empty
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// Unwrap maps well-known statuses onto the sentinel errors
func (e *ServerError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrAuthFailed
	default:
		return nil
	}
}

// TransportError is a failure to reach the metadata API at all
// (DNS, connection refused, timeout).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *TransportError) Is(target error) bool {
	return target == ErrServerOffline
}

func (e *TransportError) Unwrap() error { return e.Err }

// Reason converts a fetch error into the message shown to the user.
// A server-supplied message wins, then a status description, then a
// generic transport description.
func Reason(err error) string {
	if err == nil {
		return ""
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		if serverErr.Message != "" {
			return serverErr.Message
		}
		if serverErr.Status == http.StatusNotFound {
			return "Not found"
		}
		return fmt.Sprintf("Server error (HTTP %d)", serverErr.Status)
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return "Network error: " + transportErr.Err.Error()
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrServerOffline):
		return "Network error"
	}
	return err.Error()
}
