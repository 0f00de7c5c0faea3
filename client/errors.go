package client

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestError is returned when the backend answers with a non-2xx status.
// Message carries the server's error string when one was provided, or a
// status-derived fallback otherwise.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// ValidationError is returned when required input is missing before any
// request is made.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// IsUnauthorized reports whether err is a RequestError with status 401.
func IsUnauthorized(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a RequestError with status 404.
func IsNotFound(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}
