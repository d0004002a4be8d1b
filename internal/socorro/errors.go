package socorro

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned, wrapped with the crash ID, when the API has
	// no processed crash for an ID.
	ErrNotFound = errors.New("crash not found")

	// ErrRateLimited is returned when the API answers 429. The remedy is
	// to authenticate, so the message says how.
	ErrRateLimited = errors.New("rate limited: try using an API token with --token or SOCORRO_API_TOKEN")
)

// APIError is a non-2xx response from the API.
// Callers should prefer the predicate functions (IsNotFound, HasStatusCode)
// to inspect errors rather than asserting on this type directly.
type APIError struct {
	operation  string
	statusCode int
	message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.operation, e.statusCode, e.message)
}

func newAPIError(operation string, statusCode int, message string) *APIError {
	return &APIError{
		operation:  operation,
		statusCode: statusCode,
		message:    message,
	}
}

// StatusCode returns the HTTP status code from the response.
func (e *APIError) StatusCode() int { return e.statusCode }

// Message returns the response body or status text.
func (e *APIError) Message() string { return e.message }

// Operation returns a short description of the API call that failed.
func (e *APIError) Operation() string { return e.operation }

// ParseError reports a 2xx response whose body did not have the expected
// shape.
type ParseError struct {
	Operation string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse response: %v", e.Operation, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means the requested crash does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || HasStatusCode(err, http.StatusNotFound)
}

// IsRateLimited reports whether err is a rate-limit rejection.
func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// IsParseError reports whether err is a response-parse failure.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// HasStatusCode reports whether err is an API error whose HTTP status code matches.
func HasStatusCode(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.statusCode == code
}
