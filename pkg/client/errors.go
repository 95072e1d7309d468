package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	// Detail is the server's "detail" text. Empty when the body had none
	// or it was not a string (e.g. a validation error list).
	Detail  string
	Message string
	// Structured is set when the body was valid JSON. A non-JSON body (a
	// proxy's HTML error page, an empty reply) is a malformed response and
	// counts as a transport failure, not a rejection.
	Structured bool
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func newHTTPError(status int, body []byte) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: status,
		Message:    strings.TrimSpace(string(body)),
		Structured: json.Valid(body),
	}
	var apiErr struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &apiErr) == nil && len(apiErr.Detail) > 0 {
		var detail string
		if json.Unmarshal(apiErr.Detail, &detail) == nil {
			httpErr.Detail = detail
		}
	}
	return httpErr
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsRejection reports whether err is an application-level rejection (the
// server answered with a non-2xx status and a JSON body) rather than a
// transport failure.
func IsRejection(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Structured
}

// DetailOf returns the server-supplied detail text carried by err, if any.
func DetailOf(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Detail
	}
	return ""
}
