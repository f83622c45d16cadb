// Package errors provides custom error types for the HOS_BABEL backend client.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for common cases
var (
	ErrOffline         = errors.New("offline mode: api base is empty")
	ErrNoReply         = errors.New("no usable reply from any endpoint")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrEmptyBody       = errors.New("empty response body")
)

// NetworkError represents a transport failure talking to an endpoint
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error at %s: %v", e.Endpoint, e.Err)
}

// Unwrap exposes the underlying transport error
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(endpoint string, err error) *NetworkError {
	return &NetworkError{Endpoint: endpoint, Err: err}
}

// TimeoutError represents a request timeout
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message  string
	Endpoint string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParseError creates a new ParseError
func NewParseError(message, endpoint string) *ParseError {
	return &ParseError{Message: message, Endpoint: endpoint}
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// GetEndpoint returns the endpoint an error is attributed to, if any
func GetEndpoint(err error) string {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Endpoint
	}
	return ""
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsTimeoutError reports whether err is, or wraps, a timeout
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// IsOffline reports whether err means no backend was configured
func IsOffline(err error) bool {
	return errors.Is(err, ErrOffline)
}

