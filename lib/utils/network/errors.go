package network

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// NetworkError represents categorized network errors
type NetworkError struct {
	Type    NetworkErrorType
	Message string
	Err     error
}

type NetworkErrorType string

const (
	ErrorTypeTimeout     NetworkErrorType = "timeout"
	ErrorTypeConnection  NetworkErrorType = "connection"
	ErrorTypeRateLimited NetworkErrorType = "rate_limited"
	ErrorTypeServerError NetworkErrorType = "server_error"
	ErrorTypeClientError NetworkErrorType = "client_error"
	ErrorTypeUnknown     NetworkErrorType = "unknown"
)

// HTTPStatusError is returned by upstream clients for non-2xx responses
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d (%s)", e.StatusCode, e.URL)
}

// CategorizeNetworkError analyzes an error and returns a NetworkError with appropriate category
func CategorizeNetworkError(err error) *NetworkError {
	if err == nil {
		return nil
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return categorizeStatus(statusErr.StatusCode, err)
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return &NetworkError{
			Type:    ErrorTypeTimeout,
			Message: "Request timed out",
			Err:     err,
		}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "connection closed") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "eof") ||
		strings.Contains(errStr, "network is unreachable") {
		return &NetworkError{
			Type:    ErrorTypeConnection,
			Message: "Connection error",
			Err:     err,
		}
	}

	return &NetworkError{
		Type:    ErrorTypeUnknown,
		Message: "Network error",
		Err:     err,
	}
}

func categorizeStatus(statusCode int, err error) *NetworkError {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return &NetworkError{Type: ErrorTypeRateLimited, Message: "Rate limited", Err: err}
	case statusCode >= 500:
		return &NetworkError{Type: ErrorTypeServerError, Message: "Server error", Err: err}
	case statusCode >= 400:
		return &NetworkError{Type: ErrorTypeClientError, Message: "Client error", Err: err}
	default:
		return &NetworkError{Type: ErrorTypeUnknown, Message: "Unexpected status", Err: err}
	}
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	netErr := CategorizeNetworkError(err)
	return netErr != nil && netErr.Type == ErrorTypeTimeout
}

// IsConnectionError checks if an error is a connection error
func IsConnectionError(err error) bool {
	netErr := CategorizeNetworkError(err)
	return netErr != nil && netErr.Type == ErrorTypeConnection
}

// ShouldRetry reports whether an error is transient: timeouts, connection errors, 429 and 5xx
func ShouldRetry(err error) bool {
	netErr := CategorizeNetworkError(err)
	if netErr == nil {
		return false
	}
	switch netErr.Type {
	case ErrorTypeTimeout, ErrorTypeConnection, ErrorTypeRateLimited, ErrorTypeServerError:
		return true
	default:
		return false
	}
}

// Unwrap implements the unwrap interface for error wrapping
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// ShouldLogAsError reports whether an error deserves ERROR level;
// transient network failures and client errors are warnings
func ShouldLogAsError(err error) bool {
	if err == nil {
		return false
	}
	return CategorizeNetworkError(err).Type == ErrorTypeUnknown
}
