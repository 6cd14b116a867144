// Package errors provides error types and handling for sqsrelay.
// It includes custom error types with HTTP status codes and error codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with an associated HTTP status code.
type AppError struct {
	// Code is an optional error code string for programmatic handling
	Code string
	// Message is a user-friendly error message
	Message string
	// StatusCode is the HTTP status code to return
	StatusCode int
	// Cause is the underlying error (for error wrapping)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is to work with AppError.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code != "" && e.Code == t.Code
	}
	return false
}

// Predefined error codes.
const (
	// Forwarding error codes. All of them surface as a 400 envelope.
	ErrCodeNoRecords        = "NO_RECORDS"
	ErrCodeInvalidBody      = "INVALID_BODY"
	ErrCodeUpstreamRequest  = "UPSTREAM_REQUEST_FAILED"
	ErrCodeUpstreamResponse = "INVALID_UPSTREAM_RESPONSE"
	ErrCodeUpstreamStatus   = "UPSTREAM_STATUS"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"

	// Request error codes for the HTTP router.
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"

	// Server error codes.
	ErrCodeConfiguration = "CONFIGURATION_ERROR"
	ErrCodeSecretLookup  = "SECRET_LOOKUP_FAILED"
)

// NewClientError creates a new client error (4xx status codes).
func NewClientError(statusCode int, code, message string, cause error) *AppError {
	if statusCode < 400 || statusCode >= 500 {
		panic(fmt.Sprintf("NewClientError called with non-client status code: %d", statusCode))
	}
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// NewServerError creates a new server error (5xx status codes).
func NewServerError(statusCode int, code, message string, cause error) *AppError {
	if statusCode < 500 || statusCode >= 600 {
		panic(fmt.Sprintf("NewServerError called with non-server status code: %d", statusCode))
	}
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// Convenience constructors for common errors

// ErrNoRecords is returned when the event carries no record to forward (400).
func ErrNoRecords() *AppError {
	return NewClientError(http.StatusBadRequest, ErrCodeNoRecords, "event contains no records", nil)
}

// ErrInvalidBody is returned when the record body is not valid JSON (400).
func ErrInvalidBody(cause error) *AppError {
	return NewClientError(http.StatusBadRequest, ErrCodeInvalidBody, "record body is not valid JSON", cause)
}

// ErrUpstreamRequest is returned when the upstream call could not be completed (400).
func ErrUpstreamRequest(message string, cause error) *AppError {
	return NewClientError(http.StatusBadRequest, ErrCodeUpstreamRequest, message, cause)
}

// ErrUpstreamResponse is returned when the upstream reply cannot be read or decoded (400).
func ErrUpstreamResponse(message string, cause error) *AppError {
	return NewClientError(http.StatusBadRequest, ErrCodeUpstreamResponse, message, cause)
}

// ErrUpstreamStatus is returned in strict mode when the upstream answers with an error status (400).
func ErrUpstreamStatus(status int) *AppError {
	return NewClientError(
		http.StatusBadRequest,
		ErrCodeUpstreamStatus,
		fmt.Sprintf("upstream responded with status %d", status),
		nil,
	)
}

// ErrBadRequest creates a bad request error (400).
func ErrBadRequest(message string, cause error) *AppError {
	return NewClientError(http.StatusBadRequest, ErrCodeInvalidRequest, message, cause)
}

// ErrPayloadTooLarge is returned when a request body exceeds the router's limit (413).
func ErrPayloadTooLarge(cause error) *AppError {
	return NewClientError(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "request body too large", cause)
}

// ErrConfiguration creates a configuration error (500).
func ErrConfiguration(message string, cause error) *AppError {
	return NewServerError(http.StatusInternalServerError, ErrCodeConfiguration, message, cause)
}

// ErrSecretLookup creates a secret lookup error (503).
// Parameter Store failures are typically transient issues.
func ErrSecretLookup(message string, cause error) *AppError {
	return NewServerError(http.StatusServiceUnavailable, ErrCodeSecretLookup, message, cause)
}

// GetStatusCode extracts the HTTP status code from an error.
// Returns 500 if the error is not an AppError.
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// GetErrorCode extracts the error code from an error.
// Returns empty string if the error is not an AppError.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetErrorMessage extracts a user-friendly message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// GetErrorDetails extracts detailed error information including the underlying cause.
// Returns the underlying error message if available, otherwise returns the main error message.
func GetErrorDetails(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Cause != nil {
			return appErr.Cause.Error()
		}
		return appErr.Message
	}
	return err.Error()
}
