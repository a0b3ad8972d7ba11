// Package errors provides the standardized error taxonomy for the AI endpoints.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeNotConfigured         ErrorCode = "NOT_CONFIGURED"
	ErrCodeValidationFailed      ErrorCode = "VALIDATION_FAILED"
	ErrCodeRateLimited           ErrorCode = "RATE_LIMITED"
	ErrCodeInvalidResponseFormat ErrorCode = "INVALID_RESPONSE_FORMAT"
	ErrCodeExtractionFailed      ErrorCode = "EXTRACTION_FAILED"
	ErrCodeUpstreamFailed        ErrorCode = "UPSTREAM_FAILED"
	ErrCodeInternal              ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured application error. Message is safe to return to
// the client; Details is for server-side logs only.
type APIError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus maps the error code to the status returned to the client.
func (e *APIError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeValidationFailed, ErrCodeExtractionFailed:
		return http.StatusBadRequest
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeUpstreamFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewNotConfiguredError reports a missing model API credential. The message
// is stable so operators can alert on it, and is distinct from every
// user-input failure.
func NewNotConfiguredError() *APIError {
	return &APIError{
		Code:      ErrCodeNotConfigured,
		Message:   "AI service is not configured",
		Details:   "model API key missing: set GEMINI_API_KEY or GOOGLE_API_KEY",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError reports invalid caller input, naming the offending field.
func NewValidationError(field, reason string) *APIError {
	return &APIError{
		Code:      ErrCodeValidationFailed,
		Message:   fmt.Sprintf("invalid field %q: %s", field, reason),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedBodyError reports a request body that could not be parsed.
func NewMalformedBodyError(err error) *APIError {
	return &APIError{
		Code:      ErrCodeValidationFailed,
		Message:   "request body is not valid JSON",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError reports upstream throttling that survived the bounded retry.
func NewRateLimitedError(details string) *APIError {
	return &APIError{
		Code:      ErrCodeRateLimited,
		Message:   "AI service is rate limited, try again later",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidResponseFormatError reports model output that could not be parsed
// or validated into the expected JSON shape.
func NewInvalidResponseFormatError(details string) *APIError {
	return &APIError{
		Code:      ErrCodeInvalidResponseFormat,
		Message:   "invalid response format from AI",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionFailedError reports a document that yielded no usable text.
func NewExtractionFailedError(details string) *APIError {
	return &APIError{
		Code:      ErrCodeExtractionFailed,
		Message:   "could not extract text from the uploaded document",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamFailedError reports a network or provider error from the model API.
func NewUpstreamFailedError(err error) *APIError {
	return &APIError{
		Code:      ErrCodeUpstreamFailed,
		Message:   "AI service request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps any unexpected error without leaking its contents.
func NewInternalError(err error) *APIError {
	return &APIError{
		Code:      ErrCodeInternal,
		Message:   "internal server error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures any error becomes an APIError before it reaches the
// response writer.
func Normalize(err error) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return NewInternalError(err)
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code ErrorCode) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == code
}

// GetErrorCategory returns the category of the error code, used as a
// metrics label.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeValidationFailed, ErrCodeExtractionFailed:
		return "CLIENT"
	case ErrCodeNotConfigured:
		return "CONFIG"
	case ErrCodeRateLimited, ErrCodeUpstreamFailed, ErrCodeInvalidResponseFormat:
		return "UPSTREAM"
	default:
		return "OTHER"
	}
}
