// Package error defines domain-specific errors for the RM Entrenador backend.
package error

import "errors"

// Client domain errors.
var (
	// ErrClientNotFound is returned when a client is not found in the system.
	ErrClientNotFound = errors.New("client not found")

	// ErrInvalidPlanTier is returned when the plan tier is not one of the configured labels.
	ErrInvalidPlanTier = errors.New("invalid plan tier")

	// ErrMissingClientName is returned when a client is created or updated without a name.
	ErrMissingClientName = errors.New("client name is required")
)

// ClientErrorCode defines error codes for client errors.
// Format: CLI-XXYYYY where XX is category and YYYY is specific error.
type ClientErrorCode string

const (
	ErrCodeClientNotFound    ClientErrorCode = "CLI-010001"
	ErrCodeInvalidPlanTier   ClientErrorCode = "CLI-010002"
	ErrCodeMissingClientName ClientErrorCode = "CLI-010003"
	ErrCodeMissingFields     ClientErrorCode = "CLI-010004"
)

// ClientError represents a client error with code and message.
type ClientError struct {
	Code    ClientErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError creates a new ClientError with the given code and message.
func NewClientError(code ClientErrorCode, message string, err error) *ClientError {
	return &ClientError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
