// Package error defines domain-specific errors for the RM Entrenador backend.
package error

import "errors"

// Auth domain errors.
var (
	// ErrInvalidCredentials is returned when the login credential pair does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthErrorCode defines error codes for auth errors.
// Format: AUT-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	ErrCodeInvalidCredentials AuthErrorCode = "AUT-010001"
	ErrCodeMissingToken       AuthErrorCode = "AUT-010002"
	ErrCodeInvalidToken       AuthErrorCode = "AUT-010003"
	ErrCodeRateLimited        AuthErrorCode = "AUT-010004"
)

// AuthError represents an auth error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
