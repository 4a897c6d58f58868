// Package error defines domain-specific errors for the RM Entrenador backend.
package error

import "errors"

// Payment domain errors.
var (
	// ErrPaymentNotFound is returned when a payment is not found in the system.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrPaymentClientNotFound is returned when the owning client of a payment does not exist.
	ErrPaymentClientNotFound = errors.New("payment client not found")

	// ErrNegativeAmount is returned when a payment amount is negative.
	ErrNegativeAmount = errors.New("payment amount must not be negative")
)

// PaymentErrorCode defines error codes for payment errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type PaymentErrorCode string

const (
	ErrCodePaymentNotFound       PaymentErrorCode = "PAY-010001"
	ErrCodePaymentClientNotFound PaymentErrorCode = "PAY-010002"
	ErrCodeNegativeAmount        PaymentErrorCode = "PAY-010003"
	ErrCodeMissingPaymentFields  PaymentErrorCode = "PAY-010004"
)

// PaymentError represents a payment error with code and message.
type PaymentError struct {
	Code    PaymentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
