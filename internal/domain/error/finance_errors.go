// Package error defines domain-specific errors for the CepetDeal finance backend.
package error

import "errors"

// Finance reporting domain errors.
var (
	// ErrMissingCustomBounds is returned when a custom range lacks a start or end date.
	ErrMissingCustomBounds = errors.New("custom range requires both start and end dates")

	// ErrInvalidDateFormat is returned when a date parameter cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidDateRange is returned when a custom range has start after end.
	ErrInvalidDateRange = errors.New("start date must not be after end date")

	// ErrInvalidRangeToken is returned when the range token is not recognized.
	ErrInvalidRangeToken = errors.New("invalid range token")
)

// FinanceErrorCode defines error codes for finance reporting errors.
// Format: FIN-XXYYYY where XX is category and YYYY is specific error.
type FinanceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingCustomBounds FinanceErrorCode = "FIN-010001"
	ErrCodeInvalidDateFormat   FinanceErrorCode = "FIN-010002"
	ErrCodeInvalidDateRange    FinanceErrorCode = "FIN-010003"
	ErrCodeInvalidRangeToken   FinanceErrorCode = "FIN-010004"
)

// FinanceError represents a finance reporting error with code and message.
type FinanceError struct {
	Code    FinanceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FinanceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FinanceError) Unwrap() error {
	return e.Err
}

// NewFinanceError creates a new FinanceError with the given code and message.
func NewFinanceError(code FinanceErrorCode, message string, err error) *FinanceError {
	return &FinanceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
