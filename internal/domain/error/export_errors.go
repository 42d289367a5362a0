package error

import "errors"

// Export domain errors.
var (
	// ErrUnsupportedExportFormat is returned when the requested format is not pdf or xlsx.
	ErrUnsupportedExportFormat = errors.New("unsupported export format")

	// ErrExportGeneration is returned when rendering the document or workbook fails.
	// The on-screen report is computed independently and is not affected.
	ErrExportGeneration = errors.New("failed to generate export")
)

// ExportErrorCode defines error codes for export errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeUnsupportedExportFormat ExportErrorCode = "EXP-010001"

	// Generation errors (02XXXX)
	ErrCodeExportGeneration ExportErrorCode = "EXP-020001"

	// Throttling errors (03XXXX)
	ErrCodeExportRateLimited ExportErrorCode = "EXP-030001"
)

// ExportError represents an export error with code and message.
type ExportError struct {
	Code    ExportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError creates a new ExportError with the given code and message.
func NewExportError(code ExportErrorCode, message string, err error) *ExportError {
	return &ExportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
