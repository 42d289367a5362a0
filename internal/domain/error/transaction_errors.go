package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidSortField is returned when the sort field is not in the whitelist.
	ErrInvalidSortField = errors.New("invalid sort field")

	// ErrInvalidSortOrder is returned when the sort order is not asc or desc.
	ErrInvalidSortOrder = errors.New("invalid sort order")

	// ErrEmptyTransactionIDs is returned when an empty list of transaction IDs is provided.
	ErrEmptyTransactionIDs = errors.New("transaction IDs list cannot be empty")

	// ErrTransactionIDsNotFound is returned when one or more transaction IDs are not
	// found or not owned by the dealer. Bulk delete is all-or-nothing.
	ErrTransactionIDsNotFound = errors.New("one or more transactions not found")

	// ErrBulkDeleteIncomplete is returned when the delete removed fewer rows than
	// requested; the operation is rolled back.
	ErrBulkDeleteIncomplete = errors.New("bulk delete removed fewer rows than requested")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidSortField       TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidSortOrder       TransactionErrorCode = "TXN-010002"
	ErrCodeTransactionNotFound    TransactionErrorCode = "TXN-010004"
	ErrCodeEmptyTransactionIDs    TransactionErrorCode = "TXN-010011"
	ErrCodeTransactionIDsNotFound TransactionErrorCode = "TXN-010012"

	// Consistency errors (02XXXX)
	ErrCodeBulkDeleteIncomplete TransactionErrorCode = "TXN-020001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
