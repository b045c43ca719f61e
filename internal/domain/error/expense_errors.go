// Package error defines domain-specific errors for the back-office application.
package error

import "errors"

// Expense ledger domain errors.
var (
	// ErrExpenseNotFound is returned when an expense is not found in the ledger.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidExpenseSource is returned when a source filter is not a known source.
	ErrInvalidExpenseSource = errors.New("invalid expense source")

	// ErrInvalidExpenseDateRange is returned when the list filter dates are invalid.
	ErrInvalidExpenseDateRange = errors.New("invalid expense date range")
)

// ExpenseErrorCode defines error codes for expense ledger errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeExpenseNotFound         ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidExpenseSource    ExpenseErrorCode = "EXP-010002"
	ErrCodeInvalidExpenseDateRange ExpenseErrorCode = "EXP-010003"
)

// ExpenseError represents an expense ledger error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
