// Package error defines domain-specific errors for the back-office application.
package error

import "errors"

// Recurring expense domain errors.
var (
	// ErrRecurringExpenseNotFound is returned when a recurring expense definition does not exist.
	ErrRecurringExpenseNotFound = errors.New("recurring expense not found")

	// ErrUnauthorizedRecurringExpenseAccess is returned when the definition belongs to another owner.
	ErrUnauthorizedRecurringExpenseAccess = errors.New("unauthorized access to recurring expense")

	// ErrInvalidAmount is returned when a confirmation override is non-positive,
	// non-numeric, or not representable with two decimals.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrStaleConfirmation is returned when the confirmed definition no longer has a matching due occurrence.
	ErrStaleConfirmation = errors.New("stale confirmation")

	// ErrConcurrentAdvanceLost is returned by the watermark store when another
	// writer already advanced the watermark to or past the occurrence date.
	ErrConcurrentAdvanceLost = errors.New("watermark already advanced")

	// ErrInvalidFrequency is returned when the frequency is not supported.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrInvalidExecutionDay is returned when the execution day is out of range for the frequency.
	ErrInvalidExecutionDay = errors.New("invalid execution day")

	// ErrInvalidDateRange is returned when the end date is before the start date.
	ErrInvalidDateRange = errors.New("end date must not be before start date")

	// ErrInvalidBaseAmount is returned when the base amount is zero, negative,
	// or not representable with two decimals.
	ErrInvalidBaseAmount = errors.New("invalid base amount")

	// ErrInvalidDescription is returned when the description is empty or too long.
	ErrInvalidDescription = errors.New("invalid description")

	// ErrFutureAsOf is returned when a sweep is requested for a day after today.
	ErrFutureAsOf = errors.New("as-of date is in the future")
)

// RecurringExpenseErrorCode defines error codes for recurring expense errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount                RecurringExpenseErrorCode = "REC-010001"
	ErrCodeRecurringExpenseNotFound     RecurringExpenseErrorCode = "REC-010002"
	ErrCodeUnauthorizedRecurringExpense RecurringExpenseErrorCode = "REC-010003"
	ErrCodeInvalidFrequency             RecurringExpenseErrorCode = "REC-010004"
	ErrCodeInvalidExecutionDay          RecurringExpenseErrorCode = "REC-010005"
	ErrCodeInvalidDateRange             RecurringExpenseErrorCode = "REC-010006"
	ErrCodeInvalidBaseAmount            RecurringExpenseErrorCode = "REC-010007"
	ErrCodeInvalidDescription           RecurringExpenseErrorCode = "REC-010008"
	ErrCodeMissingRecurringFields       RecurringExpenseErrorCode = "REC-010009"
	ErrCodeFutureAsOf                   RecurringExpenseErrorCode = "REC-010010"

	// State errors (02XXXX)
	ErrCodeStaleConfirmation RecurringExpenseErrorCode = "REC-020001"
)

// RecurringExpenseError represents a recurring expense error with code and message.
type RecurringExpenseError struct {
	Code    RecurringExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringExpenseError) Unwrap() error {
	return e.Err
}

// NewRecurringExpenseError creates a new RecurringExpenseError with the given code and message.
func NewRecurringExpenseError(code RecurringExpenseErrorCode, message string, err error) *RecurringExpenseError {
	return &RecurringExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
