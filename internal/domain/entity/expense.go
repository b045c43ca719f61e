// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseSource identifies what created an expense.
type ExpenseSource string

const (
	ExpenseSourceManual    ExpenseSource = "manual"
	ExpenseSourceVendor    ExpenseSource = "vendor"
	ExpenseSourceRecurring ExpenseSource = "recurring"
	ExpenseSourceImport    ExpenseSource = "import"
)

// IsValid reports whether the source is one of the supported values.
func (s ExpenseSource) IsValid() bool {
	switch s {
	case ExpenseSourceManual, ExpenseSourceVendor, ExpenseSourceRecurring, ExpenseSourceImport:
		return true
	}
	return false
}

// Expense represents a committed expense transaction in the ledger.
type Expense struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Date               time.Time
	Description        string
	Category           string
	Amount             decimal.Decimal
	PaymentMethod      string
	Notes              string
	SupplierID         *uuid.UUID
	Source             ExpenseSource
	RecurringExpenseID *uuid.UUID // Set only for recurring-sourced expenses
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewRecurringOccurrenceExpense creates the Expense that satisfies one
// occurrence of a recurring definition.
func NewRecurringOccurrenceExpense(def *RecurringExpense, occurrenceDate time.Time, amount decimal.Decimal) *Expense {
	now := time.Now().UTC()
	recurringID := def.ID

	return &Expense{
		ID:                 uuid.New(),
		UserID:             def.UserID,
		Date:               occurrenceDate,
		Description:        def.Description,
		Category:           def.Category,
		Amount:             amount,
		PaymentMethod:      def.PaymentMethod,
		Notes:              def.Notes,
		SupplierID:         def.SupplierID,
		Source:             ExpenseSourceRecurring,
		RecurringExpenseID: &recurringID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
