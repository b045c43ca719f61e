// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frequency represents how often a recurring expense repeats.
type Frequency string

const (
	FrequencyMonthly  Frequency = "monthly"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyAnnual   Frequency = "annual"
)

// IsValid reports whether the frequency is one of the supported values.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyMonthly, FrequencyWeekly, FrequencyBiweekly, FrequencyAnnual:
		return true
	}
	return false
}

// UsesWeekday reports whether ExecutionDay is an ISO weekday (1=Mon..7=Sun)
// rather than a day of the month.
func (f Frequency) UsesWeekday() bool {
	return f == FrequencyWeekly || f == FrequencyBiweekly
}

// RecurringExpense represents a recurring expense definition.
type RecurringExpense struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Description          string
	Category             string // Optional
	BaseAmount           decimal.Decimal
	Frequency            Frequency
	ExecutionDay         int // Day of month (monthly/annual) or ISO weekday (weekly/biweekly)
	StartDate            time.Time
	EndDate              *time.Time
	Active               bool
	RequiresConfirmation bool
	PaymentMethod        string
	Notes                string
	SupplierID           *uuid.UUID
	LastGeneratedDate    *time.Time // Watermark, only advanced by generation or confirmation
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewRecurringExpense creates a new active RecurringExpense with no watermark.
func NewRecurringExpense(
	userID uuid.UUID,
	description string,
	category string,
	baseAmount decimal.Decimal,
	frequency Frequency,
	executionDay int,
	startDate time.Time,
	endDate *time.Time,
	requiresConfirmation bool,
) *RecurringExpense {
	now := time.Now().UTC()

	return &RecurringExpense{
		ID:                   uuid.New(),
		UserID:               userID,
		Description:          description,
		Category:             category,
		BaseAmount:           baseAmount,
		Frequency:            frequency,
		ExecutionDay:         executionDay,
		StartDate:            startDate,
		EndDate:              endDate,
		Active:               true,
		RequiresConfirmation: requiresConfirmation,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// PendingExpense is an occurrence that is due but waits for a human
// confirmation. It is derived from the definition and its watermark and is
// never stored.
type PendingExpense struct {
	RecurringExpenseID uuid.UUID
	OccurrenceDate     time.Time
	Description        string
	Category           string
	BaseAmount         decimal.Decimal
	Frequency          Frequency
	PaymentMethod      string
	Notes              string
	SupplierID         *uuid.UUID
}

// NewPendingExpense snapshots a definition into a PendingExpense for the given occurrence date.
func NewPendingExpense(def *RecurringExpense, occurrenceDate time.Time) *PendingExpense {
	return &PendingExpense{
		RecurringExpenseID: def.ID,
		OccurrenceDate:     occurrenceDate,
		Description:        def.Description,
		Category:           def.Category,
		BaseAmount:         def.BaseAmount,
		Frequency:          def.Frequency,
		PaymentMethod:      def.PaymentMethod,
		Notes:              def.Notes,
		SupplierID:         def.SupplierID,
	}
}
