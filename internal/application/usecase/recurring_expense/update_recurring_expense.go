package recurringexpense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
	"github.com/retail-backoffice/backend/internal/domain/recurrence"
)

// UpdateRecurringExpenseInput represents the input for definition update.
// Nil fields are left unchanged.
type UpdateRecurringExpenseInput struct {
	RecurringExpenseID   uuid.UUID
	UserID               uuid.UUID
	Description          *string
	Category             *string
	BaseAmount           *decimal.Decimal
	Frequency            *entity.Frequency
	ExecutionDay         *int
	StartDate            *time.Time
	EndDate              *time.Time
	ClearEndDate         bool
	Active               *bool
	RequiresConfirmation *bool
	PaymentMethod        *string
	Notes                *string
	SupplierID           *uuid.UUID
	ClearSupplier        bool
}

// UpdateRecurringExpenseOutput represents the output of definition update.
type UpdateRecurringExpenseOutput struct {
	RecurringExpense *entity.RecurringExpense
}

// UpdateRecurringExpenseUseCase handles definition edits. The watermark is
// never part of an edit.
type UpdateRecurringExpenseUseCase struct {
	repo adapter.RecurringExpenseRepository
}

// NewUpdateRecurringExpenseUseCase creates a new UpdateRecurringExpenseUseCase instance.
func NewUpdateRecurringExpenseUseCase(repo adapter.RecurringExpenseRepository) *UpdateRecurringExpenseUseCase {
	return &UpdateRecurringExpenseUseCase{
		repo: repo,
	}
}

// Execute performs the update.
func (uc *UpdateRecurringExpenseUseCase) Execute(ctx context.Context, input UpdateRecurringExpenseInput) (*UpdateRecurringExpenseOutput, error) {
	def, err := findOwned(ctx, uc.repo, input.RecurringExpenseID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		def.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		def.Category = strings.TrimSpace(*input.Category)
	}
	if input.BaseAmount != nil {
		def.BaseAmount = *input.BaseAmount
	}
	if input.Frequency != nil {
		def.Frequency = *input.Frequency
	}
	if input.ExecutionDay != nil {
		def.ExecutionDay = *input.ExecutionDay
	}
	if input.StartDate != nil {
		def.StartDate = recurrence.Day(*input.StartDate)
	}
	if input.ClearEndDate {
		def.EndDate = nil
	} else if input.EndDate != nil {
		d := recurrence.Day(*input.EndDate)
		def.EndDate = &d
	}
	if input.Active != nil {
		def.Active = *input.Active
	}
	if input.RequiresConfirmation != nil {
		def.RequiresConfirmation = *input.RequiresConfirmation
	}
	if input.PaymentMethod != nil {
		def.PaymentMethod = strings.TrimSpace(*input.PaymentMethod)
	}
	if input.Notes != nil {
		def.Notes = *input.Notes
	}
	if input.ClearSupplier {
		def.SupplierID = nil
	} else if input.SupplierID != nil {
		def.SupplierID = input.SupplierID
	}

	if err := validateDefinition(def); err != nil {
		return nil, err
	}

	def.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, def); err != nil {
		return nil, fmt.Errorf("failed to update recurring expense: %w", err)
	}

	return &UpdateRecurringExpenseOutput{
		RecurringExpense: def,
	}, nil
}
