package recurringexpense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
)

// ToggleRecurringExpenseInput represents the input for pausing or resuming a definition.
type ToggleRecurringExpenseInput struct {
	RecurringExpenseID uuid.UUID
	UserID             uuid.UUID
}

// ToggleRecurringExpenseOutput represents the output of a toggle.
type ToggleRecurringExpenseOutput struct {
	RecurringExpense *entity.RecurringExpense
}

// ToggleRecurringExpenseUseCase flips the active flag of a definition.
// Resuming does not rewind the watermark, so the next sweep reports only the
// latest due occurrence.
type ToggleRecurringExpenseUseCase struct {
	repo adapter.RecurringExpenseRepository
}

// NewToggleRecurringExpenseUseCase creates a new ToggleRecurringExpenseUseCase instance.
func NewToggleRecurringExpenseUseCase(repo adapter.RecurringExpenseRepository) *ToggleRecurringExpenseUseCase {
	return &ToggleRecurringExpenseUseCase{
		repo: repo,
	}
}

// Execute performs the toggle.
func (uc *ToggleRecurringExpenseUseCase) Execute(ctx context.Context, input ToggleRecurringExpenseInput) (*ToggleRecurringExpenseOutput, error) {
	def, err := findOwned(ctx, uc.repo, input.RecurringExpenseID, input.UserID)
	if err != nil {
		return nil, err
	}

	def.Active = !def.Active
	def.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, def); err != nil {
		return nil, fmt.Errorf("failed to toggle recurring expense: %w", err)
	}

	slog.Info("Recurring expense toggled",
		"recurring_expense_id", def.ID,
		"active", def.Active,
	)

	return &ToggleRecurringExpenseOutput{
		RecurringExpense: def,
	}, nil
}
