package recurringexpense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/retail-backoffice/backend/internal/application/adapter"
)

// DeleteRecurringExpenseInput represents the input for definition deletion.
type DeleteRecurringExpenseInput struct {
	RecurringExpenseID uuid.UUID
	UserID             uuid.UUID
}

// DeleteRecurringExpenseOutput represents the output of definition deletion.
type DeleteRecurringExpenseOutput struct{}

// DeleteRecurringExpenseUseCase handles definition deletion.
type DeleteRecurringExpenseUseCase struct {
	repo adapter.RecurringExpenseRepository
}

// NewDeleteRecurringExpenseUseCase creates a new DeleteRecurringExpenseUseCase instance.
func NewDeleteRecurringExpenseUseCase(repo adapter.RecurringExpenseRepository) *DeleteRecurringExpenseUseCase {
	return &DeleteRecurringExpenseUseCase{
		repo: repo,
	}
}

// Execute performs the deletion. Expenses already generated are not touched.
func (uc *DeleteRecurringExpenseUseCase) Execute(ctx context.Context, input DeleteRecurringExpenseInput) (*DeleteRecurringExpenseOutput, error) {
	if _, err := findOwned(ctx, uc.repo, input.RecurringExpenseID, input.UserID); err != nil {
		return nil, err
	}

	if err := uc.repo.Delete(ctx, input.RecurringExpenseID); err != nil {
		return nil, fmt.Errorf("failed to delete recurring expense: %w", err)
	}

	return &DeleteRecurringExpenseOutput{}, nil
}
