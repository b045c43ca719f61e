package recurringexpense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
)

// ListRecurringExpensesInput represents the input for listing definitions.
type ListRecurringExpensesInput struct {
	UserID uuid.UUID
}

// ListRecurringExpensesOutput represents the output of listing definitions.
type ListRecurringExpensesOutput struct {
	RecurringExpenses []*entity.RecurringExpense
}

// ListRecurringExpensesUseCase handles listing a user's definitions.
type ListRecurringExpensesUseCase struct {
	repo adapter.RecurringExpenseRepository
}

// NewListRecurringExpensesUseCase creates a new ListRecurringExpensesUseCase instance.
func NewListRecurringExpensesUseCase(repo adapter.RecurringExpenseRepository) *ListRecurringExpensesUseCase {
	return &ListRecurringExpensesUseCase{
		repo: repo,
	}
}

// Execute performs the listing.
func (uc *ListRecurringExpensesUseCase) Execute(ctx context.Context, input ListRecurringExpensesInput) (*ListRecurringExpensesOutput, error) {
	defs, err := uc.repo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring expenses: %w", err)
	}

	return &ListRecurringExpensesOutput{
		RecurringExpenses: defs,
	}, nil
}
