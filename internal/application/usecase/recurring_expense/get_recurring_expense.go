package recurringexpense

import (
	"context"

	"github.com/google/uuid"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
)

// GetRecurringExpenseInput represents the input for fetching one definition.
type GetRecurringExpenseInput struct {
	RecurringExpenseID uuid.UUID
	UserID             uuid.UUID
}

// GetRecurringExpenseOutput represents the output of fetching one definition.
type GetRecurringExpenseOutput struct {
	RecurringExpense *entity.RecurringExpense
}

// GetRecurringExpenseUseCase handles fetching a single definition.
type GetRecurringExpenseUseCase struct {
	repo adapter.RecurringExpenseRepository
}

// NewGetRecurringExpenseUseCase creates a new GetRecurringExpenseUseCase instance.
func NewGetRecurringExpenseUseCase(repo adapter.RecurringExpenseRepository) *GetRecurringExpenseUseCase {
	return &GetRecurringExpenseUseCase{
		repo: repo,
	}
}

// Execute performs the lookup.
func (uc *GetRecurringExpenseUseCase) Execute(ctx context.Context, input GetRecurringExpenseInput) (*GetRecurringExpenseOutput, error) {
	def, err := findOwned(ctx, uc.repo, input.RecurringExpenseID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetRecurringExpenseOutput{
		RecurringExpense: def,
	}, nil
}
