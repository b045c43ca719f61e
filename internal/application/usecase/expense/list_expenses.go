// Package expense contains expense ledger use cases.
package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
	"github.com/retail-backoffice/backend/internal/domain/recurrence"
)

// ListExpensesInput represents the input for listing expenses.
type ListExpensesInput struct {
	UserID    uuid.UUID
	Source    *entity.ExpenseSource
	StartDate *time.Time
	EndDate   *time.Time
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses []*entity.Expense
	Total    decimal.Decimal
}

// ListExpensesUseCase handles expense listing.
type ListExpensesUseCase struct {
	repo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(repo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		repo: repo,
	}
}

// Execute performs the listing.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	if input.Source != nil && !input.Source.IsValid() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseSource,
			"source must be 'manual', 'vendor', 'recurring', or 'import'",
			domainerror.ErrInvalidExpenseSource,
		)
	}

	filter := adapter.ExpenseFilter{
		UserID: input.UserID,
		Source: input.Source,
	}
	if input.StartDate != nil {
		d := recurrence.Day(*input.StartDate)
		filter.StartDate = &d
	}
	if input.EndDate != nil {
		d := recurrence.Day(*input.EndDate)
		filter.EndDate = &d
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDateRange,
			"end_date must not be before start_date",
			domainerror.ErrInvalidExpenseDateRange,
		)
	}

	expenses, err := uc.repo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	return &ListExpensesOutput{
		Expenses: expenses,
		Total:    total,
	}, nil
}
