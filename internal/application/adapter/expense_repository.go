// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/retail-backoffice/backend/internal/domain/entity"
)

// ExpenseFilter defines filter options for listing expenses.
type ExpenseFilter struct {
	UserID    uuid.UUID
	Source    *entity.ExpenseSource
	StartDate *time.Time
	EndDate   *time.Time
}

// ExpenseRepository defines the interface for the expense ledger.
type ExpenseRepository interface {
	// Create creates a new expense in the ledger.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByFilter retrieves expenses matching the filter, newest first.
	FindByFilter(ctx context.Context, filter ExpenseFilter) ([]*entity.Expense, error)

	// FindLatestCategorizedByDescription returns the most recent expense of the
	// user with the given description (case-insensitive) and a non-empty
	// category, or nil when there is none.
	FindLatestCategorizedByDescription(ctx context.Context, userID uuid.UUID, description string) (*entity.Expense, error)
}
