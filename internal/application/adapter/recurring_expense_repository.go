// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/retail-backoffice/backend/internal/domain/entity"
)

// RecurringExpenseRepository defines the interface for recurring expense
// definition persistence. It is also the watermark store: LastGeneratedDate
// is written only through AdvanceWatermark and CommitOccurrence.
type RecurringExpenseRepository interface {
	// Create creates a new recurring expense definition.
	Create(ctx context.Context, recurringExpense *entity.RecurringExpense) error

	// FindByID retrieves a definition by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringExpense, error)

	// FindByUserID retrieves every definition owned by the user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error)

	// FindActiveByUserID retrieves the active definitions owned by the user.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error)

	// Update persists the editable fields of a definition. It never writes
	// LastGeneratedDate.
	Update(ctx context.Context, recurringExpense *entity.RecurringExpense) error

	// Delete hard-deletes a definition. Expenses created from it are kept.
	Delete(ctx context.Context, id uuid.UUID) error

	// AdvanceWatermark sets LastGeneratedDate to occurrenceDate only if the
	// current watermark is null or strictly earlier. It returns
	// ErrConcurrentAdvanceLost when the condition does not hold.
	AdvanceWatermark(ctx context.Context, id uuid.UUID, occurrenceDate time.Time) error

	// CommitOccurrence advances the watermark and inserts the expense in a
	// single transaction. When the advance is lost, nothing is written and
	// ErrConcurrentAdvanceLost is returned.
	CommitOccurrence(ctx context.Context, expense *entity.Expense, occurrenceDate time.Time) error
}
