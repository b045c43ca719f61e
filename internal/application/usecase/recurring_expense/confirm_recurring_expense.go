package recurringexpense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
	"github.com/retail-backoffice/backend/internal/domain/recurrence"
)

// ConfirmRecurringExpenseInput represents the input for confirming a pending occurrence.
type ConfirmRecurringExpenseInput struct {
	RecurringExpenseID uuid.UUID
	UserID             uuid.UUID
	AdjustedAmount     *decimal.Decimal // Optional, defaults to the base amount
	OccurrenceDate     *time.Time       // Optional, the occurrence the caller saw as pending
}

// ConfirmRecurringExpenseOutput represents the output of a confirmation.
type ConfirmRecurringExpenseOutput struct {
	Expense *entity.Expense
}

// ConfirmRecurringExpenseUseCase commits the pending occurrence of a
// confirmation-required definition.
type ConfirmRecurringExpenseUseCase struct {
	repo      adapter.RecurringExpenseRepository
	publisher adapter.ExpenseEventPublisher
	clock     adapter.Clock
	location  *time.Location
}

// NewConfirmRecurringExpenseUseCase creates a new ConfirmRecurringExpenseUseCase instance.
func NewConfirmRecurringExpenseUseCase(
	repo adapter.RecurringExpenseRepository,
	publisher adapter.ExpenseEventPublisher,
	clock adapter.Clock,
	location *time.Location,
) *ConfirmRecurringExpenseUseCase {
	if location == nil {
		location = time.UTC
	}
	return &ConfirmRecurringExpenseUseCase{
		repo:      repo,
		publisher: publisher,
		clock:     clock,
		location:  location,
	}
}

// Execute performs the confirmation.
func (uc *ConfirmRecurringExpenseUseCase) Execute(ctx context.Context, input ConfirmRecurringExpenseInput) (*ConfirmRecurringExpenseOutput, error) {
	// Reject a bad override before touching any state
	if input.AdjustedAmount != nil && !isStorableAmount(*input.AdjustedAmount) {
		return nil, invalidAmountError(*input.AdjustedAmount)
	}

	def, err := findOwned(ctx, uc.repo, input.RecurringExpenseID, input.UserID)
	if err != nil {
		return nil, err
	}

	if !def.Active {
		return nil, staleConfirmationError("recurring expense is paused", nil)
	}
	if !def.RequiresConfirmation {
		return nil, staleConfirmationError("recurring expense does not require confirmation", nil)
	}

	today := recurrence.DayIn(uc.clock.Now(), uc.location)
	occurrenceDate, due, err := recurrence.DueOccurrence(def, today)
	if err != nil {
		return nil, domainerror.NewRecurringExpenseError(
			domainerror.ErrCodeInvalidExecutionDay,
			"recurring expense schedule is invalid",
			err,
		)
	}
	if !due {
		return nil, staleConfirmationError("nothing is due", nil)
	}
	if input.OccurrenceDate != nil && !recurrence.Day(*input.OccurrenceDate).Equal(occurrenceDate) {
		return nil, staleConfirmationError(
			fmt.Sprintf("pending occurrence is %s", occurrenceDate.Format(recurrence.DateLayout)),
			nil,
		)
	}

	amount := def.BaseAmount
	if input.AdjustedAmount != nil {
		amount = *input.AdjustedAmount
	}

	expense := entity.NewRecurringOccurrenceExpense(def, occurrenceDate, amount)

	if err := uc.repo.CommitOccurrence(ctx, expense, occurrenceDate); err != nil {
		if errors.Is(err, domainerror.ErrConcurrentAdvanceLost) {
			return nil, staleConfirmationError("occurrence already confirmed", err)
		}
		return nil, fmt.Errorf("failed to commit confirmed occurrence: %w", err)
	}

	publishCommitted(ctx, uc.publisher, expense)

	slog.Info("Recurring expense confirmed",
		"recurring_expense_id", def.ID,
		"occurrence_date", occurrenceDate.Format(recurrence.DateLayout),
		"expense_id", expense.ID,
		"adjusted", input.AdjustedAmount != nil,
	)

	return &ConfirmRecurringExpenseOutput{
		Expense: expense,
	}, nil
}
