package recurringexpense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
	"github.com/retail-backoffice/backend/internal/domain/recurrence"
)

// GenerateRecurringExpensesInput represents the input for a generation sweep.
type GenerateRecurringExpensesInput struct {
	UserID uuid.UUID
	AsOf   *time.Time // Optional, defaults to now; must not be after today
}

// GenerationSummary aggregates the outcome of a sweep.
type GenerationSummary struct {
	AutoGenerated       int
	PendingConfirmation int
	AlreadySatisfied    int // Lost the watermark race to a concurrent sweep or confirmation
	Failed              int // Schedule errors and commit errors
}

// GenerateRecurringExpensesOutput represents the output of a generation sweep.
type GenerateRecurringExpensesOutput struct {
	Generated []*entity.Expense
	Pending   []*entity.PendingExpense
	Summary   GenerationSummary
}

// GenerateRecurringExpensesUseCase commits due auto occurrences and reports
// pending ones. Each definition is processed independently.
type GenerateRecurringExpensesUseCase struct {
	repo      adapter.RecurringExpenseRepository
	publisher adapter.ExpenseEventPublisher
	clock     adapter.Clock
	location  *time.Location
}

// NewGenerateRecurringExpensesUseCase creates a new GenerateRecurringExpensesUseCase instance.
// location is the business time zone used to decide which calendar day "now" is.
func NewGenerateRecurringExpensesUseCase(
	repo adapter.RecurringExpenseRepository,
	publisher adapter.ExpenseEventPublisher,
	clock adapter.Clock,
	location *time.Location,
) *GenerateRecurringExpensesUseCase {
	if location == nil {
		location = time.UTC
	}
	return &GenerateRecurringExpensesUseCase{
		repo:      repo,
		publisher: publisher,
		clock:     clock,
		location:  location,
	}
}

// Execute performs the generation sweep.
func (uc *GenerateRecurringExpensesUseCase) Execute(ctx context.Context, input GenerateRecurringExpensesInput) (*GenerateRecurringExpensesOutput, error) {
	today := recurrence.DayIn(uc.clock.Now(), uc.location)
	if input.AsOf != nil {
		// A future day would advance watermarks past occurrences not yet due
		asOf := recurrence.DayIn(*input.AsOf, uc.location)
		if asOf.After(today) {
			return nil, domainerror.NewRecurringExpenseError(
				domainerror.ErrCodeFutureAsOf,
				fmt.Sprintf("as_of %s is after today %s", asOf.Format(recurrence.DateLayout), today.Format(recurrence.DateLayout)),
				domainerror.ErrFutureAsOf,
			)
		}
		today = asOf
	}

	defs, err := uc.repo.FindActiveByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring expenses: %w", err)
	}

	resolution := recurrence.ResolveAll(defs, today)

	output := &GenerateRecurringExpensesOutput{
		Generated: make([]*entity.Expense, 0, len(resolution.AutoOccurrences)),
		Pending:   resolution.PendingOccurrences,
	}
	if output.Pending == nil {
		output.Pending = []*entity.PendingExpense{}
	}

	for _, failure := range resolution.Failures {
		slog.Error("Skipping recurring expense with invalid schedule",
			"user_id", input.UserID,
			"recurring_expense_id", failure.RecurringExpenseID,
			"error", failure.Err,
		)
		output.Summary.Failed++
	}

	for _, occ := range resolution.AutoOccurrences {
		expense, err := uc.commit(ctx, occ)
		switch {
		case err == nil:
			output.Generated = append(output.Generated, expense)
			output.Summary.AutoGenerated++
		case errors.Is(err, domainerror.ErrConcurrentAdvanceLost):
			output.Summary.AlreadySatisfied++
		default:
			output.Summary.Failed++
		}
	}

	output.Summary.PendingConfirmation = len(output.Pending)

	slog.Info("Recurring expense sweep completed",
		"user_id", input.UserID,
		"as_of", today.Format(recurrence.DateLayout),
		"auto_generated", output.Summary.AutoGenerated,
		"pending_confirmation", output.Summary.PendingConfirmation,
		"already_satisfied", output.Summary.AlreadySatisfied,
		"failed", output.Summary.Failed,
	)

	return output, nil
}

// commit writes one auto occurrence through the watermark store.
func (uc *GenerateRecurringExpensesUseCase) commit(ctx context.Context, occ recurrence.Occurrence) (*entity.Expense, error) {
	logger := slog.With(
		"recurring_expense_id", occ.Definition.ID,
		"occurrence_date", occ.Date.Format(recurrence.DateLayout),
	)

	expense := entity.NewRecurringOccurrenceExpense(occ.Definition, occ.Date, occ.Amount)

	if err := uc.repo.CommitOccurrence(ctx, expense, occ.Date); err != nil {
		if errors.Is(err, domainerror.ErrConcurrentAdvanceLost) {
			logger.Debug("Occurrence already satisfied by a concurrent writer")
			return nil, err
		}
		logger.Error("Failed to commit recurring occurrence", "error", err)
		return nil, err
	}

	publishCommitted(ctx, uc.publisher, expense)
	logger.Info("Recurring expense generated", "expense_id", expense.ID)

	return expense, nil
}
