// Package recurringexpense contains recurring expense use cases: definition
// management, generation of due occurrences and confirmation of pending ones.
package recurringexpense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
	"github.com/retail-backoffice/backend/internal/domain/recurrence"
)

const (
	// MaxDescriptionLength is the maximum length of a definition description.
	MaxDescriptionLength = 255
	// MaxCategoryLength is the maximum length of a category name.
	MaxCategoryLength = 100
	// MaxPaymentMethodLength is the maximum length of a payment method.
	MaxPaymentMethodLength = 50
)

// findOwned loads a definition and checks that it belongs to userID.
func findOwned(ctx context.Context, repo adapter.RecurringExpenseRepository, id, userID uuid.UUID) (*entity.RecurringExpense, error) {
	def, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecurringExpenseNotFound) {
			return nil, domainerror.NewRecurringExpenseError(
				domainerror.ErrCodeRecurringExpenseNotFound,
				"recurring expense not found",
				domainerror.ErrRecurringExpenseNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find recurring expense: %w", err)
	}

	if def.UserID != userID {
		return nil, domainerror.NewRecurringExpenseError(
			domainerror.ErrCodeUnauthorizedRecurringExpense,
			"not authorized to access this recurring expense",
			domainerror.ErrUnauthorizedRecurringExpenseAccess,
		)
	}

	return def, nil
}

// maxAmount is the first value that does not fit a decimal(15,2) column.
var maxAmount = decimal.New(1, 13)

// isStorableAmount reports whether amount is positive and stored by a
// decimal(15,2) column without rounding or overflow.
func isStorableAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2)) && amount.LessThan(maxAmount)
}

// validateDefinition checks every user-editable field of a definition.
func validateDefinition(def *entity.RecurringExpense) error {
	description := strings.TrimSpace(def.Description)
	if description == "" || len(description) > MaxDescriptionLength {
		return domainerror.NewRecurringExpenseError(
			domainerror.ErrCodeInvalidDescription,
			fmt.Sprintf("description is required and must be at most %d characters", MaxDescriptionLength),
			domainerror.ErrInvalidDescription,
		)
	}

	if len(def.Category) > MaxCategoryLength || len(def.PaymentMethod) > MaxPaymentMethodLength {
		return domainerror.NewRecurringExpenseError(
			domainerror.ErrCodeMissingRecurringFields,
			"category or payment method too long",
			domainerror.ErrInvalidDescription,
		)
	}

	if !isStorableAmount(def.BaseAmount) {
		return domainerror.NewRecurringExpenseError(
			domainerror.ErrCodeInvalidBaseAmount,
			"base amount must be greater than zero, below 10^13 and have at most two decimals",
			domainerror.ErrInvalidBaseAmount,
		)
	}

	if err := recurrence.ValidateSchedule(def.Frequency, def.ExecutionDay); err != nil {
		if errors.Is(err, domainerror.ErrInvalidFrequency) {
			return domainerror.NewRecurringExpenseError(
				domainerror.ErrCodeInvalidFrequency,
				"frequency must be 'monthly', 'weekly', 'biweekly', or 'annual'",
				err,
			)
		}
		return domainerror.NewRecurringExpenseError(
			domainerror.ErrCodeInvalidExecutionDay,
			"execution day must be 1-31 for monthly/annual and 1-7 for weekly/biweekly",
			err,
		)
	}

	if def.StartDate.IsZero() {
		return domainerror.NewRecurringExpenseError(
			domainerror.ErrCodeMissingRecurringFields,
			"start date is required",
			domainerror.ErrInvalidDateRange,
		)
	}

	if def.EndDate != nil && recurrence.Day(*def.EndDate).Before(recurrence.Day(def.StartDate)) {
		return domainerror.NewRecurringExpenseError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must not be before start date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return nil
}

// publishCommitted emits the committed event. Failures are logged only: the
// expense is already in the ledger.
func publishCommitted(ctx context.Context, publisher adapter.ExpenseEventPublisher, expense *entity.Expense) {
	if publisher == nil {
		return
	}

	event := adapter.ExpenseCommittedEvent{
		ExpenseID:  expense.ID.String(),
		UserID:     expense.UserID.String(),
		Source:     string(expense.Source),
		Category:   expense.Category,
		Amount:     expense.Amount,
		Date:       expense.Date.Format(recurrence.DateLayout),
		OccurredAt: time.Now().UTC(),
	}
	if expense.RecurringExpenseID != nil {
		event.RecurringExpenseID = expense.RecurringExpenseID.String()
	}

	if err := publisher.PublishExpenseCommitted(ctx, event); err != nil {
		slog.Warn("Failed to publish expense committed event",
			"expense_id", expense.ID,
			"error", err,
		)
	}
}

// invalidAmountError builds the coded InvalidAmount error.
func invalidAmountError(amount decimal.Decimal) error {
	return domainerror.NewRecurringExpenseError(
		domainerror.ErrCodeInvalidAmount,
		fmt.Sprintf("adjusted amount must be greater than zero, below 10^13 and have at most two decimals, got %s", amount.String()),
		domainerror.ErrInvalidAmount,
	)
}

// staleConfirmationError builds the coded StaleConfirmation error.
func staleConfirmationError(reason string, err error) error {
	if err == nil {
		err = domainerror.ErrStaleConfirmation
	} else {
		err = fmt.Errorf("%w: %w", domainerror.ErrStaleConfirmation, err)
	}
	return domainerror.NewRecurringExpenseError(
		domainerror.ErrCodeStaleConfirmation,
		"no matching pending occurrence: "+reason,
		err,
	)
}
