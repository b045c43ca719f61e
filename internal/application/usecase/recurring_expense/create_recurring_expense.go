package recurringexpense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
	"github.com/retail-backoffice/backend/internal/domain/recurrence"
)

// CreateRecurringExpenseInput represents the input for definition creation.
type CreateRecurringExpenseInput struct {
	UserID               uuid.UUID
	Description          string
	Category             string // Optional, suggested when empty
	BaseAmount           decimal.Decimal
	Frequency            entity.Frequency
	ExecutionDay         int
	StartDate            time.Time
	EndDate              *time.Time
	RequiresConfirmation bool
	PaymentMethod        string
	Notes                string
	SupplierID           *uuid.UUID
}

// CreateRecurringExpenseOutput represents the output of definition creation.
type CreateRecurringExpenseOutput struct {
	RecurringExpense *entity.RecurringExpense
	Suggestion       *entity.CategorySuggestion // Set when the category was pre-filled
}

// CreateRecurringExpenseUseCase handles recurring expense creation.
type CreateRecurringExpenseUseCase struct {
	repo      adapter.RecurringExpenseRepository
	suggester adapter.CategorySuggester
}

// NewCreateRecurringExpenseUseCase creates a new CreateRecurringExpenseUseCase instance.
// suggester may be nil, in which case categories are never pre-filled.
func NewCreateRecurringExpenseUseCase(repo adapter.RecurringExpenseRepository, suggester adapter.CategorySuggester) *CreateRecurringExpenseUseCase {
	return &CreateRecurringExpenseUseCase{
		repo:      repo,
		suggester: suggester,
	}
}

// Execute performs the definition creation.
func (uc *CreateRecurringExpenseUseCase) Execute(ctx context.Context, input CreateRecurringExpenseInput) (*CreateRecurringExpenseOutput, error) {
	var endDate *time.Time
	if input.EndDate != nil {
		d := recurrence.Day(*input.EndDate)
		endDate = &d
	}

	def := entity.NewRecurringExpense(
		input.UserID,
		strings.TrimSpace(input.Description),
		strings.TrimSpace(input.Category),
		input.BaseAmount,
		input.Frequency,
		input.ExecutionDay,
		recurrence.Day(input.StartDate),
		endDate,
		input.RequiresConfirmation,
	)
	def.PaymentMethod = strings.TrimSpace(input.PaymentMethod)
	def.Notes = input.Notes
	def.SupplierID = input.SupplierID

	if err := validateDefinition(def); err != nil {
		return nil, err
	}

	output := &CreateRecurringExpenseOutput{}

	if def.Category == "" && uc.suggester != nil {
		suggestion, err := uc.suggester.Suggest(ctx, input.UserID, def.Description)
		if err != nil {
			slog.Warn("Category suggestion failed, creating without category",
				"user_id", input.UserID,
				"error", err,
			)
		} else if suggestion.HasCategory() {
			def.Category = suggestion.Category
			output.Suggestion = suggestion
		}
	}

	if err := uc.repo.Create(ctx, def); err != nil {
		return nil, fmt.Errorf("failed to create recurring expense: %w", err)
	}

	output.RecurringExpense = def
	return output, nil
}
