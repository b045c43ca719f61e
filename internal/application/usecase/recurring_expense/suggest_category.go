package recurringexpense

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
)

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	UserID      uuid.UUID
	Description string
}

// SuggestCategoryOutput represents the output of a category suggestion.
type SuggestCategoryOutput struct {
	Suggestion *entity.CategorySuggestion
}

// SuggestCategoryUseCase suggests a category for a new definition's description.
type SuggestCategoryUseCase struct {
	suggester adapter.CategorySuggester
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(suggester adapter.CategorySuggester) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		suggester: suggester,
	}
}

// Execute performs the suggestion.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerror.NewRecurringExpenseError(
			domainerror.ErrCodeInvalidDescription,
			"description is required",
			domainerror.ErrInvalidDescription,
		)
	}

	suggestion, err := uc.suggester.Suggest(ctx, input.UserID, description)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest category: %w", err)
	}
	if suggestion == nil {
		suggestion = entity.NoSuggestion()
	}

	return &SuggestCategoryOutput{
		Suggestion: suggestion,
	}, nil
}
