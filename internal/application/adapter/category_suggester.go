// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/retail-backoffice/backend/internal/domain/entity"
)

// CategorySuggester suggests a category for an expense description.
type CategorySuggester interface {
	// Suggest returns the best suggestion for the description. A suggestion
	// with SuggestionSourceNone means no matcher produced a category.
	Suggest(ctx context.Context, userID uuid.UUID, description string) (*entity.CategorySuggestion, error)
}
