// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryRule maps expense descriptions to a category through a regex pattern.
// Rules are maintained by the categorization screens; the recurring engine
// only reads them to pre-fill categories.
type CategoryRule struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Pattern   string // Regex pattern matched against descriptions
	Category  string
	Priority  int  // Higher priority rules are checked first
	IsActive  bool // Allows disabling rules without deleting them
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategoryRule creates a new active CategoryRule.
func NewCategoryRule(userID uuid.UUID, pattern, category string, priority int) *CategoryRule {
	now := time.Now().UTC()

	return &CategoryRule{
		ID:        uuid.New(),
		UserID:    userID,
		Pattern:   pattern,
		Category:  category,
		Priority:  priority,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SuggestionSource identifies which matcher produced a category suggestion.
type SuggestionSource string

const (
	SuggestionSourceRule    SuggestionSource = "rule"
	SuggestionSourceHistory SuggestionSource = "history"
	SuggestionSourceAI      SuggestionSource = "ai"
	SuggestionSourceNone    SuggestionSource = "none"
)

// CategorySuggestion is the suggested category for a description.
type CategorySuggestion struct {
	Category   string
	Confidence float64
	Source     SuggestionSource
}

// HasCategory reports whether the suggestion carries a category.
func (s *CategorySuggestion) HasCategory() bool {
	return s != nil && s.Source != SuggestionSourceNone && s.Category != ""
}

// NoSuggestion returns the empty suggestion.
func NoSuggestion() *CategorySuggestion {
	return &CategorySuggestion{Source: SuggestionSourceNone}
}
