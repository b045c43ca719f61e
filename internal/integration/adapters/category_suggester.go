package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
)

const (
	ruleConfidence    = 1.0
	historyConfidence = 0.8
)

// categorySuggester chains the rule, history and AI matchers. The first
// matcher that yields a category wins.
type categorySuggester struct {
	rules    adapter.CategoryRuleRepository
	expenses adapter.ExpenseRepository
	ai       adapter.AICategoryService
}

// NewCategorySuggester creates a new category suggester. ai may be nil.
func NewCategorySuggester(
	rules adapter.CategoryRuleRepository,
	expenses adapter.ExpenseRepository,
	ai adapter.AICategoryService,
) adapter.CategorySuggester {
	return &categorySuggester{
		rules:    rules,
		expenses: expenses,
		ai:       ai,
	}
}

// Suggest returns the best category suggestion for description.
func (s *categorySuggester) Suggest(ctx context.Context, userID uuid.UUID, description string) (*entity.CategorySuggestion, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return entity.NoSuggestion(), nil
	}

	rules, err := s.rules.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category rules: %w", err)
	}

	if suggestion := matchRules(rules, description); suggestion != nil {
		return suggestion, nil
	}

	previous, err := s.expenses.FindLatestCategorizedByDescription(ctx, userID, description)
	if err != nil {
		return nil, fmt.Errorf("failed to look up expense history: %w", err)
	}
	if previous != nil {
		return &entity.CategorySuggestion{
			Category:   previous.Category,
			Confidence: historyConfidence,
			Source:     entity.SuggestionSourceHistory,
		}, nil
	}

	if s.ai == nil || !s.ai.IsAvailable() {
		return entity.NoSuggestion(), nil
	}

	result, err := s.ai.Classify(ctx, &adapter.AICategoryRequest{
		Description:     description,
		KnownCategories: knownCategories(rules),
	})
	if err != nil {
		// AI is best effort
		slog.Warn("AI category suggestion failed", "user_id", userID, "error", err)
		return entity.NoSuggestion(), nil
	}
	if result == nil || result.Category == "" {
		return entity.NoSuggestion(), nil
	}

	return &entity.CategorySuggestion{
		Category:   result.Category,
		Confidence: result.Confidence,
		Source:     entity.SuggestionSourceAI,
	}, nil
}

// matchRules returns the first rule match in the given (priority) order.
func matchRules(rules []*entity.CategoryRule, description string) *entity.CategorySuggestion {
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			slog.Debug("Skipping category rule with invalid pattern",
				"rule_id", rule.ID,
				"pattern", rule.Pattern,
			)
			continue
		}
		if re.MatchString(description) {
			return &entity.CategorySuggestion{
				Category:   rule.Category,
				Confidence: ruleConfidence,
				Source:     entity.SuggestionSourceRule,
			}
		}
	}
	return nil
}

func knownCategories(rules []*entity.CategoryRule) []string {
	seen := make(map[string]bool, len(rules))
	var out []string
	for _, rule := range rules {
		if rule.Category == "" || seen[rule.Category] {
			continue
		}
		seen[rule.Category] = true
		out = append(out, rule.Category)
	}
	return out
}
