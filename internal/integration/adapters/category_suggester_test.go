package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
)

type stubRuleRepository struct {
	rules []*entity.CategoryRule
}

func (r *stubRuleRepository) FindActiveByUser(_ context.Context, _ uuid.UUID) ([]*entity.CategoryRule, error) {
	return r.rules, nil
}

func (r *stubRuleRepository) Create(_ context.Context, rule *entity.CategoryRule) error {
	r.rules = append(r.rules, rule)
	return nil
}

type stubHistory struct {
	latest *entity.Expense
}

func (h *stubHistory) Create(context.Context, *entity.Expense) error { return nil }

func (h *stubHistory) FindByID(context.Context, uuid.UUID) (*entity.Expense, error) { return nil, nil }

func (h *stubHistory) FindByFilter(context.Context, adapter.ExpenseFilter) ([]*entity.Expense, error) {
	return nil, nil
}

func (h *stubHistory) FindLatestCategorizedByDescription(context.Context, uuid.UUID, string) (*entity.Expense, error) {
	return h.latest, nil
}

type stubAI struct {
	available bool
	result    *adapter.AICategoryResult
	err       error
	request   *adapter.AICategoryRequest
}

func (a *stubAI) IsAvailable() bool { return a.available }

func (a *stubAI) Classify(_ context.Context, request *adapter.AICategoryRequest) (*adapter.AICategoryResult, error) {
	a.request = request
	return a.result, a.err
}

func TestCategorySuggester_Suggest(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	rules := &stubRuleRepository{rules: []*entity.CategoryRule{
		entity.NewCategoryRule(userID, "([", "broken", 99),
		entity.NewCategoryRule(userID, "(?i)^rent", "housing", 10),
		entity.NewCategoryRule(userID, "(?i)rent", "other", 1),
	}}

	tests := []struct {
		name        string
		description string
		history     *entity.Expense
		ai          *stubAI
		want        entity.CategorySuggestion
	}{
		{
			name:        "rule match wins in priority order",
			description: "Rent October",
			history:     &entity.Expense{Category: "ignored"},
			want:        entity.CategorySuggestion{Category: "housing", Confidence: 1, Source: entity.SuggestionSourceRule},
		},
		{
			name:        "history when no rule matches",
			description: "Electricity",
			history:     &entity.Expense{Category: "utilities"},
			want:        entity.CategorySuggestion{Category: "utilities", Confidence: 0.8, Source: entity.SuggestionSourceHistory},
		},
		{
			name:        "ai when configured",
			description: "Electricity",
			ai:          &stubAI{available: true, result: &adapter.AICategoryResult{Category: "utilities", Confidence: 0.6}},
			want:        entity.CategorySuggestion{Category: "utilities", Confidence: 0.6, Source: entity.SuggestionSourceAI},
		},
		{
			name:        "ai failure yields none",
			description: "Electricity",
			ai:          &stubAI{available: true, err: errors.New("quota")},
			want:        entity.CategorySuggestion{Source: entity.SuggestionSourceNone},
		},
		{
			name:        "unconfigured ai is skipped",
			description: "Electricity",
			ai:          &stubAI{available: false, result: &adapter.AICategoryResult{Category: "x"}},
			want:        entity.CategorySuggestion{Source: entity.SuggestionSourceNone},
		},
		{
			name:        "blank description",
			description: "   ",
			want:        entity.CategorySuggestion{Source: entity.SuggestionSourceNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ai adapter.AICategoryService
			if tt.ai != nil {
				ai = tt.ai
			}
			suggester := NewCategorySuggester(rules, &stubHistory{latest: tt.history}, ai)

			got, err := suggester.Suggest(ctx, userID, tt.description)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}

	t.Run("ai receives known categories", func(t *testing.T) {
		ai := &stubAI{available: true, result: &adapter.AICategoryResult{}}
		suggester := NewCategorySuggester(rules, &stubHistory{}, ai)

		_, err := suggester.Suggest(ctx, userID, "Electricity")
		require.NoError(t, err)
		require.NotNil(t, ai.request)
		assert.Equal(t, []string{"broken", "housing", "other"}, ai.request.KnownCategories)
	})
}

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    adapter.AICategoryResult
		wantErr bool
	}{
		{"plain json", `{"category":"utilities","confidence":0.7}`, adapter.AICategoryResult{Category: "utilities", Confidence: 0.7}, false},
		{"fenced json", "```json\n{\"category\":\" rent \",\"confidence\":1.4}\n```", adapter.AICategoryResult{Category: "rent", Confidence: 1}, false},
		{"negative confidence", `{"category":"","confidence":-1}`, adapter.AICategoryResult{}, false},
		{"garbage", `not json`, adapter.AICategoryResult{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClassification(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}
