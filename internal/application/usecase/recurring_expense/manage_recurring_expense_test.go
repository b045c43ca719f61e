package recurringexpense

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retail-backoffice/backend/internal/domain/entity"
	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
)

func validCreateInput(userID uuid.UUID) CreateRecurringExpenseInput {
	return CreateRecurringExpenseInput{
		UserID:       userID,
		Description:  "  Internet  ",
		BaseAmount:   mustDecimal("89.90"),
		Frequency:    entity.FrequencyMonthly,
		ExecutionDay: 10,
		StartDate:    date("2026-01-01"),
	}
}

func TestCreateRecurringExpenseUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates active definition without watermark", func(t *testing.T) {
		repo := newMemoryRepository()
		uc := NewCreateRecurringExpenseUseCase(repo, nil)

		out, err := uc.Execute(ctx, validCreateInput(userID))
		require.NoError(t, err)
		assert.Equal(t, "Internet", out.RecurringExpense.Description)
		assert.True(t, out.RecurringExpense.Active)
		assert.Nil(t, out.RecurringExpense.LastGeneratedDate)
		assert.Nil(t, out.Suggestion)

		stored, err := repo.FindByID(ctx, out.RecurringExpense.ID)
		require.NoError(t, err)
		assert.Equal(t, userID, stored.UserID)
	})

	t.Run("pre-fills empty category from suggester", func(t *testing.T) {
		repo := newMemoryRepository()
		suggester := &stubSuggester{suggestion: &entity.CategorySuggestion{
			Category: "utilities", Confidence: 1, Source: entity.SuggestionSourceRule,
		}}
		uc := NewCreateRecurringExpenseUseCase(repo, suggester)

		out, err := uc.Execute(ctx, validCreateInput(userID))
		require.NoError(t, err)
		assert.Equal(t, "utilities", out.RecurringExpense.Category)
		require.NotNil(t, out.Suggestion)
		assert.Equal(t, entity.SuggestionSourceRule, out.Suggestion.Source)
	})

	t.Run("keeps explicit category and tolerates suggester errors", func(t *testing.T) {
		repo := newMemoryRepository()
		suggester := &stubSuggester{err: errBoom}
		uc := NewCreateRecurringExpenseUseCase(repo, suggester)

		input := validCreateInput(userID)
		input.Category = "telecom"
		out, err := uc.Execute(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "telecom", out.RecurringExpense.Category)
		assert.Equal(t, 0, suggester.calls)

		out, err = uc.Execute(ctx, validCreateInput(userID))
		require.NoError(t, err)
		assert.Empty(t, out.RecurringExpense.Category)
		assert.Equal(t, 1, suggester.calls)
	})

	tests := []struct {
		name   string
		mutate func(in *CreateRecurringExpenseInput)
		code   domainerror.RecurringExpenseErrorCode
	}{
		{"empty description", func(in *CreateRecurringExpenseInput) { in.Description = "   " }, domainerror.ErrCodeInvalidDescription},
		{"zero amount", func(in *CreateRecurringExpenseInput) { in.BaseAmount = mustDecimal("0") }, domainerror.ErrCodeInvalidBaseAmount},
		{"sub-cent amount", func(in *CreateRecurringExpenseInput) { in.BaseAmount = mustDecimal("0.001") }, domainerror.ErrCodeInvalidBaseAmount},
		{"amount too large", func(in *CreateRecurringExpenseInput) { in.BaseAmount = mustDecimal("10000000000000") }, domainerror.ErrCodeInvalidBaseAmount},
		{"unknown frequency", func(in *CreateRecurringExpenseInput) { in.Frequency = "daily" }, domainerror.ErrCodeInvalidFrequency},
		{"monthly day 32", func(in *CreateRecurringExpenseInput) { in.ExecutionDay = 32 }, domainerror.ErrCodeInvalidExecutionDay},
		{"weekly day 8", func(in *CreateRecurringExpenseInput) {
			in.Frequency = entity.FrequencyWeekly
			in.ExecutionDay = 8
		}, domainerror.ErrCodeInvalidExecutionDay},
		{"end before start", func(in *CreateRecurringExpenseInput) {
			end := date("2025-12-31")
			in.EndDate = &end
		}, domainerror.ErrCodeInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateRecurringExpenseUseCase(newMemoryRepository(), nil)
			input := validCreateInput(userID)
			tt.mutate(&input)

			_, err := uc.Execute(ctx, input)
			var recErr *domainerror.RecurringExpenseError
			require.True(t, errors.As(err, &recErr))
			assert.Equal(t, tt.code, recErr.Code)
		})
	}
}

func TestUpdateRecurringExpenseUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("edits fields and keeps watermark", func(t *testing.T) {
		def := monthlyDefinition(userID, 5, "2026-01-01", false)
		wm := date("2026-10-05")
		def.LastGeneratedDate = &wm
		repo := newMemoryRepository(def)
		uc := NewUpdateRecurringExpenseUseCase(repo)

		amount := mustDecimal("1300.00")
		day := 15
		out, err := uc.Execute(ctx, UpdateRecurringExpenseInput{
			RecurringExpenseID: def.ID,
			UserID:             userID,
			BaseAmount:         &amount,
			ExecutionDay:       &day,
		})
		require.NoError(t, err)
		assert.True(t, out.RecurringExpense.BaseAmount.Equal(amount))

		stored, err := repo.FindByID(ctx, def.ID)
		require.NoError(t, err)
		assert.Equal(t, 15, stored.ExecutionDay)
		require.NotNil(t, stored.LastGeneratedDate)
		assert.True(t, stored.LastGeneratedDate.Equal(wm))
	})

	t.Run("clears end date", func(t *testing.T) {
		def := monthlyDefinition(userID, 5, "2026-01-01", false)
		end := date("2026-12-31")
		def.EndDate = &end
		repo := newMemoryRepository(def)
		uc := NewUpdateRecurringExpenseUseCase(repo)

		out, err := uc.Execute(ctx, UpdateRecurringExpenseInput{RecurringExpenseID: def.ID, UserID: userID, ClearEndDate: true})
		require.NoError(t, err)
		assert.Nil(t, out.RecurringExpense.EndDate)
	})

	t.Run("rejects invalid edit", func(t *testing.T) {
		def := monthlyDefinition(userID, 5, "2026-01-01", false)
		repo := newMemoryRepository(def)
		uc := NewUpdateRecurringExpenseUseCase(repo)

		day := 0
		_, err := uc.Execute(ctx, UpdateRecurringExpenseInput{RecurringExpenseID: def.ID, UserID: userID, ExecutionDay: &day})
		assert.True(t, errors.Is(err, domainerror.ErrInvalidExecutionDay))

		stored, _ := repo.FindByID(ctx, def.ID)
		assert.Equal(t, 5, stored.ExecutionDay)
	})

	t.Run("foreign owner", func(t *testing.T) {
		def := monthlyDefinition(uuid.New(), 5, "2026-01-01", false)
		uc := NewUpdateRecurringExpenseUseCase(newMemoryRepository(def))

		_, err := uc.Execute(ctx, UpdateRecurringExpenseInput{RecurringExpenseID: def.ID, UserID: userID})
		assert.True(t, errors.Is(err, domainerror.ErrUnauthorizedRecurringExpenseAccess))
	})
}

func TestToggleAndDeleteRecurringExpense(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	def := monthlyDefinition(userID, 5, "2026-01-01", false)
	repo := newMemoryRepository(def)

	toggle := NewToggleRecurringExpenseUseCase(repo)
	out, err := toggle.Execute(ctx, ToggleRecurringExpenseInput{RecurringExpenseID: def.ID, UserID: userID})
	require.NoError(t, err)
	assert.False(t, out.RecurringExpense.Active)

	list := NewListRecurringExpensesUseCase(repo)
	listed, err := list.Execute(ctx, ListRecurringExpensesInput{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, listed.RecurringExpenses, 1)

	get := NewGetRecurringExpenseUseCase(repo)
	got, err := get.Execute(ctx, GetRecurringExpenseInput{RecurringExpenseID: def.ID, UserID: userID})
	require.NoError(t, err)
	assert.False(t, got.RecurringExpense.Active)

	del := NewDeleteRecurringExpenseUseCase(repo)
	_, err = del.Execute(ctx, DeleteRecurringExpenseInput{RecurringExpenseID: def.ID, UserID: userID})
	require.NoError(t, err)

	_, err = get.Execute(ctx, GetRecurringExpenseInput{RecurringExpenseID: def.ID, UserID: userID})
	assert.True(t, errors.Is(err, domainerror.ErrRecurringExpenseNotFound))
}

func TestSuggestCategoryUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("requires description", func(t *testing.T) {
		uc := NewSuggestCategoryUseCase(&stubSuggester{})
		_, err := uc.Execute(ctx, SuggestCategoryInput{UserID: uuid.New(), Description: " "})
		assert.True(t, errors.Is(err, domainerror.ErrInvalidDescription))
	})

	t.Run("returns none when suggester has nothing", func(t *testing.T) {
		uc := NewSuggestCategoryUseCase(&stubSuggester{})
		out, err := uc.Execute(ctx, SuggestCategoryInput{UserID: uuid.New(), Description: "Gym"})
		require.NoError(t, err)
		assert.Equal(t, entity.SuggestionSourceNone, out.Suggestion.Source)
	})
}
