package recurringexpense

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
)

func TestConfirmRecurringExpenseUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	clock := fixedClock{now: date("2026-10-14")}

	t.Run("confirms pending occurrence at base amount", func(t *testing.T) {
		def := monthlyDefinition(userID, 5, "2026-01-01", true)
		repo := newMemoryRepository(def)
		publisher := &recordingPublisher{}
		uc := NewConfirmRecurringExpenseUseCase(repo, publisher, clock, nil)

		out, err := uc.Execute(ctx, ConfirmRecurringExpenseInput{RecurringExpenseID: def.ID, UserID: userID})
		require.NoError(t, err)
		assert.True(t, out.Expense.Amount.Equal(def.BaseAmount))
		assert.True(t, out.Expense.Date.Equal(date("2026-10-05")))
		assert.True(t, repo.watermark(def.ID).Equal(date("2026-10-05")))
		assert.Equal(t, 1, publisher.count())
	})

	t.Run("applies adjusted amount to this occurrence only", func(t *testing.T) {
		def := monthlyDefinition(userID, 5, "2026-01-01", true)
		repo := newMemoryRepository(def)
		uc := NewConfirmRecurringExpenseUseCase(repo, nil, clock, nil)

		adjusted := mustDecimal("1250.50")
		out, err := uc.Execute(ctx, ConfirmRecurringExpenseInput{
			RecurringExpenseID: def.ID,
			UserID:             userID,
			AdjustedAmount:     &adjusted,
		})
		require.NoError(t, err)
		assert.True(t, out.Expense.Amount.Equal(adjusted))

		stored, err := repo.FindByID(ctx, def.ID)
		require.NoError(t, err)
		assert.True(t, stored.BaseAmount.Equal(mustDecimal("1200.00")))
	})

	t.Run("accepts the largest storable amount", func(t *testing.T) {
		def := monthlyDefinition(userID, 5, "2026-01-01", true)
		repo := newMemoryRepository(def)
		uc := NewConfirmRecurringExpenseUseCase(repo, nil, clock, nil)

		amount := mustDecimal("9999999999999.99")
		out, err := uc.Execute(ctx, ConfirmRecurringExpenseInput{
			RecurringExpenseID: def.ID,
			UserID:             userID,
			AdjustedAmount:     &amount,
		})
		require.NoError(t, err)
		assert.True(t, out.Expense.Amount.Equal(amount))
	})

	t.Run("rejects non-positive amount and leaves occurrence pending", func(t *testing.T) {
		def := monthlyDefinition(userID, 5, "2026-01-01", true)
		repo := newMemoryRepository(def)
		uc := NewConfirmRecurringExpenseUseCase(repo, nil, clock, nil)

		// Sub-cent and 14-digit values do not fit decimal(15,2)
		for _, raw := range []string{"-5", "0", "0.004", "12.345", "10000000000000", "99999999999999.99"} {
			amount := mustDecimal(raw)
			_, err := uc.Execute(ctx, ConfirmRecurringExpenseInput{
				RecurringExpenseID: def.ID,
				UserID:             userID,
				AdjustedAmount:     &amount,
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerror.ErrInvalidAmount))

			var recErr *domainerror.RecurringExpenseError
			require.True(t, errors.As(err, &recErr))
			assert.Equal(t, domainerror.ErrCodeInvalidAmount, recErr.Code)
		}

		assert.Nil(t, repo.watermark(def.ID))
		assert.Empty(t, repo.expensesFor(def.ID))

		gen := NewGenerateRecurringExpensesUseCase(repo, nil, clock, nil)
		out, err := gen.Execute(ctx, GenerateRecurringExpensesInput{UserID: userID})
		require.NoError(t, err)
		assert.Len(t, out.Pending, 1)
	})

	t.Run("second confirmation is stale", func(t *testing.T) {
		def := monthlyDefinition(userID, 5, "2026-01-01", true)
		repo := newMemoryRepository(def)
		uc := NewConfirmRecurringExpenseUseCase(repo, nil, clock, nil)

		_, err := uc.Execute(ctx, ConfirmRecurringExpenseInput{RecurringExpenseID: def.ID, UserID: userID})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, ConfirmRecurringExpenseInput{RecurringExpenseID: def.ID, UserID: userID})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerror.ErrStaleConfirmation))
		assert.Len(t, repo.expensesFor(def.ID), 1)
	})

	t.Run("concurrent confirmations commit one expense", func(t *testing.T) {
		def := monthlyDefinition(userID, 5, "2026-01-01", true)
		repo := newMemoryRepository(def)
		uc := NewConfirmRecurringExpenseUseCase(repo, nil, clock, nil)

		const workers = 8
		results := make([]error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = uc.Execute(ctx, ConfirmRecurringExpenseInput{RecurringExpenseID: def.ID, UserID: userID})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
				continue
			}
			assert.True(t, errors.Is(err, domainerror.ErrStaleConfirmation))
		}
		assert.Equal(t, 1, succeeded)
		assert.Len(t, repo.expensesFor(def.ID), 1)
	})

	t.Run("occurrence from a previous period is stale", func(t *testing.T) {
		def := monthlyDefinition(userID, 5, "2026-01-01", true)
		repo := newMemoryRepository(def)
		uc := NewConfirmRecurringExpenseUseCase(repo, nil, clock, nil)

		seen := date("2026-09-05")
		_, err := uc.Execute(ctx, ConfirmRecurringExpenseInput{
			RecurringExpenseID: def.ID,
			UserID:             userID,
			OccurrenceDate:     &seen,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerror.ErrStaleConfirmation))
		assert.Nil(t, repo.watermark(def.ID))
	})

	t.Run("paused or auto definitions are stale", func(t *testing.T) {
		paused := monthlyDefinition(userID, 5, "2026-01-01", true)
		paused.Active = false
		auto := monthlyDefinition(userID, 5, "2026-01-01", false)
		repo := newMemoryRepository(paused, auto)
		uc := NewConfirmRecurringExpenseUseCase(repo, nil, clock, nil)

		for _, id := range []uuid.UUID{paused.ID, auto.ID} {
			_, err := uc.Execute(ctx, ConfirmRecurringExpenseInput{RecurringExpenseID: id, UserID: userID})
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerror.ErrStaleConfirmation))
		}
	})

	t.Run("nothing due is stale", func(t *testing.T) {
		def := monthlyDefinition(userID, 20, "2026-10-15", true)
		repo := newMemoryRepository(def)
		uc := NewConfirmRecurringExpenseUseCase(repo, nil, clock, nil)

		_, err := uc.Execute(ctx, ConfirmRecurringExpenseInput{RecurringExpenseID: def.ID, UserID: userID})
		assert.True(t, errors.Is(err, domainerror.ErrStaleConfirmation))
	})

	t.Run("unknown and foreign definitions", func(t *testing.T) {
		def := monthlyDefinition(uuid.New(), 5, "2026-01-01", true)
		repo := newMemoryRepository(def)
		uc := NewConfirmRecurringExpenseUseCase(repo, nil, clock, nil)

		_, err := uc.Execute(ctx, ConfirmRecurringExpenseInput{RecurringExpenseID: uuid.New(), UserID: userID})
		assert.True(t, errors.Is(err, domainerror.ErrRecurringExpenseNotFound))

		_, err = uc.Execute(ctx, ConfirmRecurringExpenseInput{RecurringExpenseID: def.ID, UserID: userID})
		assert.True(t, errors.Is(err, domainerror.ErrUnauthorizedRecurringExpenseAccess))
	})
}
