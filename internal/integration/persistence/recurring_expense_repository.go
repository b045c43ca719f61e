// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/domain/entity"
	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
	"github.com/retail-backoffice/backend/internal/integration/persistence/model"
)

// recurringExpenseRepository implements the adapter.RecurringExpenseRepository interface.
type recurringExpenseRepository struct {
	db *gorm.DB
}

// NewRecurringExpenseRepository creates a new recurring expense repository instance.
func NewRecurringExpenseRepository(db *gorm.DB) adapter.RecurringExpenseRepository {
	return &recurringExpenseRepository{
		db: db,
	}
}

// Create creates a new recurring expense definition in the database.
func (r *recurringExpenseRepository) Create(ctx context.Context, def *entity.RecurringExpense) error {
	defModel := model.RecurringExpenseFromEntity(def)
	result := r.db.WithContext(ctx).Create(defModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a definition by its ID.
func (r *recurringExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringExpense, error) {
	var defModel model.RecurringExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&defModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringExpenseNotFound
		}
		return nil, result.Error
	}
	return defModel.ToEntity(), nil
}

// FindByUserID retrieves every definition owned by the user.
func (r *recurringExpenseRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// FindActiveByUserID retrieves the active definitions owned by the user.
func (r *recurringExpenseRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("user_id = ? AND active = ?", userID, true))
}

func (r *recurringExpenseRepository) find(_ context.Context, query *gorm.DB) ([]*entity.RecurringExpense, error) {
	var defModels []model.RecurringExpenseModel
	result := query.Order("created_at ASC").Find(&defModels)
	if result.Error != nil {
		return nil, result.Error
	}

	defs := make([]*entity.RecurringExpense, len(defModels))
	for i := range defModels {
		defs[i] = defModels[i].ToEntity()
	}
	return defs, nil
}

// Update persists the editable fields of a definition. The watermark column
// is not in the update set.
func (r *recurringExpenseRepository) Update(ctx context.Context, def *entity.RecurringExpense) error {
	result := r.db.WithContext(ctx).
		Model(&model.RecurringExpenseModel{}).
		Where("id = ?", def.ID).
		Updates(map[string]interface{}{
			"description":           def.Description,
			"category":              def.Category,
			"base_amount":           def.BaseAmount,
			"frequency":             string(def.Frequency),
			"execution_day":         def.ExecutionDay,
			"start_date":            def.StartDate,
			"end_date":              def.EndDate,
			"active":                def.Active,
			"requires_confirmation": def.RequiresConfirmation,
			"payment_method":        def.PaymentMethod,
			"notes":                 def.Notes,
			"supplier_id":           def.SupplierID,
			"updated_at":            time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringExpenseNotFound
	}
	return nil
}

// Delete hard-deletes a definition.
func (r *recurringExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.RecurringExpenseModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringExpenseNotFound
	}
	return nil
}

// AdvanceWatermark moves last_generated_date forward to occurrenceDate with a
// conditional update.
func (r *recurringExpenseRepository) AdvanceWatermark(ctx context.Context, id uuid.UUID, occurrenceDate time.Time) error {
	return advanceWatermark(r.db.WithContext(ctx), id, occurrenceDate)
}

// CommitOccurrence advances the watermark and inserts the expense in one
// transaction.
func (r *recurringExpenseRepository) CommitOccurrence(ctx context.Context, expense *entity.Expense, occurrenceDate time.Time) error {
	if expense.RecurringExpenseID == nil {
		return fmt.Errorf("expense %s has no recurring expense id", expense.ID)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := advanceWatermark(tx, *expense.RecurringExpenseID, occurrenceDate); err != nil {
			return err
		}

		if err := tx.Create(model.ExpenseFromEntity(expense)).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerror.ErrConcurrentAdvanceLost
			}
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		return nil
	})
}

func advanceWatermark(db *gorm.DB, id uuid.UUID, occurrenceDate time.Time) error {
	result := db.Model(&model.RecurringExpenseModel{}).
		Where("id = ? AND (last_generated_date IS NULL OR last_generated_date < ?)", id, occurrenceDate).
		Updates(map[string]interface{}{
			"last_generated_date": occurrenceDate,
			"updated_at":          time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to advance watermark: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrConcurrentAdvanceLost
	}
	return nil
}

// isUniqueViolation relies on the dialector translating driver errors, which
// requires gorm.Config.TranslateError.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
