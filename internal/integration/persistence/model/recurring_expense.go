// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail-backoffice/backend/internal/domain/entity"
)

// RecurringExpenseModel represents the recurring_expenses table in the database.
type RecurringExpenseModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description          string          `gorm:"type:varchar(255);not null"`
	Category             string          `gorm:"type:varchar(100)"`
	BaseAmount           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Frequency            string          `gorm:"type:varchar(10);not null"`
	ExecutionDay         int             `gorm:"not null"`
	StartDate            time.Time       `gorm:"type:date;not null"`
	EndDate              *time.Time      `gorm:"type:date"`
	Active               bool            `gorm:"not null;index"`
	RequiresConfirmation bool            `gorm:"not null;default:false"`
	PaymentMethod        string          `gorm:"type:varchar(50)"`
	Notes                string          `gorm:"type:text"`
	SupplierID           *uuid.UUID      `gorm:"type:uuid"`
	LastGeneratedDate    *time.Time      `gorm:"type:date"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`
}

// TableName returns the table name for the RecurringExpenseModel.
func (RecurringExpenseModel) TableName() string {
	return "recurring_expenses"
}

// ToEntity converts a RecurringExpenseModel to a domain RecurringExpense entity.
func (m *RecurringExpenseModel) ToEntity() *entity.RecurringExpense {
	return &entity.RecurringExpense{
		ID:                   m.ID,
		UserID:               m.UserID,
		Description:          m.Description,
		Category:             m.Category,
		BaseAmount:           m.BaseAmount,
		Frequency:            entity.Frequency(m.Frequency),
		ExecutionDay:         m.ExecutionDay,
		StartDate:            m.StartDate.UTC(),
		EndDate:              utcDate(m.EndDate),
		Active:               m.Active,
		RequiresConfirmation: m.RequiresConfirmation,
		PaymentMethod:        m.PaymentMethod,
		Notes:                m.Notes,
		SupplierID:           m.SupplierID,
		LastGeneratedDate:    utcDate(m.LastGeneratedDate),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// RecurringExpenseFromEntity creates a RecurringExpenseModel from a domain RecurringExpense entity.
func RecurringExpenseFromEntity(def *entity.RecurringExpense) *RecurringExpenseModel {
	return &RecurringExpenseModel{
		ID:                   def.ID,
		UserID:               def.UserID,
		Description:          def.Description,
		Category:             def.Category,
		BaseAmount:           def.BaseAmount,
		Frequency:            string(def.Frequency),
		ExecutionDay:         def.ExecutionDay,
		StartDate:            def.StartDate,
		EndDate:              def.EndDate,
		Active:               def.Active,
		RequiresConfirmation: def.RequiresConfirmation,
		PaymentMethod:        def.PaymentMethod,
		Notes:                def.Notes,
		SupplierID:           def.SupplierID,
		LastGeneratedDate:    def.LastGeneratedDate,
		CreatedAt:            def.CreatedAt,
		UpdatedAt:            def.UpdatedAt,
	}
}

func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := t.UTC()
	return &d
}
