// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail-backoffice/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date               time.Time       `gorm:"type:date;not null;index;uniqueIndex:idx_expenses_recurring_occurrence,priority:2"`
	Description        string          `gorm:"type:varchar(255);not null"`
	Category           string          `gorm:"type:varchar(100)"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentMethod      string          `gorm:"type:varchar(50)"`
	Notes              string          `gorm:"type:text"`
	SupplierID         *uuid.UUID      `gorm:"type:uuid"`
	Source             string          `gorm:"type:varchar(10);not null;index"`
	RecurringExpenseID *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_expenses_recurring_occurrence,priority:1"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:                 m.ID,
		UserID:             m.UserID,
		Date:               m.Date.UTC(),
		Description:        m.Description,
		Category:           m.Category,
		Amount:             m.Amount,
		PaymentMethod:      m.PaymentMethod,
		Notes:              m.Notes,
		SupplierID:         m.SupplierID,
		Source:             entity.ExpenseSource(m.Source),
		RecurringExpenseID: m.RecurringExpenseID,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:                 expense.ID,
		UserID:             expense.UserID,
		Date:               expense.Date,
		Description:        expense.Description,
		Category:           expense.Category,
		Amount:             expense.Amount,
		PaymentMethod:      expense.PaymentMethod,
		Notes:              expense.Notes,
		SupplierID:         expense.SupplierID,
		Source:             string(expense.Source),
		RecurringExpenseID: expense.RecurringExpenseID,
		CreatedAt:          expense.CreatedAt,
		UpdatedAt:          expense.UpdatedAt,
	}
}
