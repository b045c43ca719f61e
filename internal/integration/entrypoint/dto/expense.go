// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/retail-backoffice/backend/internal/application/usecase/expense"
	"github.com/retail-backoffice/backend/internal/domain/entity"
	"github.com/retail-backoffice/backend/internal/domain/recurrence"
)

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Date               string    `json:"date"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	Amount             string    `json:"amount"`
	PaymentMethod      string    `json:"payment_method"`
	Notes              string    `json:"notes"`
	SupplierID         *string   `json:"supplier_id"`
	Source             string    `json:"source"`
	RecurringExpenseID *string   `json:"recurring_expense_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    string            `json:"total"`
}

// ToExpenseResponse converts a domain Expense to a response DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:                 e.ID.String(),
		UserID:             e.UserID.String(),
		Date:               e.Date.Format(recurrence.DateLayout),
		Description:        e.Description,
		Category:           e.Category,
		Amount:             e.Amount.StringFixed(2),
		PaymentMethod:      e.PaymentMethod,
		Notes:              e.Notes,
		SupplierID:         formatOptionalUUID(e.SupplierID),
		Source:             string(e.Source),
		RecurringExpenseID: formatOptionalUUID(e.RecurringExpenseID),
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

// ToExpenseListResponse converts the list output to a response DTO.
func ToExpenseListResponse(output *expense.ListExpensesOutput) ExpenseListResponse {
	response := ExpenseListResponse{
		Expenses: make([]ExpenseResponse, len(output.Expenses)),
		Total:    output.Total.StringFixed(2),
	}
	for i, e := range output.Expenses {
		response.Expenses[i] = ToExpenseResponse(e)
	}
	return response
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(recurrence.DateLayout)
	return &s
}

func formatOptionalUUID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
