// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	recurringexpense "github.com/retail-backoffice/backend/internal/application/usecase/recurring_expense"
	"github.com/retail-backoffice/backend/internal/domain/entity"
	"github.com/retail-backoffice/backend/internal/domain/recurrence"
)

// CreateRecurringExpenseRequest represents the request body for definition creation.
type CreateRecurringExpenseRequest struct {
	Description          string          `json:"description" binding:"required,min=1,max=255"`
	Category             string          `json:"category,omitempty" binding:"omitempty,max=100"`
	BaseAmount           decimal.Decimal `json:"base_amount"`
	Frequency            string          `json:"frequency" binding:"required,oneof=monthly weekly biweekly annual"`
	ExecutionDay         int             `json:"execution_day" binding:"required"`
	StartDate            string          `json:"start_date" binding:"required"`
	EndDate              *string         `json:"end_date,omitempty"`
	RequiresConfirmation bool            `json:"requires_confirmation"`
	PaymentMethod        string          `json:"payment_method,omitempty" binding:"omitempty,max=50"`
	Notes                string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
	SupplierID           *string         `json:"supplier_id,omitempty"`
}

// UpdateRecurringExpenseRequest represents the request body for definition update.
type UpdateRecurringExpenseRequest struct {
	Description          *string          `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Category             *string          `json:"category,omitempty" binding:"omitempty,max=100"`
	BaseAmount           *decimal.Decimal `json:"base_amount,omitempty"`
	Frequency            *string          `json:"frequency,omitempty" binding:"omitempty,oneof=monthly weekly biweekly annual"`
	ExecutionDay         *int             `json:"execution_day,omitempty"`
	StartDate            *string          `json:"start_date,omitempty"`
	EndDate              *string          `json:"end_date,omitempty"`
	ClearEndDate         bool             `json:"clear_end_date,omitempty"`
	Active               *bool            `json:"active,omitempty"`
	RequiresConfirmation *bool            `json:"requires_confirmation,omitempty"`
	PaymentMethod        *string          `json:"payment_method,omitempty" binding:"omitempty,max=50"`
	Notes                *string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
	SupplierID           *string          `json:"supplier_id,omitempty"`
	ClearSupplier        bool             `json:"clear_supplier,omitempty"`
}

// GenerateRecurringExpensesRequest represents the optional request body for a sweep.
type GenerateRecurringExpensesRequest struct {
	AsOf *string `json:"as_of,omitempty"` // YYYY-MM-DD
}

// ConfirmRecurringExpenseRequest represents the request body for a confirmation.
// AdjustedAmount accepts a JSON number, a numeric string or null.
type ConfirmRecurringExpenseRequest struct {
	AdjustedAmount json.RawMessage `json:"adjusted_amount,omitempty"`
	OccurrenceDate *string         `json:"occurrence_date,omitempty"`
}

// SuggestCategoryRequest represents the request body for a category suggestion.
type SuggestCategoryRequest struct {
	Description string `json:"description" binding:"required,min=1,max=255"`
}

// ParseAdjustedAmount decodes the adjusted amount. It returns nil for an
// absent or null value and an error for anything that is not a number.
func ParseAdjustedAmount(raw json.RawMessage) (*decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("adjusted_amount: %w", err)
		}
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return nil, fmt.Errorf("adjusted_amount is not a number: %w", err)
	}
	return &amount, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(recurrence.DateLayout, value)
}

// RecurringExpenseResponse represents a definition in API responses.
type RecurringExpenseResponse struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	Description          string    `json:"description"`
	Category             string    `json:"category"`
	BaseAmount           string    `json:"base_amount"`
	Frequency            string    `json:"frequency"`
	ExecutionDay         int       `json:"execution_day"`
	StartDate            string    `json:"start_date"`
	EndDate              *string   `json:"end_date"`
	Active               bool      `json:"active"`
	RequiresConfirmation bool      `json:"requires_confirmation"`
	PaymentMethod        string    `json:"payment_method"`
	Notes                string    `json:"notes"`
	SupplierID           *string   `json:"supplier_id"`
	LastGeneratedDate    *string   `json:"last_generated_date"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CreateRecurringExpenseResponse wraps a created definition and the category
// suggestion applied to it, if any.
type CreateRecurringExpenseResponse struct {
	RecurringExpenseResponse
	CategorySuggestion *CategorySuggestionResponse `json:"category_suggestion,omitempty"`
}

// PendingExpenseResponse represents a pending occurrence in API responses.
type PendingExpenseResponse struct {
	RecurringExpenseID string  `json:"recurring_expense_id"`
	OccurrenceDate     string  `json:"occurrence_date"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	BaseAmount         string  `json:"base_amount"`
	Frequency          string  `json:"frequency"`
	PaymentMethod      string  `json:"payment_method"`
	Notes              string  `json:"notes"`
	SupplierID         *string `json:"supplier_id"`
}

// GenerationSummaryResponse represents sweep counters in API responses.
type GenerationSummaryResponse struct {
	AutoGenerated       int `json:"auto_generated"`
	PendingConfirmation int `json:"pending_confirmation"`
	AlreadySatisfied    int `json:"already_satisfied"`
	Failed              int `json:"failed"`
}

// GenerateRecurringExpensesResponse represents the result of a sweep.
type GenerateRecurringExpensesResponse struct {
	Generated []ExpenseResponse         `json:"generated"`
	Pending   []PendingExpenseResponse  `json:"pending"`
	Summary   GenerationSummaryResponse `json:"summary"`
}

// CategorySuggestionResponse represents a category suggestion.
type CategorySuggestionResponse struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// ToRecurringExpenseResponse converts a domain RecurringExpense to a response DTO.
func ToRecurringExpenseResponse(def *entity.RecurringExpense) RecurringExpenseResponse {
	return RecurringExpenseResponse{
		ID:                   def.ID.String(),
		UserID:               def.UserID.String(),
		Description:          def.Description,
		Category:             def.Category,
		BaseAmount:           def.BaseAmount.StringFixed(2),
		Frequency:            string(def.Frequency),
		ExecutionDay:         def.ExecutionDay,
		StartDate:            def.StartDate.Format(recurrence.DateLayout),
		EndDate:              formatOptionalDate(def.EndDate),
		Active:               def.Active,
		RequiresConfirmation: def.RequiresConfirmation,
		PaymentMethod:        def.PaymentMethod,
		Notes:                def.Notes,
		SupplierID:           formatOptionalUUID(def.SupplierID),
		LastGeneratedDate:    formatOptionalDate(def.LastGeneratedDate),
		CreatedAt:            def.CreatedAt,
		UpdatedAt:            def.UpdatedAt,
	}
}

// ToRecurringExpenseListResponse converts definitions to response DTOs.
func ToRecurringExpenseListResponse(defs []*entity.RecurringExpense) []RecurringExpenseResponse {
	out := make([]RecurringExpenseResponse, len(defs))
	for i, def := range defs {
		out[i] = ToRecurringExpenseResponse(def)
	}
	return out
}

// ToCreateRecurringExpenseResponse converts the create output to a response DTO.
func ToCreateRecurringExpenseResponse(output *recurringexpense.CreateRecurringExpenseOutput) CreateRecurringExpenseResponse {
	response := CreateRecurringExpenseResponse{
		RecurringExpenseResponse: ToRecurringExpenseResponse(output.RecurringExpense),
	}
	if output.Suggestion != nil {
		s := ToCategorySuggestionResponse(output.Suggestion)
		response.CategorySuggestion = &s
	}
	return response
}

// ToPendingExpenseResponse converts a PendingExpense to a response DTO.
func ToPendingExpenseResponse(p *entity.PendingExpense) PendingExpenseResponse {
	return PendingExpenseResponse{
		RecurringExpenseID: p.RecurringExpenseID.String(),
		OccurrenceDate:     p.OccurrenceDate.Format(recurrence.DateLayout),
		Description:        p.Description,
		Category:           p.Category,
		BaseAmount:         p.BaseAmount.StringFixed(2),
		Frequency:          string(p.Frequency),
		PaymentMethod:      p.PaymentMethod,
		Notes:              p.Notes,
		SupplierID:         formatOptionalUUID(p.SupplierID),
	}
}

// ToGenerateRecurringExpensesResponse converts the sweep output to a response DTO.
func ToGenerateRecurringExpensesResponse(output *recurringexpense.GenerateRecurringExpensesOutput) GenerateRecurringExpensesResponse {
	response := GenerateRecurringExpensesResponse{
		Generated: make([]ExpenseResponse, len(output.Generated)),
		Pending:   make([]PendingExpenseResponse, len(output.Pending)),
		Summary: GenerationSummaryResponse{
			AutoGenerated:       output.Summary.AutoGenerated,
			PendingConfirmation: output.Summary.PendingConfirmation,
			AlreadySatisfied:    output.Summary.AlreadySatisfied,
			Failed:              output.Summary.Failed,
		},
	}
	for i, e := range output.Generated {
		response.Generated[i] = ToExpenseResponse(e)
	}
	for i, p := range output.Pending {
		response.Pending[i] = ToPendingExpenseResponse(p)
	}
	return response
}

// ToCategorySuggestionResponse converts a CategorySuggestion to a response DTO.
func ToCategorySuggestionResponse(s *entity.CategorySuggestion) CategorySuggestionResponse {
	return CategorySuggestionResponse{
		Category:   s.Category,
		Confidence: s.Confidence,
		Source:     string(s.Source),
	}
}
