// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	recurringexpense "github.com/retail-backoffice/backend/internal/application/usecase/recurring_expense"
	"github.com/retail-backoffice/backend/internal/domain/entity"
	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
	"github.com/retail-backoffice/backend/internal/integration/entrypoint/dto"
)

// RecurringExpenseController handles recurring expense endpoints.
type RecurringExpenseController struct {
	createUseCase   *recurringexpense.CreateRecurringExpenseUseCase
	getUseCase      *recurringexpense.GetRecurringExpenseUseCase
	listUseCase     *recurringexpense.ListRecurringExpensesUseCase
	updateUseCase   *recurringexpense.UpdateRecurringExpenseUseCase
	toggleUseCase   *recurringexpense.ToggleRecurringExpenseUseCase
	deleteUseCase   *recurringexpense.DeleteRecurringExpenseUseCase
	generateUseCase *recurringexpense.GenerateRecurringExpensesUseCase
	confirmUseCase  *recurringexpense.ConfirmRecurringExpenseUseCase
	suggestUseCase  *recurringexpense.SuggestCategoryUseCase
}

// NewRecurringExpenseController creates a new recurring expense controller instance.
func NewRecurringExpenseController(
	createUseCase *recurringexpense.CreateRecurringExpenseUseCase,
	getUseCase *recurringexpense.GetRecurringExpenseUseCase,
	listUseCase *recurringexpense.ListRecurringExpensesUseCase,
	updateUseCase *recurringexpense.UpdateRecurringExpenseUseCase,
	toggleUseCase *recurringexpense.ToggleRecurringExpenseUseCase,
	deleteUseCase *recurringexpense.DeleteRecurringExpenseUseCase,
	generateUseCase *recurringexpense.GenerateRecurringExpensesUseCase,
	confirmUseCase *recurringexpense.ConfirmRecurringExpenseUseCase,
	suggestUseCase *recurringexpense.SuggestCategoryUseCase,
) *RecurringExpenseController {
	return &RecurringExpenseController{
		createUseCase:   createUseCase,
		getUseCase:      getUseCase,
		listUseCase:     listUseCase,
		updateUseCase:   updateUseCase,
		toggleUseCase:   toggleUseCase,
		deleteUseCase:   deleteUseCase,
		generateUseCase: generateUseCase,
		confirmUseCase:  confirmUseCase,
		suggestUseCase:  suggestUseCase,
	}
}

// List handles GET /recurring-expenses requests.
func (c *RecurringExpenseController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), recurringexpense.ListRecurringExpensesInput{
		UserID: userID,
	})
	if err != nil {
		c.handleRecurringExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringExpenseListResponse(output.RecurringExpenses))
}

// Create handles POST /recurring-expenses requests.
func (c *RecurringExpenseController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateRecurringExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", domainerror.ErrCodeMissingRecurringFields, err)
		return
	}

	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		badRequest(ctx, "Invalid start_date format. Use YYYY-MM-DD", domainerror.ErrCodeInvalidDateRange, err)
		return
	}

	input := recurringexpense.CreateRecurringExpenseInput{
		UserID:               userID,
		Description:          req.Description,
		Category:             req.Category,
		BaseAmount:           req.BaseAmount,
		Frequency:            entity.Frequency(req.Frequency),
		ExecutionDay:         req.ExecutionDay,
		StartDate:            startDate,
		RequiresConfirmation: req.RequiresConfirmation,
		PaymentMethod:        req.PaymentMethod,
		Notes:                req.Notes,
	}

	if req.EndDate != nil && *req.EndDate != "" {
		endDate, err := dto.ParseDate(*req.EndDate)
		if err != nil {
			badRequest(ctx, "Invalid end_date format. Use YYYY-MM-DD", domainerror.ErrCodeInvalidDateRange, err)
			return
		}
		input.EndDate = &endDate
	}

	if req.SupplierID != nil && *req.SupplierID != "" {
		id, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			badRequest(ctx, "Invalid supplier ID format", domainerror.ErrCodeMissingRecurringFields, err)
			return
		}
		input.SupplierID = &id
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCreateRecurringExpenseResponse(output))
}

// Get handles GET /recurring-expenses/:id requests.
func (c *RecurringExpenseController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseRecurringExpenseID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), recurringexpense.GetRecurringExpenseInput{
		RecurringExpenseID: id,
		UserID:             userID,
	})
	if err != nil {
		c.handleRecurringExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringExpenseResponse(output.RecurringExpense))
}

// Update handles PATCH /recurring-expenses/:id requests.
func (c *RecurringExpenseController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseRecurringExpenseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateRecurringExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", domainerror.ErrCodeMissingRecurringFields, err)
		return
	}

	input := recurringexpense.UpdateRecurringExpenseInput{
		RecurringExpenseID:   id,
		UserID:               userID,
		Description:          req.Description,
		Category:             req.Category,
		BaseAmount:           req.BaseAmount,
		ExecutionDay:         req.ExecutionDay,
		ClearEndDate:         req.ClearEndDate,
		Active:               req.Active,
		RequiresConfirmation: req.RequiresConfirmation,
		PaymentMethod:        req.PaymentMethod,
		Notes:                req.Notes,
		ClearSupplier:        req.ClearSupplier,
	}

	if req.Frequency != nil {
		frequency := entity.Frequency(*req.Frequency)
		input.Frequency = &frequency
	}

	if req.StartDate != nil {
		startDate, err := dto.ParseDate(*req.StartDate)
		if err != nil {
			badRequest(ctx, "Invalid start_date format. Use YYYY-MM-DD", domainerror.ErrCodeInvalidDateRange, err)
			return
		}
		input.StartDate = &startDate
	}

	if req.EndDate != nil && *req.EndDate != "" {
		endDate, err := dto.ParseDate(*req.EndDate)
		if err != nil {
			badRequest(ctx, "Invalid end_date format. Use YYYY-MM-DD", domainerror.ErrCodeInvalidDateRange, err)
			return
		}
		input.EndDate = &endDate
	}

	if req.SupplierID != nil && *req.SupplierID != "" {
		supplierID, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			badRequest(ctx, "Invalid supplier ID format", domainerror.ErrCodeMissingRecurringFields, err)
			return
		}
		input.SupplierID = &supplierID
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringExpenseResponse(output.RecurringExpense))
}

// Toggle handles PATCH /recurring-expenses/:id/toggle requests.
func (c *RecurringExpenseController) Toggle(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseRecurringExpenseID(ctx)
	if !ok {
		return
	}

	output, err := c.toggleUseCase.Execute(ctx.Request.Context(), recurringexpense.ToggleRecurringExpenseInput{
		RecurringExpenseID: id,
		UserID:             userID,
	})
	if err != nil {
		c.handleRecurringExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringExpenseResponse(output.RecurringExpense))
}

// Delete handles DELETE /recurring-expenses/:id requests.
func (c *RecurringExpenseController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseRecurringExpenseID(ctx)
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), recurringexpense.DeleteRecurringExpenseInput{
		RecurringExpenseID: id,
		UserID:             userID,
	})
	if err != nil {
		c.handleRecurringExpenseError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Generate handles POST /recurring-expenses/generate requests.
func (c *RecurringExpenseController) Generate(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.GenerateRecurringExpensesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(ctx, "Invalid request body", domainerror.ErrCodeMissingRecurringFields, err)
		return
	}

	input := recurringexpense.GenerateRecurringExpensesInput{UserID: userID}
	if req.AsOf != nil && *req.AsOf != "" {
		asOf, err := dto.ParseDate(*req.AsOf)
		if err != nil {
			badRequest(ctx, "Invalid as_of format. Use YYYY-MM-DD", domainerror.ErrCodeInvalidDateRange, err)
			return
		}
		// Noon keeps the calendar day stable in any business time zone
		asOf = asOf.Add(12 * time.Hour)
		input.AsOf = &asOf
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGenerateRecurringExpensesResponse(output))
}

// Confirm handles PUT /recurring-expenses/:id/confirm requests.
func (c *RecurringExpenseController) Confirm(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseRecurringExpenseID(ctx)
	if !ok {
		return
	}

	var req dto.ConfirmRecurringExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(ctx, "Invalid request body", domainerror.ErrCodeMissingRecurringFields, err)
		return
	}

	amount, err := dto.ParseAdjustedAmount(req.AdjustedAmount)
	if err != nil {
		badRequest(ctx, "adjusted_amount must be a number greater than zero", domainerror.ErrCodeInvalidAmount, err)
		return
	}

	input := recurringexpense.ConfirmRecurringExpenseInput{
		RecurringExpenseID: id,
		UserID:             userID,
		AdjustedAmount:     amount,
	}

	if req.OccurrenceDate != nil && *req.OccurrenceDate != "" {
		occurrenceDate, err := dto.ParseDate(*req.OccurrenceDate)
		if err != nil {
			badRequest(ctx, "Invalid occurrence_date format. Use YYYY-MM-DD", domainerror.ErrCodeMissingRecurringFields, err)
			return
		}
		input.OccurrenceDate = &occurrenceDate
	}

	output, err := c.confirmUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense))
}

// SuggestCategory handles POST /recurring-expenses/suggest-category requests.
func (c *RecurringExpenseController) SuggestCategory(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.SuggestCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", domainerror.ErrCodeInvalidDescription, err)
		return
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), recurringexpense.SuggestCategoryInput{
		UserID:      userID,
		Description: req.Description,
	})
	if err != nil {
		c.handleRecurringExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategorySuggestionResponse(output.Suggestion))
}

// handleRecurringExpenseError handles recurring expense errors and returns appropriate HTTP responses.
func (c *RecurringExpenseController) handleRecurringExpenseError(ctx *gin.Context, err error) {
	var recErr *domainerror.RecurringExpenseError
	if errors.As(err, &recErr) {
		statusCode := c.getStatusCodeForRecurringExpenseError(recErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecurringExpenseError maps recurring expense error codes to HTTP status codes.
func (c *RecurringExpenseController) getStatusCodeForRecurringExpenseError(code domainerror.RecurringExpenseErrorCode) int {
	switch code {
	case domainerror.ErrCodeRecurringExpenseNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedRecurringExpense:
		return http.StatusForbidden
	case domainerror.ErrCodeStaleConfirmation:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeInvalidFrequency,
		domainerror.ErrCodeInvalidExecutionDay,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeInvalidBaseAmount,
		domainerror.ErrCodeInvalidDescription,
		domainerror.ErrCodeMissingRecurringFields,
		domainerror.ErrCodeFutureAsOf:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseRecurringExpenseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid recurring expense ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
