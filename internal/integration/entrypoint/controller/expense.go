// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retail-backoffice/backend/internal/application/usecase/expense"
	"github.com/retail-backoffice/backend/internal/domain/entity"
	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
	"github.com/retail-backoffice/backend/internal/integration/entrypoint/dto"
)

// ExpenseController handles expense ledger endpoints.
type ExpenseController struct {
	listUseCase *expense.ListExpensesUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(listUseCase *expense.ListExpensesUseCase) *ExpenseController {
	return &ExpenseController{
		listUseCase: listUseCase,
	}
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := expense.ListExpensesInput{UserID: userID}

	if sourceStr := ctx.Query("source"); sourceStr != "" {
		source := entity.ExpenseSource(sourceStr)
		input.Source = &source
	}
	if startDateStr := ctx.Query("start_date"); startDateStr != "" {
		startDate, err := dto.ParseDate(startDateStr)
		if err != nil {
			badRequest(ctx, "Invalid start_date format. Use YYYY-MM-DD", domainerror.ErrCodeInvalidExpenseDateRange, err)
			return
		}
		input.StartDate = &startDate
	}
	if endDateStr := ctx.Query("end_date"); endDateStr != "" {
		endDate, err := dto.ParseDate(endDateStr)
		if err != nil {
			badRequest(ctx, "Invalid end_date format. Use YYYY-MM-DD", domainerror.ErrCodeInvalidExpenseDateRange, err)
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		var expErr *domainerror.ExpenseError
		if errors.As(err, &expErr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: expErr.Message,
				Code:  string(expErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve expenses",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output))
}
