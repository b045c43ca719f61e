// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
	"github.com/retail-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/retail-backoffice/backend/internal/integration/entrypoint/middleware"
)

// requireUser returns the authenticated user or writes a 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// badRequest writes a 400 with the given code and the parse error as details.
func badRequest[C ~string](ctx *gin.Context, message string, code C, err error) {
	response := dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	}
	if err != nil {
		response.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, response)
}
