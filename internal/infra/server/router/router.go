// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/retail-backoffice/backend/internal/integration/entrypoint/controller"
	"github.com/retail-backoffice/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                     *gin.Engine
	healthController           *controller.HealthController
	recurringExpenseController *controller.RecurringExpenseController
	expenseController          *controller.ExpenseController
	sweepRateLimiter           *middleware.RateLimiter
	authMiddleware             *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	recurringExpenseController *controller.RecurringExpenseController,
	expenseController *controller.ExpenseController,
	sweepRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:           healthController,
		recurringExpenseController: recurringExpenseController,
		expenseController:          expenseController,
		sweepRateLimiter:           sweepRateLimiter,
		authMiddleware:             authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create engine with recovery and, outside tests, request logging
	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	if environment != "test" {
		r.engine.Use(gin.Logger())
	}

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	// Every API route requires a bearer token
	v1.Use(r.authMiddleware.Authenticate())

	// Recurring expense routes
	if r.recurringExpenseController != nil {
		recurring := v1.Group("/recurring-expenses")
		{
			recurring.GET("", r.recurringExpenseController.List)
			recurring.POST("", r.recurringExpenseController.Create)
			recurring.POST("/generate", r.sweepRateLimiter.Middleware(), r.recurringExpenseController.Generate)
			recurring.POST("/suggest-category", r.recurringExpenseController.SuggestCategory)
			recurring.GET("/:id", r.recurringExpenseController.Get)
			recurring.PATCH("/:id", r.recurringExpenseController.Update)
			recurring.DELETE("/:id", r.recurringExpenseController.Delete)
			recurring.PATCH("/:id/toggle", r.recurringExpenseController.Toggle)
			recurring.PUT("/:id/confirm", r.sweepRateLimiter.Middleware(), r.recurringExpenseController.Confirm)
		}
	}

	// Expense ledger routes
	if r.expenseController != nil {
		expenses := v1.Group("/expenses")
		{
			expenses.GET("", r.expenseController.List)
		}
	}
}
