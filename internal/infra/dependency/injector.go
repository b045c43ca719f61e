// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/retail-backoffice/backend/config"
	"github.com/retail-backoffice/backend/internal/application/adapter"
	"github.com/retail-backoffice/backend/internal/application/usecase/expense"
	recurringexpense "github.com/retail-backoffice/backend/internal/application/usecase/recurring_expense"
	"github.com/retail-backoffice/backend/internal/infra/server/router"
	"github.com/retail-backoffice/backend/internal/integration/adapters"
	"github.com/retail-backoffice/backend/internal/integration/cache"
	"github.com/retail-backoffice/backend/internal/integration/entrypoint/controller"
	"github.com/retail-backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/retail-backoffice/backend/internal/integration/events"
	"github.com/retail-backoffice/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router
}

// Options carries optional collaborators. Zero values select the defaults.
type Options struct {
	Redis     *redis.Client                 // nil disables the shared rate limit store
	Publisher adapter.ExpenseEventPublisher // nil drops events
	Clock     adapter.Clock                 // nil uses the system clock
	AI        adapter.AICategoryService     // nil builds Gemini from config
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	if opts.Publisher == nil {
		opts.Publisher = events.NoopPublisher{}
	}
	if opts.Clock == nil {
		opts.Clock = adapters.NewSystemClock()
	}
	if opts.AI == nil {
		opts.AI = adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	}
	location := cfg.Recurring.Location()

	// Create repositories
	recurringRepo := persistence.NewRecurringExpenseRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	ruleRepo := persistence.NewCategoryRuleRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	suggester := adapters.NewCategorySuggester(ruleRepo, expenseRepo, opts.AI)

	// Create recurring expense use cases
	createUseCase := recurringexpense.NewCreateRecurringExpenseUseCase(recurringRepo, suggester)
	getUseCase := recurringexpense.NewGetRecurringExpenseUseCase(recurringRepo)
	listUseCase := recurringexpense.NewListRecurringExpensesUseCase(recurringRepo)
	updateUseCase := recurringexpense.NewUpdateRecurringExpenseUseCase(recurringRepo)
	toggleUseCase := recurringexpense.NewToggleRecurringExpenseUseCase(recurringRepo)
	deleteUseCase := recurringexpense.NewDeleteRecurringExpenseUseCase(recurringRepo)
	generateUseCase := recurringexpense.NewGenerateRecurringExpensesUseCase(recurringRepo, opts.Publisher, opts.Clock, location)
	confirmUseCase := recurringexpense.NewConfirmRecurringExpenseUseCase(recurringRepo, opts.Publisher, opts.Clock, location)
	suggestUseCase := recurringexpense.NewSuggestCategoryUseCase(suggester)

	// Create expense use cases
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		redisHealthChecker(opts.Redis),
	)

	recurringExpenseController := controller.NewRecurringExpenseController(
		createUseCase,
		getUseCase,
		listUseCase,
		updateUseCase,
		toggleUseCase,
		deleteUseCase,
		generateUseCase,
		confirmUseCase,
		suggestUseCase,
	)

	expenseController := controller.NewExpenseController(listExpensesUseCase)

	// Create middleware
	var rateLimitStore adapter.RateLimitStore
	if opts.Redis != nil {
		rateLimitStore = cache.NewRedisRateLimitStore(opts.Redis, cfg.Recurring.RateLimit, cfg.Recurring.RateLimitWindow)
	}
	sweepRateLimiter := middleware.NewRateLimiter("recurring", rateLimitStore, cfg.Recurring.RateLimit, cfg.Recurring.RateLimitWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(healthController, recurringExpenseController, expenseController, sweepRateLimiter, authMiddleware)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  opts.Redis,
		Router: r,
	}
}

func redisHealthChecker(client *redis.Client) func() bool {
	if client == nil {
		return nil
	}
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}
}
