// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/organized-life/backend/config"
	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/application/usecase/auth"
	"github.com/organized-life/backend/internal/application/usecase/budget"
	"github.com/organized-life/backend/internal/application/usecase/category"
	"github.com/organized-life/backend/internal/application/usecase/goal"
	"github.com/organized-life/backend/internal/application/usecase/report"
	"github.com/organized-life/backend/internal/application/usecase/transaction"
	"github.com/organized-life/backend/internal/infra/db"
	"github.com/organized-life/backend/internal/infra/server/router"
	"github.com/organized-life/backend/internal/integration/adapters"
	"github.com/organized-life/backend/internal/integration/email"
	"github.com/organized-life/backend/internal/integration/entrypoint/controller"
	"github.com/organized-life/backend/internal/integration/entrypoint/middleware"
	"github.com/organized-life/backend/internal/integration/persistence"
)

// limiterSweepInterval controls how often idle in-memory limiter state is dropped.
const limiterSweepInterval = 5 * time.Minute

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	Database *db.Database
	Redis    redis.UniversalClient // nil when Redis is not configured
	Router   *router.Router

	sweepers []func()
}

// Overrides replaces selected dependencies, mainly for tests.
type Overrides struct {
	Clock        adapter.Clock
	Notifier     adapter.Notifier
	TokenService adapter.TokenService
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case in-process fallbacks are used for
// goal locking and login throttling.
func NewInjector(cfg *config.Config, database *db.Database, redisClient redis.UniversalClient, overrides *Overrides) (*Injector, error) {
	if overrides == nil {
		overrides = &Overrides{}
	}
	gormDB := database.DB()

	// Create repositories
	userRepo := persistence.NewUserRepository(gormDB)
	tokenRepo := persistence.NewTokenRepository(gormDB)
	categoryRepo := persistence.NewCategoryRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	budgetRepo := persistence.NewBudgetRepository(gormDB)
	goalRepo := persistence.NewGoalRepository(gormDB)

	// Create adapters/services
	clock := overrides.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}
	passwordService := adapters.NewPasswordService(cfg.Security.BcryptCost)
	tokenService := overrides.TokenService
	if tokenService == nil {
		tokenService = adapters.NewTokenService(cfg.JWT, tokenRepo)
	}

	notifier := overrides.Notifier
	if notifier == nil {
		var err error
		notifier, err = email.NewNotifier(cfg.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to create notifier: %w", err)
		}
	}

	var goalLocker adapter.GoalLocker
	var attemptCounter middleware.AttemptCounter
	inj := &Injector{
		Config:   cfg,
		Database: database,
		Redis:    redisClient,
	}

	if redisClient != nil {
		goalLocker = adapters.NewRedisGoalLocker(redisClient, cfg.Goal)
		attemptCounter = middleware.NewRedisAttemptCounter(redisClient)
	} else {
		slog.Warn("Redis not configured, goal locks and login throttling are process-local")
		goalLocker = adapters.NewMemoryGoalLocker(cfg.Goal)
		memoryCounter := middleware.NewMemoryAttemptCounter()
		attemptCounter = memoryCounter
		inj.sweepers = append(inj.sweepers, memoryCounter.Cleanup)
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, clock)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo, transactionRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getSummaryUseCase := transaction.NewGetSummaryUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create budget use cases
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, transactionRepo, categoryRepo, clock)
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, clock)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)

	// Create goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo, clock)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, clock)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo, clock)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, goalLocker, clock)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
	addContributionUseCase := goal.NewAddContributionUseCase(goalRepo, userRepo, goalLocker, notifier, clock)
	listContributionsUseCase := goal.NewListContributionsUseCase(goalRepo)

	// Create report use cases
	generateReportUseCase := report.NewGenerateReportUseCase(transactionRepo, categoryRepo, clock)
	overviewUseCase := report.NewGetOverviewUseCase(transactionRepo, categoryRepo, budgetRepo, goalRepo, clock)

	// Create controllers
	checks := map[string]controller.HealthCheck{
		"database": database.Ping,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	controllers := router.Controllers{
		Health: controller.NewHealthController(checks),
		Auth: controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
		),
		Category: controller.NewCategoryController(
			listCategoriesUseCase,
			createCategoryUseCase,
			updateCategoryUseCase,
			deleteCategoryUseCase,
		),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			getSummaryUseCase,
			getTransactionUseCase,
			createTransactionUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
		),
		Budget: controller.NewBudgetController(
			listBudgetsUseCase,
			createBudgetUseCase,
			updateBudgetUseCase,
			deleteBudgetUseCase,
		),
		Goal: controller.NewGoalController(
			listGoalsUseCase,
			createGoalUseCase,
			getGoalUseCase,
			updateGoalUseCase,
			deleteGoalUseCase,
			addContributionUseCase,
			listContributionsUseCase,
		),
		Report: controller.NewReportController(
			generateReportUseCase,
			overviewUseCase,
		),
	}

	// Create middleware
	middlewares := router.Middlewares{
		Auth: middleware.NewAuthMiddleware(tokenService),
	}
	if cfg.RateLimit.Enabled {
		middlewares.LoginRateLimit = middleware.NewRateLimiter(
			attemptCounter,
			cfg.RateLimit.LoginMaxAttempts,
			cfg.RateLimit.LoginWindow,
		)
		apiRateLimiter := middleware.NewAPIRateLimiter(cfg.RateLimit.APIRequestsPerSec, cfg.RateLimit.APIBurst)
		middlewares.APIRateLimit = apiRateLimiter
		inj.sweepers = append(inj.sweepers, func() { apiRateLimiter.Cleanup(limiterSweepInterval) })
	}

	inj.Router = router.NewRouter(controllers, middlewares)
	return inj, nil
}

// RunMaintenance periodically drops idle in-memory limiter state until ctx is done.
func (i *Injector) RunMaintenance(ctx context.Context) {
	if len(i.sweepers) == 0 {
		return
	}

	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, sweep := range i.sweepers {
				sweep()
			}
		}
	}
}
