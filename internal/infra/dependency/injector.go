// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/shared-expenses/backend/config"
	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/application/usecase/auth"
	"github.com/shared-expenses/backend/internal/application/usecase/category"
	"github.com/shared-expenses/backend/internal/application/usecase/household"
	"github.com/shared-expenses/backend/internal/application/usecase/lineitem"
	"github.com/shared-expenses/backend/internal/application/usecase/purchase"
	"github.com/shared-expenses/backend/internal/application/usecase/report"
	"github.com/shared-expenses/backend/internal/application/usecase/template"
	"github.com/shared-expenses/backend/internal/infra/server/router"
	"github.com/shared-expenses/backend/internal/integration/adapters"
	"github.com/shared-expenses/backend/internal/integration/cache"
	"github.com/shared-expenses/backend/internal/integration/email"
	"github.com/shared-expenses/backend/internal/integration/email/templates"
	"github.com/shared-expenses/backend/internal/integration/entrypoint/controller"
	"github.com/shared-expenses/backend/internal/integration/entrypoint/middleware"
	"github.com/shared-expenses/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The redis client is optional; without it summary reports skip caching.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	householdRepo := persistence.NewHouseholdRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	templateRepo := persistence.NewTemplateRepository(db)
	purchaseRepo := persistence.NewPurchaseRepository(db)
	lineItemRepo := persistence.NewLineItemRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	emailService := email.NewService(emailQueueRepo)

	var reportCache adapter.ReportCache
	if redisClient != nil && cfg.Report.CacheEnabled {
		reportCache = cache.NewReportCache(redisClient)
	}

	// Middleware
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, loginRateLimiter)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getCurrentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)
	changePasswordUseCase := auth.NewChangePasswordUseCase(userRepo, passwordService)

	// Household use cases
	createHouseholdUseCase := household.NewCreateHouseholdUseCase(householdRepo, categoryRepo)
	getHouseholdUseCase := household.NewGetHouseholdUseCase(householdRepo)
	inviteMemberUseCase := household.NewInviteMemberUseCase(householdRepo, userRepo, emailService)
	updateMemberUseCase := household.NewUpdateMemberUseCase(householdRepo)
	deactivateMemberUseCase := household.NewDeactivateMemberUseCase(householdRepo)

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo, householdRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, householdRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, householdRepo)
	createSubcategoryUseCase := category.NewCreateSubcategoryUseCase(categoryRepo, householdRepo)
	updateSubcategoryUseCase := category.NewUpdateSubcategoryUseCase(categoryRepo, householdRepo)

	// Template use cases
	createTemplateUseCase := template.NewCreateTemplateUseCase(templateRepo, categoryRepo, householdRepo)
	listTemplatesUseCase := template.NewListTemplatesUseCase(templateRepo, householdRepo)
	updateTemplateUseCase := template.NewUpdateTemplateUseCase(templateRepo, categoryRepo, householdRepo)
	deleteTemplateUseCase := template.NewDeleteTemplateUseCase(templateRepo, householdRepo)
	replaceRulesUseCase := template.NewReplaceRulesUseCase(templateRepo, householdRepo)
	generatePeriodUseCase := template.NewGeneratePeriodUseCase(templateRepo, lineItemRepo, householdRepo)

	// Purchase use cases
	createCardUseCase := purchase.NewCreateCardUseCase(purchaseRepo, householdRepo)
	listCardsUseCase := purchase.NewListCardsUseCase(purchaseRepo, householdRepo)
	updateCardUseCase := purchase.NewUpdateCardUseCase(purchaseRepo, householdRepo)
	createPurchaseUseCase := purchase.NewCreatePurchaseUseCase(purchaseRepo, lineItemRepo, categoryRepo, householdRepo)
	listPurchasesUseCase := purchase.NewListPurchasesUseCase(purchaseRepo, householdRepo)

	// Line item use cases
	createLineItemUseCase := lineitem.NewCreateLineItemUseCase(lineItemRepo, categoryRepo, householdRepo)
	listLineItemsUseCase := lineitem.NewListLineItemsUseCase(lineItemRepo, householdRepo)
	getLineItemUseCase := lineitem.NewGetLineItemUseCase(lineItemRepo, householdRepo)
	updateLineItemUseCase := lineitem.NewUpdateLineItemUseCase(lineItemRepo, templateRepo, categoryRepo, householdRepo)
	settleLineItemUseCase := lineitem.NewSettleLineItemUseCase(lineItemRepo, householdRepo)
	cancelLineItemUseCase := lineitem.NewCancelLineItemUseCase(lineItemRepo, householdRepo)

	// Report use cases
	getSummaryUseCase := report.NewGetSummaryUseCase(lineItemRepo, householdRepo, reportCache)

	// Controllers
	var cacheHealthChecker func() bool
	if redisClient != nil {
		cacheHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	}
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheHealthChecker)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(
		getCurrentUserUseCase,
		changePasswordUseCase,
	)

	householdController := controller.NewHouseholdController(
		createHouseholdUseCase,
		getHouseholdUseCase,
		inviteMemberUseCase,
		updateMemberUseCase,
		deactivateMemberUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		createSubcategoryUseCase,
		updateSubcategoryUseCase,
	)

	templateController := controller.NewTemplateController(
		createTemplateUseCase,
		listTemplatesUseCase,
		updateTemplateUseCase,
		deleteTemplateUseCase,
		replaceRulesUseCase,
		generatePeriodUseCase,
	)

	purchaseController := controller.NewPurchaseController(
		createCardUseCase,
		listCardsUseCase,
		updateCardUseCase,
		createPurchaseUseCase,
		listPurchasesUseCase,
	)

	lineItemController := controller.NewLineItemController(
		createLineItemUseCase,
		listLineItemsUseCase,
		getLineItemUseCase,
		updateLineItemUseCase,
		settleLineItemUseCase,
		cancelLineItemUseCase,
	)

	reportController := controller.NewReportController(getSummaryUseCase)

	// Email worker
	var emailWorker *email.Worker
	if cfg.Email.WorkerEnabled {
		renderer, err := templates.NewRenderer()
		if err != nil {
			slog.Error("Failed to load email templates, worker disabled", "error", err)
		} else {
			sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
			emailWorker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
				PollInterval: cfg.Email.PollInterval,
				BatchSize:    cfg.Email.BatchSize,
			})
		}
	}

	r := router.NewRouter(
		healthController,
		authController,
		userController,
		householdController,
		categoryController,
		templateController,
		purchaseController,
		lineItemController,
		reportController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: emailWorker,
	}
}
