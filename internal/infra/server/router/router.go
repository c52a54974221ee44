// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/shared-expenses/backend/internal/integration/entrypoint/controller"
	"github.com/shared-expenses/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	userController      *controller.UserController
	householdController *controller.HouseholdController
	categoryController  *controller.CategoryController
	templateController  *controller.TemplateController
	purchaseController  *controller.PurchaseController
	lineItemController  *controller.LineItemController
	reportController    *controller.ReportController
	loginRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	householdController *controller.HouseholdController,
	categoryController *controller.CategoryController,
	templateController *controller.TemplateController,
	purchaseController *controller.PurchaseController,
	lineItemController *controller.LineItemController,
	reportController *controller.ReportController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		authController:      authController,
		userController:      userController,
		householdController: householdController,
		categoryController:  categoryController,
		templateController:  templateController,
		purchaseController:  purchaseController,
		lineItemController:  lineItemController,
		reportController:    reportController,
		loginRateLimiter:    loginRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

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
	{
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		if r.authMiddleware == nil {
			return
		}

		if r.userController != nil {
			users := v1.Group("/users")
			users.Use(r.authMiddleware.Authenticate())
			{
				users.GET("/me", r.userController.Me)
				users.PUT("/me/password", r.userController.ChangePassword)
			}
		}

		if r.householdController != nil {
			households := v1.Group("/households")
			households.Use(r.authMiddleware.Authenticate())
			{
				households.POST("", r.householdController.Create)
				households.GET("/me", r.householdController.GetMine)
				households.POST("/:householdId/members", r.householdController.InviteMember)
				households.PATCH("/:householdId/members/:memberId", r.householdController.UpdateMember)
				households.DELETE("/:householdId/members/:memberId", r.householdController.DeactivateMember)
			}
		}

		// All remaining resources are scoped to a household.
		scoped := v1.Group("/households/:householdId")
		scoped.Use(r.authMiddleware.Authenticate())
		{
			if r.categoryController != nil {
				scoped.GET("/categories", r.categoryController.List)
				scoped.POST("/categories", r.categoryController.Create)
				scoped.PATCH("/categories/:categoryId", r.categoryController.Update)
				scoped.POST("/categories/:categoryId/subcategories", r.categoryController.CreateSubcategory)
				scoped.PATCH("/subcategories/:subcategoryId", r.categoryController.UpdateSubcategory)
			}

			if r.templateController != nil {
				scoped.GET("/templates", r.templateController.List)
				scoped.POST("/templates", r.templateController.Create)
				scoped.POST("/templates/generate", r.templateController.GeneratePeriod)
				scoped.PATCH("/templates/:templateId", r.templateController.Update)
				scoped.DELETE("/templates/:templateId", r.templateController.Delete)
				scoped.PUT("/templates/:templateId/rules", r.templateController.ReplaceRules)
			}

			if r.purchaseController != nil {
				scoped.GET("/cards", r.purchaseController.ListCards)
				scoped.POST("/cards", r.purchaseController.CreateCard)
				scoped.PATCH("/cards/:cardId", r.purchaseController.UpdateCard)
				scoped.GET("/purchases", r.purchaseController.ListPurchases)
				scoped.POST("/purchases", r.purchaseController.CreatePurchase)
			}

			if r.lineItemController != nil {
				scoped.GET("/line-items", r.lineItemController.List)
				scoped.POST("/line-items", r.lineItemController.Create)
				scoped.GET("/line-items/:itemId", r.lineItemController.Get)
				scoped.PATCH("/line-items/:itemId", r.lineItemController.Update)
				scoped.POST("/line-items/:itemId/settle", r.lineItemController.Settle)
				scoped.POST("/line-items/:itemId/cancel", r.lineItemController.Cancel)
			}

			if r.reportController != nil {
				scoped.GET("/reports/summary", r.reportController.GetSummary)
			}
		}
	}
}
