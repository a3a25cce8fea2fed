// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/organized-life/backend/internal/integration/entrypoint/controller"
	"github.com/organized-life/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups every HTTP controller the router mounts.
// A nil controller leaves its routes unregistered.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	Category    *controller.CategoryController
	Transaction *controller.TransactionController
	Budget      *controller.BudgetController
	Goal        *controller.GoalController
	Report      *controller.ReportController
}

// Middlewares groups the middleware the router applies.
type Middlewares struct {
	Auth           *middleware.AuthMiddleware
	LoginRateLimit *middleware.RateLimiter    // Optional
	APIRateLimit   *middleware.APIRateLimiter // Optional
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine      *gin.Engine
	controllers Controllers
	middlewares Middlewares
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(controllers Controllers, middlewares Middlewares) *Router {
	return &Router{
		controllers: controllers,
		middlewares: middlewares,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	// Logger and recovery
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	if r.controllers.Health != nil {
		r.engine.GET("/health", r.controllers.Health.Check)
	}
}

// protected returns the middleware chain for authenticated routes.
func (r *Router) protected() []gin.HandlerFunc {
	chain := []gin.HandlerFunc{r.middlewares.Auth.Authenticate()}
	if r.middlewares.APIRateLimit != nil {
		chain = append(chain, r.middlewares.APIRateLimit.Middleware())
	}
	return chain
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if c := r.controllers.Auth; c != nil {
		login := []gin.HandlerFunc{c.Login}
		if r.middlewares.LoginRateLimit != nil {
			login = append([]gin.HandlerFunc{r.middlewares.LoginRateLimit.Middleware()}, login...)
		}

		auth := v1.Group("/auth")
		{
			auth.POST("/register", c.Register)
			auth.POST("/login", login...)
			auth.POST("/refresh", c.RefreshToken)
			auth.POST("/logout", c.Logout)
		}
	}

	if r.middlewares.Auth == nil {
		return
	}

	if c := r.controllers.Category; c != nil {
		categories := v1.Group("/categories", r.protected()...)
		{
			categories.GET("", c.List)
			categories.POST("", c.Create)
			categories.PATCH("/:id", c.Update)
			categories.DELETE("/:id", c.Delete)
		}
	}

	if c := r.controllers.Transaction; c != nil {
		transactions := v1.Group("/transactions", r.protected()...)
		{
			transactions.GET("", c.List)
			transactions.GET("/summary", c.Summary)
			transactions.POST("", c.Create)
			transactions.GET("/:id", c.Get)
			transactions.PATCH("/:id", c.Update)
			transactions.DELETE("/:id", c.Delete)
		}
	}

	if c := r.controllers.Budget; c != nil {
		budgets := v1.Group("/budgets", r.protected()...)
		{
			budgets.GET("", c.List)
			budgets.POST("", c.Create)
			budgets.PATCH("/:id", c.Update)
			budgets.DELETE("/:id", c.Delete)
		}
	}

	if c := r.controllers.Goal; c != nil {
		goals := v1.Group("/goals", r.protected()...)
		{
			goals.GET("", c.List)
			goals.POST("", c.Create)
			goals.GET("/:id", c.Get)
			goals.PATCH("/:id", c.Update)
			goals.DELETE("/:id", c.Delete)
			goals.GET("/:id/contributions", c.ListContributions)
			goals.POST("/:id/contributions", c.AddContribution)
		}
	}

	if c := r.controllers.Report; c != nil {
		v1.GET("/reports", append(r.protected(), c.Generate)...)
		v1.GET("/dashboard/overview", append(r.protected(), c.Overview)...)
	}
}
