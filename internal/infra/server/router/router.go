// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/agency-crm/backend/internal/integration/entrypoint/controller"
	"github.com/agency-crm/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups the business controllers mounted under /api/v1.
type Controllers struct {
	Client      *controller.ClientController
	Project     *controller.ProjectController
	Task        *controller.TaskController
	Invoice     *controller.InvoiceController
	Payment     *controller.PaymentController
	Recurring   *controller.RecurringController
	Budget      *controller.BudgetController
	Transaction *controller.TransactionController
	Category    *controller.CategoryController
	Report      *controller.ReportController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	healthController *controller.HealthController
	controllers      Controllers
	sendRateLimiter  *middleware.RateLimiter
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	controllers Controllers,
	sendRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController: healthController,
		controllers:      controllers,
		sendRateLimiter:  sendRateLimiter,
		authMiddleware:   authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the business routes. Every one of them requires a token.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())

	c := r.controllers

	clients := v1.Group("/clients")
	{
		clients.GET("", c.Client.List)
		clients.POST("", c.Client.Create)
		clients.GET("/:id", c.Client.Get)
		clients.PATCH("/:id", c.Client.Update)
		clients.DELETE("/:id", c.Client.Delete)
	}

	projects := v1.Group("/projects")
	{
		projects.GET("", c.Project.List)
		projects.POST("", c.Project.Create)
		projects.GET("/:id", c.Project.Get)
		projects.PATCH("/:id", c.Project.Update)

		projects.GET("/:id/tasks", c.Task.List)
		projects.POST("/:id/tasks", c.Task.Create)
		projects.PATCH("/:id/tasks/:taskId", c.Task.Update)
		projects.GET("/:id/recurring-tasks", c.Task.ListRecurring)
		projects.POST("/:id/recurring-tasks", c.Task.CreateRecurring)

		projects.GET("/:id/budget", c.Budget.Get)
		projects.POST("/:id/budget", c.Budget.Upsert)
		projects.GET("/:id/budget/categories", c.Budget.ListCategories)
		projects.POST("/:id/budget/categories", c.Budget.CreateCategory)
		projects.GET("/:id/budget/expenses", c.Budget.ListExpenses)
		projects.POST("/:id/budget/expenses", c.Budget.CreateExpense)
	}

	invoices := v1.Group("/invoices")
	{
		invoices.GET("", c.Invoice.List)
		invoices.POST("", c.Invoice.Create)
		invoices.GET("/:id", c.Invoice.Get)
		invoices.PUT("/:id", c.Invoice.Update)
		invoices.DELETE("/:id", c.Invoice.Delete)
		invoices.POST("/:id/send", r.sendRateLimiter.Middleware(), c.Invoice.Send)
		invoices.POST("/:id/view", c.Invoice.MarkViewed)
		invoices.POST("/:id/cancel", c.Invoice.Cancel)
		invoices.GET("/:id/pdf", c.Invoice.PDF)
		invoices.GET("/:id/payments", c.Payment.List)
		invoices.POST("/:id/payments", c.Payment.Add)
	}

	recurring := v1.Group("/recurring-invoices")
	{
		recurring.GET("", c.Recurring.List)
		recurring.POST("", c.Recurring.Create)
		recurring.POST("/generate", c.Recurring.Generate)
		recurring.GET("/:id", c.Recurring.Get)
		recurring.PUT("/:id", c.Recurring.Update)
		recurring.DELETE("/:id", c.Recurring.Delete)
	}

	transactions := v1.Group("/transactions")
	{
		transactions.GET("", c.Transaction.List)
		transactions.POST("", c.Transaction.Create)
		transactions.GET("/summary", c.Transaction.Summary)
		transactions.GET("/categories", c.Category.List)
		transactions.POST("/categories", c.Category.Create)
		transactions.DELETE("/categories/:id", c.Category.Delete)
		transactions.POST("/categories/suggest", r.sendRateLimiter.Middleware(), c.Category.Suggest)
		transactions.GET("/:id", c.Transaction.Get)
		transactions.PATCH("/:id", c.Transaction.Update)
		transactions.DELETE("/:id", c.Transaction.Delete)
	}

	v1.GET("/reports/financial", c.Report.Financial)
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
