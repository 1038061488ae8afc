// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/agency-crm/backend/config"
	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/application/usecase/budget"
	"github.com/agency-crm/backend/internal/application/usecase/category"
	"github.com/agency-crm/backend/internal/application/usecase/client"
	"github.com/agency-crm/backend/internal/application/usecase/invoice"
	"github.com/agency-crm/backend/internal/application/usecase/payment"
	"github.com/agency-crm/backend/internal/application/usecase/project"
	"github.com/agency-crm/backend/internal/application/usecase/recurring"
	"github.com/agency-crm/backend/internal/application/usecase/report"
	"github.com/agency-crm/backend/internal/application/usecase/task"
	"github.com/agency-crm/backend/internal/application/usecase/transaction"
	database "github.com/agency-crm/backend/internal/infra/db"
	"github.com/agency-crm/backend/internal/infra/server/router"
	"github.com/agency-crm/backend/internal/integration/adapters"
	"github.com/agency-crm/backend/internal/integration/email"
	"github.com/agency-crm/backend/internal/integration/email/templates"
	"github.com/agency-crm/backend/internal/integration/entrypoint/controller"
	"github.com/agency-crm/backend/internal/integration/entrypoint/middleware"
	"github.com/agency-crm/backend/internal/integration/persistence"
	"github.com/agency-crm/backend/internal/integration/scheduler"
)

// Infrastructure carries the opened connections the application is built on.
type Infrastructure struct {
	DB  *gorm.DB
	SQL *sqlx.DB
	// Redis is optional. Without it the scheduler lock is process-local.
	Redis *redis.Client
	// EmailSender overrides the Resend client, mainly for tests.
	EmailSender adapter.EmailSender
	// DatabaseHealth reports database reachability for /health.
	DatabaseHealth controller.HealthChecker
}

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	EmailWorker  *email.Worker
	Scheduler    *scheduler.Scheduler
	RateLimiter  *middleware.RateLimiter
	TokenService adapter.TokenService
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, infra Infrastructure) (*Injector, error) {
	db := infra.DB

	// Create repositories
	clientRepo := persistence.NewClientRepository(db)
	projectRepo := persistence.NewProjectRepository(db)
	taskRepo := persistence.NewTaskRepository(db)
	recurringTaskRepo := persistence.NewRecurringTaskRepository(db)
	invoiceRepo := persistence.NewInvoiceRepository(db)
	templateRepo := persistence.NewRecurringInvoiceRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)
	reportRepo := persistence.NewReportRepository(infra.SQL)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	pdfRenderer := adapters.NewPDFRenderer(cfg.Invoice.IssuerName)
	gemini := adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	// Create client and project use cases
	listClientsUseCase := client.NewListClientsUseCase(clientRepo)
	createClientUseCase := client.NewCreateClientUseCase(clientRepo)
	getClientUseCase := client.NewGetClientUseCase(clientRepo)
	updateClientUseCase := client.NewUpdateClientUseCase(clientRepo)
	deleteClientUseCase := client.NewDeleteClientUseCase(clientRepo, invoiceRepo)

	listProjectsUseCase := project.NewListProjectsUseCase(projectRepo)
	createProjectUseCase := project.NewCreateProjectUseCase(projectRepo, clientRepo)
	getProjectUseCase := project.NewGetProjectUseCase(projectRepo)
	updateProjectUseCase := project.NewUpdateProjectUseCase(projectRepo, clientRepo)

	// Create task use cases
	listTasksUseCase := task.NewListTasksUseCase(taskRepo, projectRepo)
	createTaskUseCase := task.NewCreateTaskUseCase(taskRepo, projectRepo)
	updateTaskUseCase := task.NewUpdateTaskUseCase(taskRepo)
	createRecurringTaskUseCase := task.NewCreateRecurringTaskUseCase(recurringTaskRepo, projectRepo)
	listRecurringTasksUseCase := task.NewListRecurringTasksUseCase(recurringTaskRepo, projectRepo)

	// Create invoice and payment use cases
	listInvoicesUseCase := invoice.NewListInvoicesUseCase(invoiceRepo)
	createInvoiceUseCase := invoice.NewCreateInvoiceUseCase(invoiceRepo, clientRepo, projectRepo)
	getInvoiceUseCase := invoice.NewGetInvoiceUseCase(invoiceRepo)
	updateInvoiceUseCase := invoice.NewUpdateInvoiceUseCase(invoiceRepo, clientRepo, projectRepo)
	deleteInvoiceUseCase := invoice.NewDeleteInvoiceUseCase(invoiceRepo)
	sendInvoiceUseCase := invoice.NewSendInvoiceUseCase(invoiceRepo, clientRepo, emailService)
	markViewedUseCase := invoice.NewMarkViewedUseCase(invoiceRepo)
	cancelInvoiceUseCase := invoice.NewCancelInvoiceUseCase(invoiceRepo)
	renderPDFUseCase := invoice.NewRenderPDFUseCase(invoiceRepo, clientRepo, pdfRenderer)
	markOverdueUseCase := invoice.NewMarkOverdueUseCase(invoiceRepo, cfg.Scheduler.OverdueBatch)

	listPaymentsUseCase := payment.NewListPaymentsUseCase(invoiceRepo)
	addPaymentUseCase := payment.NewAddPaymentUseCase(invoiceRepo, clientRepo, emailService)

	// Create recurring use cases
	listTemplatesUseCase := recurring.NewListTemplatesUseCase(templateRepo)
	createTemplateUseCase := recurring.NewCreateTemplateUseCase(templateRepo, clientRepo, projectRepo)
	getTemplateUseCase := recurring.NewGetTemplateUseCase(templateRepo)
	updateTemplateUseCase := recurring.NewUpdateTemplateUseCase(templateRepo, clientRepo, projectRepo)
	deleteTemplateUseCase := recurring.NewDeleteTemplateUseCase(templateRepo)
	generateDueUseCase := recurring.NewGenerateDueUseCase(templateRepo, recurringTaskRepo, sendInvoiceUseCase, cfg.Scheduler.MaxCatchUp)

	// Create budget use cases
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo, projectRepo, reportRepo)
	upsertBudgetUseCase := budget.NewUpsertBudgetUseCase(budgetRepo, projectRepo)
	createBudgetCategoryUseCase := budget.NewCreateCategoryUseCase(budgetRepo, projectRepo)
	listBudgetCategoriesUseCase := budget.NewListCategoriesUseCase(budgetRepo, projectRepo)
	createExpenseUseCase := budget.NewCreateExpenseUseCase(budgetRepo, projectRepo)
	listExpensesUseCase := budget.NewListExpensesUseCase(budgetRepo, projectRepo)

	// Create transaction, category and report use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, clientRepo, projectRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, clientRepo, projectRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	suggestCategoriesUseCase := transaction.NewSuggestCategoriesUseCase(transactionRepo, categoryRepo, gemini)

	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	transactionSummaryUseCase := report.NewGetTransactionSummaryUseCase(reportRepo)
	financialReportUseCase := report.NewGetFinancialReportUseCase(reportRepo)

	// Create controllers
	var cacheHealth controller.HealthChecker
	if infra.Redis != nil {
		cacheHealth = database.RedisHealthCheck(infra.Redis)
	}
	healthController := controller.NewHealthController(infra.DatabaseHealth, cacheHealth)

	controllers := router.Controllers{
		Client: controller.NewClientController(
			listClientsUseCase,
			createClientUseCase,
			getClientUseCase,
			updateClientUseCase,
			deleteClientUseCase,
		),
		Project: controller.NewProjectController(
			listProjectsUseCase,
			createProjectUseCase,
			getProjectUseCase,
			updateProjectUseCase,
		),
		Task: controller.NewTaskController(
			listTasksUseCase,
			createTaskUseCase,
			updateTaskUseCase,
			createRecurringTaskUseCase,
			listRecurringTasksUseCase,
		),
		Invoice: controller.NewInvoiceController(
			listInvoicesUseCase,
			createInvoiceUseCase,
			getInvoiceUseCase,
			updateInvoiceUseCase,
			deleteInvoiceUseCase,
			sendInvoiceUseCase,
			markViewedUseCase,
			cancelInvoiceUseCase,
			renderPDFUseCase,
		),
		Payment: controller.NewPaymentController(listPaymentsUseCase, addPaymentUseCase),
		Recurring: controller.NewRecurringController(
			listTemplatesUseCase,
			createTemplateUseCase,
			getTemplateUseCase,
			updateTemplateUseCase,
			deleteTemplateUseCase,
			generateDueUseCase,
		),
		Budget: controller.NewBudgetController(
			getBudgetUseCase,
			upsertBudgetUseCase,
			createBudgetCategoryUseCase,
			listBudgetCategoriesUseCase,
			createExpenseUseCase,
			listExpensesUseCase,
		),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			createTransactionUseCase,
			getTransactionUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
			transactionSummaryUseCase,
		),
		Category: controller.NewCategoryController(
			listCategoriesUseCase,
			createCategoryUseCase,
			deleteCategoryUseCase,
			suggestCategoriesUseCase,
		),
		Report: controller.NewReportController(financialReportUseCase),
	}

	// Create middleware
	sendRateLimiter := middleware.NewRateLimiter(cfg.Invoice.SendRateLimit, cfg.Invoice.SendRateInterval)
	// Send limits are off in test environments
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		sendRateLimiter.Disable()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(healthController, controllers, sendRateLimiter, authMiddleware)

	// Email delivery
	sender := infra.EmailSender
	if sender == nil {
		if cfg.Email.ResendAPIKey == "" {
			slog.Warn("RESEND_API_KEY not set, emails are recorded but not delivered")
			sender = email.NewMockEmailSender()
		} else {
			sender = email.NewResendClient(email.ResendConfig{
				APIKey:    cfg.Email.ResendAPIKey,
				FromName:  cfg.Email.FromName,
				FromEmail: cfg.Email.FromEmail,
				ReplyTo:   cfg.Email.ReplyTo,
			})
		}
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	worker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	}).WithInvoiceDocuments(invoiceRepo, clientRepo, pdfRenderer)

	// Scheduled jobs
	var locker adapter.Locker
	if infra.Redis != nil {
		locker = adapters.NewRedisLocker(infra.Redis)
	} else {
		locker = adapters.NewLocalLocker()
	}
	jobs := scheduler.New(locker, cfg.Scheduler.LockTTL)
	if err := jobs.Register(scheduler.JobRecurringGeneration, cfg.Scheduler.RecurringSpec, scheduler.RecurringGeneration(generateDueUseCase)); err != nil {
		return nil, err
	}
	if err := jobs.Register(scheduler.JobOverdueSweep, cfg.Scheduler.OverdueSpec, scheduler.OverdueSweep(markOverdueUseCase)); err != nil {
		return nil, err
	}
	if err := jobs.Register(scheduler.JobEmailCleanup, cfg.Scheduler.CleanupSpec, scheduler.EmailCleanup(worker, cfg.Email.RetentionDays)); err != nil {
		return nil, err
	}

	return &Injector{
		Config:       cfg,
		DB:           db,
		Router:       r,
		EmailWorker:  worker,
		Scheduler:    jobs,
		RateLimiter:  sendRateLimiter,
		TokenService: tokenService,
	}, nil
}
