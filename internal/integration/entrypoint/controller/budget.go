package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-crm/backend/internal/application/usecase/budget"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles project budget endpoints.
type BudgetController struct {
	getUseCase            *budget.GetBudgetUseCase
	upsertUseCase         *budget.UpsertBudgetUseCase
	createCategoryUseCase *budget.CreateCategoryUseCase
	listCategoriesUseCase *budget.ListCategoriesUseCase
	createExpenseUseCase  *budget.CreateExpenseUseCase
	listExpensesUseCase   *budget.ListExpensesUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	getUseCase *budget.GetBudgetUseCase,
	upsertUseCase *budget.UpsertBudgetUseCase,
	createCategoryUseCase *budget.CreateCategoryUseCase,
	listCategoriesUseCase *budget.ListCategoriesUseCase,
	createExpenseUseCase *budget.CreateExpenseUseCase,
	listExpensesUseCase *budget.ListExpensesUseCase,
) *BudgetController {
	return &BudgetController{
		getUseCase:            getUseCase,
		upsertUseCase:         upsertUseCase,
		createCategoryUseCase: createCategoryUseCase,
		listCategoriesUseCase: listCategoriesUseCase,
		createExpenseUseCase:  createExpenseUseCase,
		listExpensesUseCase:   listExpensesUseCase,
	}
}

// Get handles GET /projects/:id/budget requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := pathID(ctx, "id", string(domainerror.ErrCodeBudgetProjectNotFound))
	if !ok {
		return
	}

	overview, err := c.getUseCase.Execute(ctx.Request.Context(), tenantID, projectID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetOverviewResponse(overview))
}

// Upsert handles POST /projects/:id/budget requests, creating or replacing the budget.
func (c *BudgetController) Upsert(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := pathID(ctx, "id", string(domainerror.ErrCodeBudgetProjectNotFound))
	if !ok {
		return
	}

	var req dto.UpsertBudgetRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingBudgetFields)) {
		return
	}

	saved, err := c.upsertUseCase.Execute(ctx.Request.Context(), budget.UpsertBudgetInput{
		TenantID:       tenantID,
		ProjectID:      projectID,
		TotalAllocated: req.TotalAllocated,
		Currency:       req.Currency,
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(saved))
}

// ListCategories handles GET /projects/:id/budget/categories requests.
func (c *BudgetController) ListCategories(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := pathID(ctx, "id", string(domainerror.ErrCodeBudgetProjectNotFound))
	if !ok {
		return
	}

	categories, err := c.listCategoriesUseCase.Execute(ctx.Request.Context(), tenantID, projectID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": dto.ToBudgetCategoryResponses(categories)})
}

// CreateCategory handles POST /projects/:id/budget/categories requests.
func (c *BudgetController) CreateCategory(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := pathID(ctx, "id", string(domainerror.ErrCodeBudgetProjectNotFound))
	if !ok {
		return
	}

	var req dto.CreateBudgetCategoryRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingBudgetFields)) {
		return
	}

	created, err := c.createCategoryUseCase.Execute(ctx.Request.Context(), budget.CreateCategoryInput{
		TenantID:  tenantID,
		ProjectID: projectID,
		Name:      req.Name,
		Allocated: req.Allocated,
		Color:     req.Color,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetCategoryResponse(created))
}

// ListExpenses handles GET /projects/:id/budget/expenses requests.
func (c *BudgetController) ListExpenses(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := pathID(ctx, "id", string(domainerror.ErrCodeBudgetProjectNotFound))
	if !ok {
		return
	}

	expenses, err := c.listExpensesUseCase.Execute(ctx.Request.Context(), tenantID, projectID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"expenses": dto.ToExpenseResponses(expenses)})
}

// CreateExpense handles POST /projects/:id/budget/expenses requests.
func (c *BudgetController) CreateExpense(ctx *gin.Context) {
	tenantID, ok := tenantFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := pathID(ctx, "id", string(domainerror.ErrCodeBudgetProjectNotFound))
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingBudgetFields)) {
		return
	}

	input := budget.CreateExpenseInput{
		TenantID:    tenantID,
		ProjectID:   projectID,
		Amount:      req.Amount,
		Description: req.Description,
		Vendor:      req.Vendor,
	}

	var err error
	if input.CategoryID, err = dto.ParseOptionalID(req.CategoryID); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid category_id format", string(domainerror.ErrCodeMissingBudgetFields))
		return
	}
	if input.Date, err = dto.ParseOptionalDate(req.Date); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error(), string(domainerror.ErrCodeMissingBudgetFields))
		return
	}

	created, err := c.createExpenseUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(created))
}

func getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetNotFound,
		domainerror.ErrCodeBudgetCategoryNotFound,
		domainerror.ErrCodeBudgetProjectNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidBudgetAmount,
		domainerror.ErrCodeInvalidExpenseAmount,
		domainerror.ErrCodeBudgetCategoryNameRequired,
		domainerror.ErrCodeMissingBudgetFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
