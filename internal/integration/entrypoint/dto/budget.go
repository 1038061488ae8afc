package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// UpsertBudgetRequest represents the request body for setting a project budget.
type UpsertBudgetRequest struct {
	TotalAllocated decimal.Decimal `json:"total_allocated"`
	Currency       string          `json:"currency,omitempty" binding:"omitempty,len=3"`
	Notes          string          `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

// CreateBudgetCategoryRequest represents the request body for a budget category.
type CreateBudgetCategoryRequest struct {
	Name      string          `json:"name" binding:"required,max=100"`
	Allocated decimal.Decimal `json:"allocated"`
	Color     string          `json:"color,omitempty" binding:"omitempty,max=7"`
}

// CreateExpenseRequest represents the request body for a budget expense.
type CreateExpenseRequest struct {
	CategoryID  *string         `json:"category_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *string         `json:"date,omitempty"`
	Description string          `json:"description,omitempty" binding:"omitempty,max=500"`
	Vendor      string          `json:"vendor,omitempty" binding:"omitempty,max=255"`
}

// UtilizationResponse represents allocated versus spent amounts.
type UtilizationResponse struct {
	Allocated             string `json:"allocated"`
	Spent                 string `json:"spent"`
	Remaining             string `json:"remaining"`
	UtilizationPercentage string `json:"utilization_percentage"`
}

// BudgetResponse represents a project budget in API responses.
type BudgetResponse struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	TotalAllocated string    `json:"total_allocated"`
	Currency       string    `json:"currency"`
	Notes          string    `json:"notes,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BudgetCategoryResponse represents a budget category in API responses.
type BudgetCategoryResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Allocated   string               `json:"allocated"`
	Color       string               `json:"color,omitempty"`
	Utilization *UtilizationResponse `json:"utilization,omitempty"`
}

// BudgetOverviewResponse represents a budget with its utilization.
type BudgetOverviewResponse struct {
	Budget        BudgetResponse           `json:"budget"`
	Utilization   UtilizationResponse      `json:"utilization"`
	Categories    []BudgetCategoryResponse `json:"categories"`
	Uncategorized string                   `json:"uncategorized_spent"`
}

// ExpenseResponse represents a budget expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"`
	Description string    `json:"description,omitempty"`
	Vendor      string    `json:"vendor,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToBudgetResponse converts a budget entity.
func ToBudgetResponse(b *entity.ProjectBudget) BudgetResponse {
	return BudgetResponse{
		ID:             b.ID.String(),
		ProjectID:      b.ProjectID.String(),
		TotalAllocated: money(b.TotalAllocated),
		Currency:       b.Currency,
		Notes:          b.Notes,
		UpdatedAt:      b.UpdatedAt,
	}
}

func toUtilizationResponse(u entity.Utilization) UtilizationResponse {
	return UtilizationResponse{
		Allocated:             money(u.Allocated),
		Spent:                 money(u.Spent),
		Remaining:             money(u.Remaining),
		UtilizationPercentage: money(u.UtilizationPercentage),
	}
}

// ToBudgetOverviewResponse converts a budget overview.
func ToBudgetOverviewResponse(o *entity.BudgetOverview) BudgetOverviewResponse {
	return BudgetOverviewResponse{
		Budget:      ToBudgetResponse(o.Budget),
		Utilization: toUtilizationResponse(o.Utilization),
		Categories: lo.Map(o.Categories, func(c entity.CategoryUtilization, _ int) BudgetCategoryResponse {
			resp := ToBudgetCategoryResponse(c.Category)
			u := toUtilizationResponse(c.Utilization)
			resp.Utilization = &u
			return resp
		}),
		Uncategorized: money(o.Uncategorized),
	}
}

// ToBudgetCategoryResponse converts a budget category entity.
func ToBudgetCategoryResponse(c *entity.BudgetCategory) BudgetCategoryResponse {
	return BudgetCategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Allocated: money(c.Allocated),
		Color:     c.Color,
	}
}

// ToBudgetCategoryResponses converts budget category entities.
func ToBudgetCategoryResponses(categories []*entity.BudgetCategory) []BudgetCategoryResponse {
	return lo.Map(categories, func(c *entity.BudgetCategory, _ int) BudgetCategoryResponse { return ToBudgetCategoryResponse(c) })
}

// ToExpenseResponse converts a budget expense entity.
func ToExpenseResponse(e *entity.BudgetExpense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		ProjectID:   e.ProjectID.String(),
		CategoryID:  formatOptionalID(e.CategoryID),
		Amount:      money(e.Amount),
		Date:        formatDate(e.Date),
		Description: e.Description,
		Vendor:      e.Vendor,
		CreatedAt:   e.CreatedAt,
	}
}

// ToExpenseResponses converts budget expense entities.
func ToExpenseResponses(expenses []*entity.BudgetExpense) []ExpenseResponse {
	return lo.Map(expenses, func(e *entity.BudgetExpense, _ int) ExpenseResponse { return ToExpenseResponse(e) })
}
