package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for project budget persistence operations.
type BudgetRepository interface {
	// FindByProject retrieves the budget of a project.
	FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) (*entity.ProjectBudget, error)

	// Upsert creates the project's budget or replaces its allocation.
	Upsert(ctx context.Context, budget *entity.ProjectBudget) error

	// CreateCategory creates a budget category.
	CreateCategory(ctx context.Context, category *entity.BudgetCategory) error

	// FindCategoryByID retrieves a budget category of a project.
	FindCategoryByID(ctx context.Context, tenantID, projectID, id uuid.UUID) (*entity.BudgetCategory, error)

	// ListCategories retrieves the budget categories of a project ordered by name.
	ListCategories(ctx context.Context, tenantID, projectID uuid.UUID) ([]*entity.BudgetCategory, error)

	// CreateExpense records an expense against a project budget.
	CreateExpense(ctx context.Context, expense *entity.BudgetExpense) error

	// ListExpenses retrieves the expenses of a project, newest first.
	ListExpenses(ctx context.Context, tenantID, projectID uuid.UUID) ([]*entity.BudgetExpense, error)
}
