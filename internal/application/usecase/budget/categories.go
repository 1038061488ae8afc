package budget

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for creating a budget category.
type CreateCategoryInput struct {
	TenantID  uuid.UUID
	ProjectID uuid.UUID
	Name      string
	Allocated decimal.Decimal
	Color     string
}

// CreateCategoryUseCase handles budget category creation.
type CreateCategoryUseCase struct {
	budgetRepo  adapter.BudgetRepository
	projectRepo adapter.ProjectRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(budgetRepo adapter.BudgetRepository, projectRepo adapter.ProjectRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		budgetRepo:  budgetRepo,
		projectRepo: projectRepo,
	}
}

// Execute creates an allocation bucket on the project budget.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*entity.BudgetCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNameRequired,
			"name is required",
			domainerror.ErrBudgetCategoryNameRequired,
		)
	}
	if input.Allocated.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"allocated must not be negative",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	if err := ensureProject(ctx, uc.projectRepo, input.TenantID, input.ProjectID); err != nil {
		return nil, err
	}

	category := entity.NewBudgetCategory(input.TenantID, input.ProjectID, name, input.Allocated, input.Color)
	if err := uc.budgetRepo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create budget category: %w", err)
	}
	return category, nil
}

// ListCategoriesUseCase handles listing budget categories.
type ListCategoriesUseCase struct {
	budgetRepo  adapter.BudgetRepository
	projectRepo adapter.ProjectRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(budgetRepo adapter.BudgetRepository, projectRepo adapter.ProjectRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		budgetRepo:  budgetRepo,
		projectRepo: projectRepo,
	}
}

// Execute lists the project's budget categories.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, tenantID, projectID uuid.UUID) ([]*entity.BudgetCategory, error) {
	if err := ensureProject(ctx, uc.projectRepo, tenantID, projectID); err != nil {
		return nil, err
	}

	categories, err := uc.budgetRepo.ListCategories(ctx, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget categories: %w", err)
	}
	return categories, nil
}
