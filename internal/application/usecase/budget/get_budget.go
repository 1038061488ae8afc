package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// GetBudgetUseCase handles reading a project budget with its utilization.
type GetBudgetUseCase struct {
	budgetRepo  adapter.BudgetRepository
	projectRepo adapter.ProjectRepository
	spending    SpendingReader
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(budgetRepo adapter.BudgetRepository, projectRepo adapter.ProjectRepository, spending SpendingReader) *GetBudgetUseCase {
	return &GetBudgetUseCase{
		budgetRepo:  budgetRepo,
		projectRepo: projectRepo,
		spending:    spending,
	}
}

// Execute returns allocated, spent and remaining amounts overall and per category.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, tenantID, projectID uuid.UUID) (*entity.BudgetOverview, error) {
	if err := ensureProject(ctx, uc.projectRepo, tenantID, projectID); err != nil {
		return nil, err
	}

	budget, err := uc.budgetRepo.FindByProject(ctx, tenantID, projectID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"project has no budget",
				domainerror.ErrBudgetNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	categories, err := uc.budgetRepo.ListCategories(ctx, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget categories: %w", err)
	}

	spent, err := uc.spending.GetBudgetSpending(ctx, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum budget spending: %w", err)
	}

	return &entity.BudgetOverview{
		Budget:      budget,
		Utilization: entity.NewUtilization(budget.TotalAllocated, spent.Total),
		Categories: lo.Map(categories, func(c *entity.BudgetCategory, _ int) entity.CategoryUtilization {
			s, ok := spent.ByCategory[c.ID]
			if !ok {
				s = decimal.Zero
			}
			return entity.CategoryUtilization{
				Category:    c,
				Utilization: entity.NewUtilization(c.Allocated, s),
			}
		}),
		Uncategorized: spent.Uncategorized,
	}, nil
}
