package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// UpsertBudgetInput represents the input for setting a project budget.
type UpsertBudgetInput struct {
	TenantID       uuid.UUID
	ProjectID      uuid.UUID
	TotalAllocated decimal.Decimal
	Currency       string
	Notes          string
}

// UpsertBudgetUseCase handles creating or replacing a project budget.
type UpsertBudgetUseCase struct {
	budgetRepo  adapter.BudgetRepository
	projectRepo adapter.ProjectRepository
}

// NewUpsertBudgetUseCase creates a new UpsertBudgetUseCase instance.
func NewUpsertBudgetUseCase(budgetRepo adapter.BudgetRepository, projectRepo adapter.ProjectRepository) *UpsertBudgetUseCase {
	return &UpsertBudgetUseCase{
		budgetRepo:  budgetRepo,
		projectRepo: projectRepo,
	}
}

// Execute stores the budget. A project keeps a single budget row.
func (uc *UpsertBudgetUseCase) Execute(ctx context.Context, input UpsertBudgetInput) (*entity.ProjectBudget, error) {
	if input.TotalAllocated.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"total_allocated must not be negative",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	if err := ensureProject(ctx, uc.projectRepo, input.TenantID, input.ProjectID); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "USD"
	}

	budget := entity.NewProjectBudget(input.TenantID, input.ProjectID, input.TotalAllocated, currency, input.Notes)
	if err := uc.budgetRepo.Upsert(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	// The conflict path keeps the original row, so read back what is stored.
	stored, err := uc.budgetRepo.FindByProject(ctx, input.TenantID, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload budget: %w", err)
	}

	slog.Info("Project budget saved", "tenant_id", input.TenantID, "project_id", input.ProjectID, "allocated", stored.TotalAllocated)
	return stored, nil
}
