package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// CreateExpenseInput represents the input for recording a budget expense.
type CreateExpenseInput struct {
	TenantID    uuid.UUID
	ProjectID   uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Date        *time.Time
	Description string
	Vendor      string
}

// CreateExpenseUseCase handles recording budget expenses.
type CreateExpenseUseCase struct {
	budgetRepo  adapter.BudgetRepository
	projectRepo adapter.ProjectRepository
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(budgetRepo adapter.BudgetRepository, projectRepo adapter.ProjectRepository) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		budgetRepo:  budgetRepo,
		projectRepo: projectRepo,
	}
}

// Execute records an expense. The category, when given, must belong to the project.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*entity.BudgetExpense, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidExpenseAmount,
		)
	}
	if err := ensureProject(ctx, uc.projectRepo, input.TenantID, input.ProjectID); err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := uc.budgetRepo.FindCategoryByID(ctx, input.TenantID, input.ProjectID, *input.CategoryID); err != nil {
			if errors.Is(err, domainerror.ErrBudgetCategoryNotFound) {
				return nil, domainerror.NewBudgetError(
					domainerror.ErrCodeBudgetCategoryNotFound,
					"budget category not found",
					domainerror.ErrBudgetCategoryNotFound,
				)
			}
			return nil, fmt.Errorf("failed to find budget category: %w", err)
		}
	}

	date := valueobject.Today()
	if input.Date != nil {
		date = valueobject.DateOnly(*input.Date)
	}

	expense := entity.NewBudgetExpense(input.TenantID, input.ProjectID, input.CategoryID, input.Amount, date, input.Description, input.Vendor)
	if err := uc.budgetRepo.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to record expense: %w", err)
	}
	return expense, nil
}

// ListExpensesUseCase handles listing budget expenses.
type ListExpensesUseCase struct {
	budgetRepo  adapter.BudgetRepository
	projectRepo adapter.ProjectRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(budgetRepo adapter.BudgetRepository, projectRepo adapter.ProjectRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		budgetRepo:  budgetRepo,
		projectRepo: projectRepo,
	}
}

// Execute lists the project's expenses, newest first.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, tenantID, projectID uuid.UUID) ([]*entity.BudgetExpense, error) {
	if err := ensureProject(ctx, uc.projectRepo, tenantID, projectID); err != nil {
		return nil, err
	}

	expenses, err := uc.budgetRepo.ListExpenses(ctx, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}
