package budget

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-crm/backend/internal/application/usecase/report"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/persistence"
	"github.com/agency-crm/backend/internal/integration/persistence/persistencetest"
)

type stubSpending struct {
	spending *report.BudgetSpending
}

func (s stubSpending) GetBudgetSpending(_ context.Context, _, _ uuid.UUID) (*report.BudgetSpending, error) {
	return s.spending, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func budgetCode(t *testing.T, err error) domainerror.BudgetErrorCode {
	t.Helper()
	var budgetErr *domainerror.BudgetError
	require.True(t, errors.As(err, &budgetErr), "expected BudgetError, got %v", err)
	return budgetErr.Code
}

func TestBudgetUseCases(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.Open(t)
	budgetRepo := persistence.NewBudgetRepository(db)
	projectRepo := persistence.NewProjectRepository(db)
	tenantID := uuid.New()

	project := entity.NewProject(tenantID, uuid.New(), "Launch", "", decimal.Zero, nil, nil)
	require.NoError(t, projectRepo.Create(ctx, project))

	upsert := NewUpsertBudgetUseCase(budgetRepo, projectRepo)

	_, err := upsert.Execute(ctx, UpsertBudgetInput{TenantID: tenantID, ProjectID: project.ID, TotalAllocated: dec("-1")})
	assert.Equal(t, domainerror.ErrCodeInvalidBudgetAmount, budgetCode(t, err))

	_, err = upsert.Execute(ctx, UpsertBudgetInput{TenantID: tenantID, ProjectID: uuid.New(), TotalAllocated: dec("10")})
	assert.Equal(t, domainerror.ErrCodeBudgetProjectNotFound, budgetCode(t, err))

	first, err := upsert.Execute(ctx, UpsertBudgetInput{TenantID: tenantID, ProjectID: project.ID, TotalAllocated: dec("1000")})
	require.NoError(t, err)
	second, err := upsert.Execute(ctx, UpsertBudgetInput{TenantID: tenantID, ProjectID: project.ID, TotalAllocated: dec("2000"), Currency: "eur"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, dec("2000").Equal(second.TotalAllocated))
	assert.Equal(t, "EUR", second.Currency)

	design, err := NewCreateCategoryUseCase(budgetRepo, projectRepo).Execute(ctx, CreateCategoryInput{
		TenantID: tenantID, ProjectID: project.ID, Name: "Design", Allocated: dec("800"),
	})
	require.NoError(t, err)
	empty, err := NewCreateCategoryUseCase(budgetRepo, projectRepo).Execute(ctx, CreateCategoryInput{
		TenantID: tenantID, ProjectID: project.ID, Name: "Hosting", Allocated: decimal.Zero,
	})
	require.NoError(t, err)

	expenses := NewCreateExpenseUseCase(budgetRepo, projectRepo)
	_, err = expenses.Execute(ctx, CreateExpenseInput{TenantID: tenantID, ProjectID: project.ID, Amount: decimal.Zero})
	assert.Equal(t, domainerror.ErrCodeInvalidExpenseAmount, budgetCode(t, err))

	missing := uuid.New()
	_, err = expenses.Execute(ctx, CreateExpenseInput{TenantID: tenantID, ProjectID: project.ID, CategoryID: &missing, Amount: dec("5")})
	assert.Equal(t, domainerror.ErrCodeBudgetCategoryNotFound, budgetCode(t, err))

	_, err = expenses.Execute(ctx, CreateExpenseInput{TenantID: tenantID, ProjectID: project.ID, CategoryID: &design.ID, Amount: dec("200"), Description: "Mockups"})
	require.NoError(t, err)

	listed, err := NewListExpensesUseCase(budgetRepo, projectRepo).Execute(ctx, tenantID, project.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	spending := stubSpending{spending: &report.BudgetSpending{
		Total:         dec("500"),
		ByCategory:    map[uuid.UUID]decimal.Decimal{design.ID: dec("200")},
		Uncategorized: dec("300"),
	}}
	overview, err := NewGetBudgetUseCase(budgetRepo, projectRepo, spending).Execute(ctx, tenantID, project.ID)
	require.NoError(t, err)

	assert.True(t, dec("2000").Equal(overview.Utilization.Allocated))
	assert.True(t, dec("1500").Equal(overview.Utilization.Remaining))
	assert.True(t, dec("25").Equal(overview.Utilization.UtilizationPercentage))
	assert.True(t, dec("300").Equal(overview.Uncategorized))

	require.Len(t, overview.Categories, 2)
	byName := map[string]entity.Utilization{}
	for _, c := range overview.Categories {
		byName[c.Category.Name] = c.Utilization
	}
	assert.True(t, dec("25").Equal(byName["Design"].UtilizationPercentage))
	assert.True(t, byName["Hosting"].UtilizationPercentage.IsZero())
	assert.Equal(t, empty.ID, overview.Categories[1].Category.ID)
}

func TestGetBudget_NoBudget(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.Open(t)
	projectRepo := persistence.NewProjectRepository(db)
	tenantID := uuid.New()

	project := entity.NewProject(tenantID, uuid.New(), "Launch", "", decimal.Zero, nil, nil)
	require.NoError(t, projectRepo.Create(ctx, project))

	uc := NewGetBudgetUseCase(persistence.NewBudgetRepository(db), projectRepo, stubSpending{})
	_, err := uc.Execute(ctx, tenantID, project.ID)
	assert.Equal(t, domainerror.ErrCodeBudgetNotFound, budgetCode(t, err))
}
