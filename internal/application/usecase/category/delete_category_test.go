package category

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/persistence"
	"github.com/agency-crm/backend/internal/integration/persistence/persistencetest"
)

func TestDeleteCategoryUseCase(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.Open(t)
	repo := persistence.NewCategoryRepository(db)
	transactions := persistence.NewTransactionRepository(db)
	uc := NewDeleteCategoryUseCase(repo)
	tenantID := uuid.New()

	used := entity.NewCategory(tenantID, "Hosting", "", "", "", entity.CategoryTypeExpense)
	unused := entity.NewCategory(tenantID, "Travel", "", "", "", entity.CategoryTypeExpense)
	require.NoError(t, repo.Create(ctx, used))
	require.NoError(t, repo.Create(ctx, unused))
	require.NoError(t, transactions.Create(ctx, entity.NewTransaction(
		tenantID, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "VPS", decimal.NewFromInt(20),
		entity.TransactionTypeExpense, &used.ID, "",
	)))

	code := func(err error) domainerror.CategoryErrorCode {
		var catErr *domainerror.CategoryError
		require.True(t, errors.As(err, &catErr), "expected CategoryError, got %v", err)
		return catErr.Code
	}

	assert.Equal(t, domainerror.ErrCodeCategoryInUse, code(uc.Execute(ctx, tenantID, used.ID)))
	assert.Equal(t, domainerror.ErrCodeCategoryNotFound, code(uc.Execute(ctx, uuid.New(), unused.ID)))

	require.NoError(t, uc.Execute(ctx, tenantID, unused.ID))
	assert.Equal(t, domainerror.ErrCodeCategoryNotFound, code(uc.Execute(ctx, tenantID, unused.ID)))

	remaining, err := repo.FindByTenant(ctx, tenantID, nil)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Hosting", remaining[0].Name)
}
