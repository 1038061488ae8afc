package transaction

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

type transactionFixture struct {
	create   *CreateTransactionUseCase
	update   *UpdateTransactionUseCase
	tenantID uuid.UUID
	hosting  *entity.Category
	retainer *entity.Category
}

func newTransactionFixture(t *testing.T) *transactionFixture {
	t.Helper()
	db := persistencetest.Open(t)

	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	clientRepo := persistence.NewClientRepository(db)
	projectRepo := persistence.NewProjectRepository(db)

	f := &transactionFixture{
		create:   NewCreateTransactionUseCase(transactionRepo, categoryRepo, clientRepo, projectRepo),
		update:   NewUpdateTransactionUseCase(transactionRepo, categoryRepo, clientRepo, projectRepo),
		tenantID: uuid.New(),
	}
	f.hosting = entity.NewCategory(f.tenantID, "Hosting", "Servers and domains", "", "", entity.CategoryTypeExpense)
	f.retainer = entity.NewCategory(f.tenantID, "Retainers", "", "", "", entity.CategoryTypeIncome)
	require.NoError(t, categoryRepo.Create(context.Background(), f.hosting))
	require.NoError(t, categoryRepo.Create(context.Background(), f.retainer))
	return f
}

func assertTransactionCode(t *testing.T, err error, code domainerror.TransactionErrorCode) {
	t.Helper()
	var txErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txErr), "expected TransactionError, got %v", err)
	assert.Equal(t, code, txErr.Code)
}

func TestCreateTransactionUseCase(t *testing.T) {
	f := newTransactionFixture(t)
	ctx := context.Background()
	date := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	out, err := f.create.Execute(ctx, CreateTransactionInput{
		TenantID:    f.tenantID,
		Date:        date,
		Description: "AWS",
		Amount:      decimal.NewFromInt(42),
		Type:        entity.TransactionTypeExpense,
		CategoryID:  &f.hosting.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, out.Transaction.Category)
	assert.Equal(t, "Hosting", out.Transaction.Category.Name)

	tests := []struct {
		name  string
		input CreateTransactionInput
		code  domainerror.TransactionErrorCode
	}{
		{
			name: "income under expense category",
			input: CreateTransactionInput{
				TenantID: f.tenantID, Date: date, Amount: decimal.NewFromInt(10),
				Type: entity.TransactionTypeIncome, CategoryID: &f.hosting.ID,
			},
			code: domainerror.ErrCodeCategoryTypeMismatch,
		},
		{
			name: "zero amount",
			input: CreateTransactionInput{
				TenantID: f.tenantID, Date: date, Amount: decimal.Zero, Type: entity.TransactionTypeExpense,
			},
			code: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name: "category of another tenant",
			input: CreateTransactionInput{
				TenantID: uuid.New(), Date: date, Amount: decimal.NewFromInt(10),
				Type: entity.TransactionTypeExpense, CategoryID: &f.hosting.ID,
			},
			code: domainerror.ErrCodeTxnCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.create.Execute(ctx, tt.input)
			assertTransactionCode(t, err, tt.code)
		})
	}
}

func TestUpdateTransactionUseCase_TypeMustMatchCategory(t *testing.T) {
	f := newTransactionFixture(t)
	ctx := context.Background()

	out, err := f.create.Execute(ctx, CreateTransactionInput{
		TenantID:    f.tenantID,
		Date:        time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		Description: "Monthly retainer",
		Amount:      decimal.NewFromInt(1500),
		Type:        entity.TransactionTypeIncome,
		CategoryID:  &f.retainer.ID,
	})
	require.NoError(t, err)

	expense := entity.TransactionTypeExpense
	_, err = f.update.Execute(ctx, UpdateTransactionInput{
		TenantID:      f.tenantID,
		TransactionID: out.Transaction.ID,
		Type:          &expense,
	})
	assertTransactionCode(t, err, domainerror.ErrCodeCategoryTypeMismatch)

	updated, err := f.update.Execute(ctx, UpdateTransactionInput{
		TenantID:      f.tenantID,
		TransactionID: out.Transaction.ID,
		Type:          &expense,
		CategoryID:    &f.hosting.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTypeExpense, updated.Transaction.Type)
	assert.Equal(t, f.hosting.ID, *updated.Transaction.CategoryID)
}
