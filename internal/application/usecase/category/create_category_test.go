package category

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/persistence"
	"github.com/agency-crm/backend/internal/integration/persistence/persistencetest"
)

func TestCreateCategoryUseCase(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewCategoryRepository(persistencetest.Open(t))
	uc := NewCreateCategoryUseCase(repo)
	tenantID := uuid.New()

	created, err := uc.Execute(ctx, CreateCategoryInput{TenantID: tenantID, Name: "Software", Type: entity.CategoryTypeExpense})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCategoryColor, created.Color)
	assert.Equal(t, entity.DefaultCategoryIcon, created.Icon)

	tests := []struct {
		name  string
		input CreateCategoryInput
		code  domainerror.CategoryErrorCode
	}{
		{
			name:  "duplicate name",
			input: CreateCategoryInput{TenantID: tenantID, Name: "Software", Type: entity.CategoryTypeExpense},
			code:  domainerror.ErrCodeCategoryNameExists,
		},
		{
			name:  "bad color",
			input: CreateCategoryInput{TenantID: tenantID, Name: "Travel", Color: "red", Type: entity.CategoryTypeExpense},
			code:  domainerror.ErrCodeInvalidColorFormat,
		},
		{
			name:  "bad type",
			input: CreateCategoryInput{TenantID: tenantID, Name: "Travel", Type: "transfer"},
			code:  domainerror.ErrCodeInvalidCategoryType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.input)

			var catErr *domainerror.CategoryError
			require.True(t, errors.As(err, &catErr))
			assert.Equal(t, tt.code, catErr.Code)
		})
	}

	// Same name under another type or tenant is allowed.
	_, err = uc.Execute(ctx, CreateCategoryInput{TenantID: tenantID, Name: "Software", Type: entity.CategoryTypeIncome})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, CreateCategoryInput{TenantID: uuid.New(), Name: "Software", Type: entity.CategoryTypeExpense})
	require.NoError(t, err)

	list := NewListCategoriesUseCase(repo)
	listed, err := list.Execute(ctx, tenantID, nil)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	income := entity.CategoryTypeIncome
	listed, err = list.Execute(ctx, tenantID, &income)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, entity.CategoryTypeIncome, listed[0].Type)

	transfer := entity.CategoryType("transfer")
	_, err = list.Execute(ctx, tenantID, &transfer)
	var catErr *domainerror.CategoryError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, domainerror.ErrCodeInvalidCategoryType, catErr.Code)
}
