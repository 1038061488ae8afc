package client

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

func TestCreateClientUseCase_Validation(t *testing.T) {
	db := persistencetest.Open(t)
	uc := NewCreateClientUseCase(persistence.NewClientRepository(db))

	tests := []struct {
		name  string
		input Fields
		code  domainerror.ClientErrorCode
	}{
		{name: "blank name", input: Fields{Name: "   "}, code: domainerror.ErrCodeClientNameRequired},
		{name: "bad email", input: Fields{Name: "Acme", Email: "not-an-email"}, code: domainerror.ErrCodeInvalidClientEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), CreateClientInput{TenantID: uuid.New(), Fields: tt.input})

			var clientErr *domainerror.ClientError
			require.True(t, errors.As(err, &clientErr))
			assert.Equal(t, tt.code, clientErr.Code)
		})
	}
}

func TestClientLifecycle(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.Open(t)
	clientRepo := persistence.NewClientRepository(db)
	invoiceRepo := persistence.NewInvoiceRepository(db)
	tenantID := uuid.New()

	created, err := NewCreateClientUseCase(clientRepo).Execute(ctx, CreateClientInput{
		TenantID: tenantID,
		Fields:   Fields{Name: " Globex ", Email: "ap@globex.test", Currency: "eur"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Globex", created.Name)
	assert.Equal(t, "EUR", created.Currency)

	company := "Globex Corporation"
	updated, err := NewUpdateClientUseCase(clientRepo).Execute(ctx, UpdateClientInput{
		TenantID: tenantID,
		ClientID: created.ID,
		Company:  &company,
	})
	require.NoError(t, err)
	assert.Equal(t, company, updated.Company)
	assert.Equal(t, "ap@globex.test", updated.Email)

	listed, err := NewListClientsUseCase(clientRepo).Execute(ctx, tenantID, "corporation")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	_, err = NewGetClientUseCase(clientRepo).Execute(ctx, uuid.New(), created.ID)
	var clientErr *domainerror.ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, domainerror.ErrCodeClientNotFound, clientErr.Code)

	issue := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	inv := entity.NewInvoice(tenantID, created.ID, nil, issue, issue.AddDate(0, 0, 30), "EUR")
	inv.LineItems = []*entity.LineItem{{ID: uuid.New(), InvoiceID: inv.ID, Description: "Retainer", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(100)}}
	require.NoError(t, inv.Recalculate())
	require.NoError(t, invoiceRepo.Create(ctx, inv))

	del := NewDeleteClientUseCase(clientRepo, invoiceRepo)
	err = del.Execute(ctx, tenantID, created.ID)
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, domainerror.ErrCodeClientHasInvoices, clientErr.Code)

	require.NoError(t, invoiceRepo.Delete(ctx, tenantID, inv.ID))
	require.NoError(t, del.Execute(ctx, tenantID, created.ID))

	listed, err = NewListClientsUseCase(clientRepo).Execute(ctx, tenantID, "")
	require.NoError(t, err)
	assert.Empty(t, listed)
}
