package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
	"github.com/agency-crm/backend/internal/integration/persistence"
	"github.com/agency-crm/backend/internal/integration/persistence/persistencetest"
)

type invoiceFixture struct {
	tenantID    uuid.UUID
	client      *entity.Client
	invoiceRepo adapter.InvoiceRepository
	create      *CreateInvoiceUseCase
	update      *UpdateInvoiceUseCase
	cancel      *CancelInvoiceUseCase
	remove      *DeleteInvoiceUseCase
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	db := persistencetest.Open(t)
	invoiceRepo := persistence.NewInvoiceRepository(db)
	clientRepo := persistence.NewClientRepository(db)
	projectRepo := persistence.NewProjectRepository(db)

	tenantID := uuid.New()
	client := entity.NewClient(tenantID, "Acme Corp", "billing@acme.test", "", "Acme", "", "EUR", "")
	require.NoError(t, clientRepo.Create(context.Background(), client))

	return &invoiceFixture{
		tenantID:    tenantID,
		client:      client,
		invoiceRepo: invoiceRepo,
		create:      NewCreateInvoiceUseCase(invoiceRepo, clientRepo, projectRepo),
		update:      NewUpdateInvoiceUseCase(invoiceRepo, clientRepo, projectRepo),
		cancel:      NewCancelInvoiceUseCase(invoiceRepo),
		remove:      NewDeleteInvoiceUseCase(invoiceRepo),
	}
}

func (f *invoiceFixture) draft(t *testing.T, issue time.Time) *entity.Invoice {
	t.Helper()
	inv, err := f.create.Execute(context.Background(), CreateInvoiceInput{
		TenantID:  f.tenantID,
		ClientID:  f.client.ID,
		IssueDate: &issue,
		TaxRate:   decimal.NewFromInt(10),
		LineItems: []LineItemInput{
			{Description: "Design sprint", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)
	return inv
}

func invoiceCode(t *testing.T, err error) domainerror.InvoiceErrorCode {
	t.Helper()
	var invErr *domainerror.InvoiceError
	require.True(t, errors.As(err, &invErr), "expected InvoiceError, got %v", err)
	return invErr.Code
}

func TestCreateInvoiceUseCase(t *testing.T) {
	f := newInvoiceFixture(t)
	march := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	first := f.draft(t, march)
	assert.Equal(t, "INV-202403-001", first.InvoiceNumber)
	assert.Equal(t, entity.InvoiceStatusDraft, first.Status)
	assert.Equal(t, "EUR", first.Currency)
	assert.Equal(t, "100.00", first.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", first.TaxAmount.StringFixed(2))
	assert.Equal(t, "110.00", first.Total.StringFixed(2))
	assert.Equal(t, time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC), first.DueDate)

	assert.Equal(t, "INV-202403-002", f.draft(t, march.AddDate(0, 0, 3)).InvoiceNumber)
	assert.Equal(t, "INV-202404-001", f.draft(t, march.AddDate(0, 1, 0)).InvoiceNumber)

	_, err := f.create.Execute(context.Background(), CreateInvoiceInput{
		TenantID: uuid.New(),
		ClientID: f.client.ID,
		LineItems: []LineItemInput{
			{Description: "Audit", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10)},
		},
	})
	assert.Equal(t, domainerror.ErrCodeInvoiceClientNotFound, invoiceCode(t, err))
}

func TestUpdateInvoiceUseCase_RecomputesTotals(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	inv := f.draft(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	zero := decimal.Zero
	items := []LineItemInput{
		{Description: "Retainer", Quantity: decimal.NewFromInt(3), Rate: decimal.NewFromInt(100)},
	}
	updated, err := f.update.Execute(ctx, UpdateInvoiceInput{
		TenantID:  f.tenantID,
		InvoiceID: inv.ID,
		TaxRate:   &zero,
		LineItems: &items,
	})
	require.NoError(t, err)
	assert.Equal(t, "300.00", updated.Total.StringFixed(2))
	require.Len(t, updated.LineItems, 1)

	// Only the tax rate changes; stored line items are kept.
	ten := decimal.NewFromInt(10)
	updated, err = f.update.Execute(ctx, UpdateInvoiceInput{TenantID: f.tenantID, InvoiceID: inv.ID, TaxRate: &ten})
	require.NoError(t, err)
	assert.Equal(t, "300.00", updated.Subtotal.StringFixed(2))
	assert.Equal(t, "330.00", updated.Total.StringFixed(2))

	_, err = f.cancel.Execute(ctx, CancelInvoiceInput{TenantID: f.tenantID, InvoiceID: inv.ID})
	require.NoError(t, err)

	_, err = f.update.Execute(ctx, UpdateInvoiceInput{TenantID: f.tenantID, InvoiceID: inv.ID, TaxRate: &zero})
	assert.Equal(t, domainerror.ErrCodeInvoiceNotEditable, invoiceCode(t, err))
}

func TestInvoiceRepository_StaleVersionIsRejected(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	inv := f.draft(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	a, err := f.invoiceRepo.FindByID(ctx, f.tenantID, inv.ID)
	require.NoError(t, err)
	b, err := f.invoiceRepo.FindByID(ctx, f.tenantID, inv.ID)
	require.NoError(t, err)

	a.Notes = "first writer"
	require.NoError(t, f.invoiceRepo.Update(ctx, a, false))

	b.Notes = "second writer"
	err = f.invoiceRepo.Update(ctx, b, false)
	assert.ErrorIs(t, err, domainerror.ErrInvoiceConcurrentUpdate)
}

func TestDeleteInvoiceUseCase(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	issue := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	sent := f.draft(t, issue)
	sent.Status = entity.InvoiceStatusSent
	require.NoError(t, f.invoiceRepo.Update(ctx, sent, false))
	assert.Equal(t, domainerror.ErrCodeInvoiceNotDeletable, invoiceCode(t, f.remove.Execute(ctx, f.tenantID, sent.ID)))

	draft := f.draft(t, issue)
	require.NoError(t, f.remove.Execute(ctx, f.tenantID, draft.ID))
	assert.Equal(t, domainerror.ErrCodeInvoiceNotFound, invoiceCode(t, f.remove.Execute(ctx, f.tenantID, draft.ID)))

	_, err := f.cancel.Execute(ctx, CancelInvoiceInput{TenantID: f.tenantID, InvoiceID: sent.ID})
	require.NoError(t, err)
	require.NoError(t, f.remove.Execute(ctx, f.tenantID, sent.ID))
}

func TestUpdateInvoiceUseCase_StatusOnlyFollowsPayments(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	issue := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	free, err := f.create.Execute(ctx, CreateInvoiceInput{
		TenantID:      f.tenantID,
		ClientID:      f.client.ID,
		IssueDate:     &issue,
		DiscountType:  valueobject.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(100),
		LineItems: []LineItemInput{
			{Description: "Pro bono audit", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(80)},
		},
	})
	require.NoError(t, err)
	require.True(t, free.Total.IsZero())

	notes := "waived"
	edited, err := f.update.Execute(ctx, UpdateInvoiceInput{TenantID: f.tenantID, InvoiceID: free.ID, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusDraft, edited.Status)
	assert.Nil(t, edited.PaidAt)

	_, err = f.cancel.Execute(ctx, CancelInvoiceInput{TenantID: f.tenantID, InvoiceID: free.ID})
	require.NoError(t, err)

	// An overdue invoice with money on it, edited down to the paid amount, becomes paid.
	partial := f.draft(t, issue)
	partial.Status = entity.InvoiceStatusOverdue
	partial.AmountPaid = decimal.NewFromInt(55)
	require.NoError(t, f.invoiceRepo.Update(ctx, partial, false))

	zero := decimal.Zero
	items := []LineItemInput{
		{Description: "Reduced scope", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(55)},
	}
	settled, err := f.update.Execute(ctx, UpdateInvoiceInput{
		TenantID:  f.tenantID,
		InvoiceID: partial.ID,
		TaxRate:   &zero,
		LineItems: &items,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, settled.Status)
	assert.NotNil(t, settled.PaidAt)
}
