package payment

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
	"github.com/agency-crm/backend/internal/application/usecase/invoice"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/persistence"
	"github.com/agency-crm/backend/internal/integration/persistence/persistencetest"
)

type fixture struct {
	tenantID    uuid.UUID
	client      *entity.Client
	invoiceRepo adapter.InvoiceRepository
	clientRepo  adapter.ClientRepository
	create      *invoice.CreateInvoiceUseCase
	cancel      *invoice.CancelInvoiceUseCase
	addPayment  *AddPaymentUseCase
	list        *ListPaymentsUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := persistencetest.Open(t)
	invoiceRepo := persistence.NewInvoiceRepository(db)
	clientRepo := persistence.NewClientRepository(db)
	projectRepo := persistence.NewProjectRepository(db)

	tenantID := uuid.New()
	client := entity.NewClient(tenantID, "Acme Corp", "billing@acme.test", "", "Acme", "", "USD", "")
	require.NoError(t, clientRepo.Create(context.Background(), client))

	return &fixture{
		tenantID:    tenantID,
		client:      client,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		create:      invoice.NewCreateInvoiceUseCase(invoiceRepo, clientRepo, projectRepo),
		cancel:      invoice.NewCancelInvoiceUseCase(invoiceRepo),
		addPayment:  NewAddPaymentUseCase(invoiceRepo, clientRepo, nil),
		list:        NewListPaymentsUseCase(invoiceRepo),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *fixture) createInvoice(t *testing.T, quantity, rate, taxRate string) *entity.Invoice {
	t.Helper()

	issue := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	inv, err := f.create.Execute(context.Background(), invoice.CreateInvoiceInput{
		TenantID:  f.tenantID,
		ClientID:  f.client.ID,
		IssueDate: &issue,
		TaxRate:   dec(taxRate),
		LineItems: []invoice.LineItemInput{
			{Description: "Consulting", Quantity: dec(quantity), Rate: dec(rate)},
		},
	})
	require.NoError(t, err)
	return inv
}

func (f *fixture) pay(invoiceID uuid.UUID, amount string) (*AddPaymentOutput, error) {
	return f.addPayment.Execute(context.Background(), AddPaymentInput{
		TenantID:  f.tenantID,
		InvoiceID: invoiceID,
		Amount:    dec(amount),
		Date:      time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		Method:    "bank",
	})
}

func TestAddPayment_EndToEnd(t *testing.T) {
	f := newFixture(t)

	inv := f.createInvoice(t, "2", "50", "10")
	assert.Equal(t, "INV-202403-001", inv.InvoiceNumber)
	assert.True(t, dec("100").Equal(inv.Subtotal))
	assert.True(t, dec("10").Equal(inv.TaxAmount))
	assert.True(t, dec("110").Equal(inv.Total))
	assert.True(t, dec("110").Equal(inv.AmountDue()))
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)

	out, err := f.pay(inv.ID, "110")
	require.NoError(t, err)
	assert.True(t, dec("110").Equal(out.Invoice.AmountPaid))
	assert.True(t, out.Invoice.AmountDue().IsZero())
	assert.Equal(t, entity.InvoiceStatusPaid, out.Invoice.Status)

	stored, err := f.invoiceRepo.FindByID(context.Background(), f.tenantID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, stored.Status)
	assert.True(t, dec("110").Equal(stored.AmountPaid))
	require.Len(t, stored.Payments, 1)
	assert.Equal(t, "bank", stored.Payments[0].Method)
	assert.Equal(t, 2, stored.Version)
}

func TestAddPayment_OverpaymentIsRejected(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "1", "100", "0")

	_, err := f.pay(inv.ID, "80")
	require.NoError(t, err)

	_, err = f.pay(inv.ID, "25")
	var paymentErr *domainerror.PaymentError
	require.True(t, errors.As(err, &paymentErr))
	assert.Equal(t, domainerror.ErrCodeOverpayment, paymentErr.Code)
	require.NotNil(t, paymentErr.MaxAllowed)
	assert.True(t, dec("20").Equal(*paymentErr.MaxAllowed))

	out, err := f.pay(inv.ID, "20")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, out.Invoice.Status)

	payments, err := f.list.Execute(context.Background(), f.tenantID, inv.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestAddPayment_PartialThenPaid(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "4", "25", "0")

	out, err := f.pay(inv.ID, "40")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartial, out.Invoice.Status)
	assert.True(t, dec("60").Equal(out.Invoice.AmountDue()))

	out, err = f.pay(inv.ID, "60")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, out.Invoice.Status)
}

func TestAddPayment_CancelledInvoiceRejectsPayment(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "1", "100", "0")

	_, err := f.cancel.Execute(context.Background(), invoice.CancelInvoiceInput{
		TenantID:  f.tenantID,
		InvoiceID: inv.ID,
	})
	require.NoError(t, err)

	_, err = f.pay(inv.ID, "10")
	var paymentErr *domainerror.PaymentError
	require.True(t, errors.As(err, &paymentErr))
	assert.Equal(t, domainerror.ErrCodePaymentOnCancelledInvoice, paymentErr.Code)

	payments, err := f.list.Execute(context.Background(), f.tenantID, inv.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestAddPayment_Validation(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "1", "100", "0")

	tests := []struct {
		name  string
		input AddPaymentInput
		code  domainerror.PaymentErrorCode
	}{
		{
			name:  "zero amount",
			input: AddPaymentInput{Amount: decimal.Zero, Date: time.Now(), Method: "card"},
			code:  domainerror.ErrCodeInvalidPaymentAmount,
		},
		{
			name:  "negative amount",
			input: AddPaymentInput{Amount: dec("-5"), Date: time.Now(), Method: "card"},
			code:  domainerror.ErrCodeInvalidPaymentAmount,
		},
		{
			name:  "missing method",
			input: AddPaymentInput{Amount: dec("5"), Date: time.Now()},
			code:  domainerror.ErrCodeMissingPaymentFields,
		},
		{
			name:  "missing date",
			input: AddPaymentInput{Amount: dec("5"), Method: "card"},
			code:  domainerror.ErrCodeMissingPaymentFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.TenantID = f.tenantID
			tt.input.InvoiceID = inv.ID

			_, err := f.addPayment.Execute(context.Background(), tt.input)
			var paymentErr *domainerror.PaymentError
			require.True(t, errors.As(err, &paymentErr))
			assert.Equal(t, tt.code, paymentErr.Code)
		})
	}
}

func TestAddPayment_UnknownInvoice(t *testing.T) {
	f := newFixture(t)

	_, err := f.pay(uuid.New(), "10")
	var paymentErr *domainerror.PaymentError
	require.True(t, errors.As(err, &paymentErr))
	assert.Equal(t, domainerror.ErrCodePaymentInvoiceNotFound, paymentErr.Code)
}

func TestAddPayment_OtherTenantCannotPay(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "1", "100", "0")

	_, err := f.addPayment.Execute(context.Background(), AddPaymentInput{
		TenantID:  uuid.New(),
		InvoiceID: inv.ID,
		Amount:    dec("10"),
		Date:      time.Now(),
		Method:    "bank",
	})
	assert.True(t, errors.Is(err, domainerror.ErrInvoiceNotFound))
}
