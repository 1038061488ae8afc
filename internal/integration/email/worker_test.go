package email

import (
	"bytes"
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
	"github.com/agency-crm/backend/internal/integration/adapters"
	"github.com/agency-crm/backend/internal/integration/email/templates"
	"github.com/agency-crm/backend/internal/integration/persistence"
	"github.com/agency-crm/backend/internal/integration/persistence/persistencetest"
)

type workerFixture struct {
	invoiceRepo adapter.InvoiceRepository
	queue       adapter.EmailQueueRepository
	service     *Service
	sender      *MockEmailSender
	worker      *Worker
	invoice     *entity.Invoice
}

func newWorkerFixture(t *testing.T) *workerFixture {
	t.Helper()
	ctx := context.Background()

	db := persistencetest.Open(t)
	invoiceRepo := persistence.NewInvoiceRepository(db)
	clientRepo := persistence.NewClientRepository(db)
	queue := persistence.NewEmailQueueRepository(db)

	tenantID := uuid.New()
	client := entity.NewClient(tenantID, "Acme Corp", "billing@acme.test", "", "", "", "USD", "")
	require.NoError(t, clientRepo.Create(ctx, client))

	issue := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inv := entity.NewInvoice(tenantID, client.ID, nil, issue, issue.AddDate(0, 0, 30), "USD")
	inv.LineItems = []*entity.LineItem{{
		ID:          uuid.New(),
		InvoiceID:   inv.ID,
		Description: "Retainer",
		Quantity:    decimal.NewFromInt(1),
		Rate:        decimal.NewFromInt(500),
	}}
	require.NoError(t, inv.Recalculate())
	require.NoError(t, invoiceRepo.Create(ctx, inv))

	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	sender := NewMockEmailSender()
	worker := NewWorker(queue, sender, renderer, DefaultWorkerConfig()).
		WithInvoiceDocuments(invoiceRepo, clientRepo, adapters.NewPDFRenderer("Agency"))

	return &workerFixture{
		invoiceRepo: invoiceRepo,
		queue:       queue,
		service:     NewService(queue, "https://app.test/"),
		sender:      sender,
		worker:      worker,
		invoice:     inv,
	}
}

func (f *workerFixture) queueInvoice(t *testing.T) uuid.UUID {
	t.Helper()
	jobID, err := f.service.QueueInvoiceEmail(context.Background(), adapter.QueueInvoiceEmailInput{
		TenantID:       f.invoice.TenantID,
		InvoiceID:      f.invoice.ID,
		InvoiceNumber:  f.invoice.InvoiceNumber,
		RecipientEmail: "billing@acme.test",
		RecipientName:  "Acme Corp",
		Total:          f.invoice.Total,
		AmountDue:      f.invoice.AmountDue(),
		Currency:       f.invoice.Currency,
		DueDate:        "2024-03-31",
		Message:        "Thanks!",
	})
	require.NoError(t, err)
	return jobID
}

func TestWorker_SendsInvoiceWithPDF(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()
	jobID := f.queueInvoice(t)

	f.worker.ProcessNow(ctx)

	sent := f.sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "billing@acme.test", sent[0].To)
	assert.Equal(t, "Invoice "+f.invoice.InvoiceNumber, sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "USD 500.00")
	assert.Contains(t, sent[0].HTML, "https://app.test/invoices/"+f.invoice.ID.String())
	require.Len(t, sent[0].Attachments, 1)
	assert.Equal(t, f.invoice.InvoiceNumber+".pdf", sent[0].Attachments[0].Filename)
	assert.True(t, bytes.HasPrefix(sent[0].Attachments[0].Content, []byte("%PDF-")))

	job, err := f.queue.GetByID(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, entity.EmailStatusSent, job.Status)
	assert.Equal(t, "mock-1", job.ResendID)
}

func TestWorker_TemporaryFailureIsRetried(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()
	jobID := f.queueInvoice(t)

	f.sender.SetFailure(errors.New("503 service unavailable"), false)
	f.worker.ProcessNow(ctx)

	job, err := f.queue.GetByID(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, entity.EmailStatusPending, job.Status)
	assert.Equal(t, 1, job.Attempts)
	assert.True(t, job.ScheduledAt.After(time.Now().UTC()))

	inv, err := f.invoiceRepo.FindByID(ctx, f.invoice.TenantID, f.invoice.ID)
	require.NoError(t, err)
	assert.Empty(t, inv.EmailHistory)
}

func TestWorker_PermanentFailureRecordsHistory(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()
	jobID := f.queueInvoice(t)

	f.sender.SetFailure(errors.New("422 invalid recipient"), true)
	f.worker.ProcessNow(ctx)

	job, err := f.queue.GetByID(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, entity.EmailStatusFailed, job.Status)

	inv, err := f.invoiceRepo.FindByID(ctx, f.invoice.TenantID, f.invoice.ID)
	require.NoError(t, err)
	require.Len(t, inv.EmailHistory, 1)
	assert.Equal(t, entity.InvoiceEventEmailFailed, inv.EmailHistory[0].Event)
	require.NotNil(t, inv.EmailHistory[0].EmailJobID)
	assert.Equal(t, jobID, *inv.EmailHistory[0].EmailJobID)
}

func TestWorker_PaymentReceipt(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()

	_, err := f.service.QueuePaymentReceipt(ctx, adapter.QueuePaymentReceiptInput{
		TenantID:       f.invoice.TenantID,
		InvoiceID:      f.invoice.ID,
		InvoiceNumber:  f.invoice.InvoiceNumber,
		RecipientEmail: "billing@acme.test",
		Amount:         decimal.NewFromInt(500),
		AmountDue:      decimal.Zero,
		Currency:       "USD",
		PaymentDate:    "2024-03-05",
		Method:         "bank",
	})
	require.NoError(t, err)

	f.worker.ProcessNow(ctx)

	sent := f.sender.Sent()
	require.Len(t, sent, 1)
	assert.Empty(t, sent[0].Attachments)
	assert.Contains(t, sent[0].HTML, "paid in full")
	assert.Contains(t, sent[0].Text, "USD 500.00")
}
