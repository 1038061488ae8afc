package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/email/templates"
)

// Worker processes the email queue and sends emails.
type Worker struct {
	queue        adapter.EmailQueueRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	pollInterval time.Duration
	batchSize    int

	invoiceRepo adapter.InvoiceRepository
	clientRepo  adapter.ClientRepository
	documents   adapter.InvoiceRenderer
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
	}
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
	}
}

// WithInvoiceDocuments enables PDF attachments on invoice emails and
// email_failed entries in the invoice history.
func (w *Worker) WithInvoiceDocuments(invoiceRepo adapter.InvoiceRepository, clientRepo adapter.ClientRepository, documents adapter.InvoiceRenderer) *Worker {
	w.invoiceRepo = invoiceRepo
	w.clientRepo = clientRepo
	w.documents = documents
	return w
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// ProcessNow processes one batch of pending emails immediately.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}

// CleanupFinishedJobs removes sent and failed jobs older than the given number of days.
func (w *Worker) CleanupFinishedJobs(ctx context.Context, olderThanDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	deleted, err := w.queue.DeleteFinishedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete old email jobs: %w", err)
	}
	if deleted > 0 {
		slog.Info("Deleted old email jobs", "count", deleted, "older_than_days", olderThanDays)
	}
	return nil
}

func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.ClaimDueJobs(ctx, time.Now().UTC(), w.batchSize)
	if err != nil {
		slog.Error("Failed to claim email jobs", "error", err)
		return
	}

	if len(jobs) == 0 {
		return
	}

	slog.Debug("Processing email batch", "count", len(jobs))

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
			w.processJob(ctx, job)
		}
	}
}

func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"recipient", job.RecipientEmail,
	)

	html, text, err := w.renderTemplate(job)
	if err != nil {
		logger.Error("Failed to render email template", "error", err)
		w.handleFailure(ctx, job, err, true)
		return
	}

	attachments, err := w.attachments(ctx, job)
	if err != nil {
		logger.Error("Failed to render invoice attachment", "error", err)
		w.handleFailure(ctx, job, err, false)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:          job.RecipientEmail,
		Name:        job.RecipientName,
		Subject:     job.Subject,
		HTML:        html,
		Text:        text,
		Attachments: attachments,
	})
	if err != nil {
		logger.Error("Failed to send email", "error", err)

		w.handleFailure(ctx, job, err, domainerror.IsPermanentEmailFailure(err))
		return
	}

	job.MarkSent(result.ResendID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}

	logger.Info("Email sent successfully", "resend_id", result.ResendID)
}

func (w *Worker) renderTemplate(job *entity.EmailJob) (html string, text string, err error) {
	var data interface{}
	switch job.TemplateType {
	case entity.TemplateInvoice:
		data = templates.InvoiceData{
			RecipientName: job.RecipientName,
			InvoiceNumber: getString(job.TemplateData, "invoice_number"),
			Total:         getString(job.TemplateData, "total"),
			AmountDue:     getString(job.TemplateData, "amount_due"),
			DueDate:       getString(job.TemplateData, "due_date"),
			Message:       getString(job.TemplateData, "message"),
			InvoiceURL:    getString(job.TemplateData, "invoice_url"),
		}
	case entity.TemplatePaymentReceipt:
		data = templates.PaymentReceiptData{
			RecipientName: job.RecipientName,
			InvoiceNumber: getString(job.TemplateData, "invoice_number"),
			Amount:        getString(job.TemplateData, "amount"),
			AmountDue:     getString(job.TemplateData, "amount_due"),
			PaymentDate:   getString(job.TemplateData, "payment_date"),
			Method:        getString(job.TemplateData, "method"),
			PaidInFull:    getBool(job.TemplateData, "paid_in_full"),
		}
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeUnknownEmailTemplate,
			"unknown template type "+string(job.TemplateType),
			domainerror.ErrUnknownEmailTemplate,
		)
	}

	return w.renderer.Render(string(job.TemplateType), data)
}

// attachments renders the invoice PDF for invoice emails. Other jobs carry none.
func (w *Worker) attachments(ctx context.Context, job *entity.EmailJob) ([]adapter.EmailAttachment, error) {
	if job.TemplateType != entity.TemplateInvoice || job.InvoiceID == nil || w.documents == nil {
		return nil, nil
	}

	invoice, err := w.invoiceRepo.FindByID(ctx, job.TenantID, *job.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	client, err := w.clientRepo.FindByID(ctx, job.TenantID, invoice.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}

	content, err := w.documents.RenderPDF(ctx, invoice, client)
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailAttachmentFailed,
			"failed to render invoice "+invoice.InvoiceNumber,
			err,
		)
	}

	return []adapter.EmailAttachment{{
		Filename: invoice.InvoiceNumber + ".pdf",
		Content:  content,
	}}, nil
}

func (w *Worker) handleFailure(ctx context.Context, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		slog.Error("Failed to update job after failure",
			"job_id", job.ID,
			"error", updateErr,
		)
	}

	if job.Status != entity.EmailStatusFailed {
		slog.Info("Email job scheduled for retry",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"scheduled_at", job.ScheduledAt,
		)
		return
	}

	slog.Warn("Email job permanently failed",
		"job_id", job.ID,
		"attempts", job.Attempts,
		"last_error", job.LastError,
	)

	if job.InvoiceID == nil || w.invoiceRepo == nil {
		return
	}
	jobID := job.ID
	entry := entity.NewInvoiceEmailHistory(job.TenantID, *job.InvoiceID, entity.InvoiceEventEmailFailed, job.RecipientEmail, &jobID, job.LastError)
	if err := w.invoiceRepo.AddHistory(ctx, entry); err != nil {
		slog.Error("Failed to record email failure", "job_id", job.ID, "invoice_id", *job.InvoiceID, "error", err)
	}
}

func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getBool(data map[string]interface{}, key string) bool {
	v, ok := data[key].(bool)
	return ok && v
}
