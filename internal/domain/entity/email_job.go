package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus represents the status of an email job in the queue.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType represents the type of email template.
type EmailTemplateType string

const (
	TemplateInvoice        EmailTemplateType = "invoice"
	TemplatePaymentReceipt EmailTemplateType = "payment_receipt"
)

// EmailJob is one outbound message. Invoice mail carries InvoiceID so the PDF
// can be attached at send time.
type EmailJob struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	InvoiceID      *uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]interface{}
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ResendID       string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob creates a new EmailJob with default values.
func NewEmailJob(tenantID uuid.UUID, invoiceID *uuid.UUID, templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]interface{}) *EmailJob {
	now := time.Now().UTC()
	return &EmailJob{
		ID:             uuid.New(),
		TenantID:       tenantID,
		InvoiceID:      invoiceID,
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		Attempts:       0,
		MaxAttempts:    3,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// ClaimLease is how long a claimed job stays invisible to other workers. A job
// still processing once its lease expires is claimed again.
const ClaimLease = 2 * time.Minute

// Claim hands the job to a worker until now+ClaimLease.
func (e *EmailJob) Claim(now time.Time) {
	e.Status = EmailStatusProcessing
	e.ScheduledAt = now.Add(ClaimLease)
}

// MarkSent marks the email job as successfully sent.
func (e *EmailJob) MarkSent(resendID string) {
	e.Status = EmailStatusSent
	e.ResendID = resendID
	now := time.Now().UTC()
	e.ProcessedAt = &now
}

// MarkFailed records a delivery attempt. Retryable failures go back to pending
// with a backoff; permanent failures and exhausted jobs end as failed.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	e.Attempts++
	e.LastError = err.Error()

	now := time.Now().UTC()
	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = now.Add(retryDelay(e.Attempts))
}

var retryDelays = []time.Duration{0, time.Minute, 5 * time.Minute}

func retryDelay(attempts int) time.Duration {
	if attempts < len(retryDelays) {
		return retryDelays[attempts]
	}
	return retryDelays[len(retryDelays)-1]
}
