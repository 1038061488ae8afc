package entity

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceEvent is a delivery or lifecycle event recorded against an invoice.
type InvoiceEvent string

const (
	InvoiceEventSent        InvoiceEvent = "sent"
	InvoiceEventViewed      InvoiceEvent = "viewed"
	InvoiceEventCancelled   InvoiceEvent = "cancelled"
	InvoiceEventReminder    InvoiceEvent = "reminder"
	InvoiceEventReceipt     InvoiceEvent = "receipt"
	InvoiceEventEmailFailed InvoiceEvent = "email_failed"
)

// InvoiceEmailHistory is one entry in an invoice's delivery log.
type InvoiceEmailHistory struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	InvoiceID      uuid.UUID
	Event          InvoiceEvent
	RecipientEmail string
	EmailJobID     *uuid.UUID
	Message        string
	CreatedAt      time.Time
}

// NewInvoiceEmailHistory creates a history entry stamped now.
func NewInvoiceEmailHistory(tenantID, invoiceID uuid.UUID, event InvoiceEvent, recipient string, jobID *uuid.UUID, message string) *InvoiceEmailHistory {
	return &InvoiceEmailHistory{
		ID:             uuid.New(),
		TenantID:       tenantID,
		InvoiceID:      invoiceID,
		Event:          event,
		RecipientEmail: recipient,
		EmailJobID:     jobID,
		Message:        message,
		CreatedAt:      time.Now().UTC(),
	}
}
