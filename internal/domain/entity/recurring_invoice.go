package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// RecurringInvoiceTemplate generates a new invoice on every occurrence of its schedule.
type RecurringInvoiceTemplate struct {
	ID                 uuid.UUID
	TenantID           uuid.UUID
	ClientID           uuid.UUID
	ProjectID          *uuid.UUID
	Name               string
	Recurrence         valueobject.Recurrence
	StartDate          time.Time
	EndDate            *time.Time
	AnchorDay          int
	NextGenerationDate time.Time
	LastGeneratedDate  *time.Time
	Active             bool
	AutoSend           bool
	Currency           string
	PaymentTermsDays   int
	TaxRate            decimal.Decimal
	DiscountType       valueobject.DiscountType
	DiscountValue      decimal.Decimal
	ShippingAmount     decimal.Decimal
	ShippingTaxRate    decimal.Decimal
	Notes              string
	Terms              string
	LineItems          []*LineItem
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewRecurringInvoiceTemplate creates an active template whose first occurrence is startDate.
func NewRecurringInvoiceTemplate(
	tenantID, clientID uuid.UUID,
	projectID *uuid.UUID,
	name string,
	recurrence valueobject.Recurrence,
	startDate time.Time,
	endDate *time.Time,
) *RecurringInvoiceTemplate {
	now := time.Now().UTC()

	return &RecurringInvoiceTemplate{
		ID:                 uuid.New(),
		TenantID:           tenantID,
		ClientID:           clientID,
		ProjectID:          projectID,
		Name:               name,
		Recurrence:         recurrence,
		StartDate:          startDate,
		EndDate:            endDate,
		AnchorDay:          startDate.Day(),
		NextGenerationDate: startDate,
		Active:             true,
		PaymentTermsDays:   DefaultPaymentTermsDays,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// IsDue reports whether the template should generate an invoice at now.
func (t *RecurringInvoiceTemplate) IsDue(now time.Time) bool {
	if !t.Active {
		return false
	}
	if t.EndDate != nil && t.NextGenerationDate.After(*t.EndDate) {
		return false
	}
	return valueobject.IsDue(t.NextGenerationDate, now)
}

// Advance records a generation for the current occurrence and moves to the next one.
// The template deactivates once the next occurrence falls after EndDate.
func (t *RecurringInvoiceTemplate) Advance() {
	generated := t.NextGenerationDate
	t.LastGeneratedDate = &generated
	t.NextGenerationDate = t.Recurrence.Next(generated, t.AnchorDay)
	if t.EndDate != nil && t.NextGenerationDate.After(*t.EndDate) {
		t.Active = false
	}
	t.UpdatedAt = time.Now().UTC()
}

// BuildInvoice materializes the invoice for the current occurrence.
func (t *RecurringInvoiceTemplate) BuildInvoice() (*Invoice, error) {
	issue := t.NextGenerationDate
	terms := t.PaymentTermsDays
	if terms < 0 {
		terms = DefaultPaymentTermsDays
	}

	invoice := NewInvoice(t.TenantID, t.ClientID, t.ProjectID, issue, issue.AddDate(0, 0, terms), t.Currency)
	invoice.TaxRate = t.TaxRate
	invoice.DiscountType = t.DiscountType
	invoice.DiscountValue = t.DiscountValue
	invoice.ShippingAmount = t.ShippingAmount
	invoice.ShippingTaxRate = t.ShippingTaxRate
	invoice.Notes = t.Notes
	invoice.Terms = t.Terms
	invoice.RecurringTemplateID = &t.ID
	invoice.RecurrenceDate = &issue

	invoice.LineItems = make([]*LineItem, len(t.LineItems))
	for i, item := range t.LineItems {
		invoice.LineItems[i] = item.Clone(invoice.ID)
	}

	if err := invoice.Recalculate(); err != nil {
		return nil, err
	}
	return invoice, nil
}
