// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// InvoiceStatus represents where an invoice is in its lifecycle.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusViewed    InvoiceStatus = "viewed"
	InvoiceStatusPartial   InvoiceStatus = "partial"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// invoiceStatusRank orders the payment driven progression. Overdue and
// cancelled sit outside it.
var invoiceStatusRank = map[InvoiceStatus]int{
	InvoiceStatusDraft:   0,
	InvoiceStatusSent:    1,
	InvoiceStatusViewed:  2,
	InvoiceStatusPartial: 3,
	InvoiceStatusPaid:    4,
}

// IsValid reports whether s is a known status.
func (s InvoiceStatus) IsValid() bool {
	if _, ok := invoiceStatusRank[s]; ok {
		return true
	}
	return s == InvoiceStatusOverdue || s == InvoiceStatusCancelled
}

// IsTerminal reports whether no further transition is possible.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// DefaultPaymentTermsDays is used when an invoice is created without a due date.
const DefaultPaymentTermsDays = 30

// Invoice is the aggregate root for billing. Line items and payments are owned by it.
type Invoice struct {
	ID                  uuid.UUID
	TenantID            uuid.UUID
	ClientID            uuid.UUID
	ProjectID           *uuid.UUID
	InvoiceNumber       string
	IssueDate           time.Time
	DueDate             time.Time
	Status              InvoiceStatus
	Currency            string
	Subtotal            decimal.Decimal
	TaxRate             decimal.Decimal
	TaxAmount           decimal.Decimal
	DiscountType        valueobject.DiscountType
	DiscountValue       decimal.Decimal
	DiscountAmount      decimal.Decimal
	ShippingAmount      decimal.Decimal
	ShippingTaxRate     decimal.Decimal
	ShippingTaxAmount   decimal.Decimal
	Total               decimal.Decimal
	AmountPaid          decimal.Decimal
	Notes               string
	Terms               string
	RecurringTemplateID *uuid.UUID
	RecurrenceDate      *time.Time
	Version             int
	SentAt              *time.Time
	ViewedAt            *time.Time
	PaidAt              *time.Time
	CancelledAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	LineItems    []*LineItem
	Payments     []*InvoicePayment
	EmailHistory []*InvoiceEmailHistory
}

// LineItem is a single billable row on an invoice or recurring template.
type LineItem struct {
	ID             uuid.UUID
	InvoiceID      uuid.UUID
	Position       int
	Description    string
	Quantity       decimal.Decimal
	Rate           decimal.Decimal
	Amount         decimal.Decimal
	AmountOverride *decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountType   valueobject.DiscountType
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal
	ProjectID      *uuid.UUID
	TaskID         *uuid.UUID
	Category       string
	Hours          *decimal.Decimal
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
	Notes          string
}

// InvoicePayment is an immutable payment record.
type InvoicePayment struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
	Date      time.Time
	Method    string
	Reference string
	Notes     string
	CreatedAt time.Time
}

// NewInvoice creates a draft invoice. The number is assigned on persistence.
func NewInvoice(tenantID, clientID uuid.UUID, projectID *uuid.UUID, issueDate, dueDate time.Time, currency string) *Invoice {
	now := time.Now().UTC()

	return &Invoice{
		ID:        uuid.New(),
		TenantID:  tenantID,
		ClientID:  clientID,
		ProjectID: projectID,
		IssueDate: issueDate,
		DueDate:   dueDate,
		Status:    InvoiceStatusDraft,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewInvoicePayment creates a payment for the given invoice.
func NewInvoicePayment(tenantID, invoiceID uuid.UUID, amount decimal.Decimal, date time.Time, method, reference, notes string) *InvoicePayment {
	return &InvoicePayment{
		ID:        uuid.New(),
		TenantID:  tenantID,
		InvoiceID: invoiceID,
		Amount:    amount,
		Date:      date,
		Method:    method,
		Reference: reference,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
}

// AmountDue returns the outstanding balance, never negative.
func (i *Invoice) AmountDue() decimal.Decimal {
	return valueobject.AmountDue(i.Total, i.AmountPaid)
}

// TotalsInput gathers the priced fields of the invoice and its line items.
func (i *Invoice) TotalsInput() valueobject.TotalsInput {
	lines := make([]valueobject.LineInput, len(i.LineItems))
	for idx, item := range i.LineItems {
		lines[idx] = item.LineInput()
	}

	return valueobject.TotalsInput{
		Lines:           lines,
		TaxRate:         i.TaxRate,
		DiscountType:    i.DiscountType,
		DiscountValue:   i.DiscountValue,
		ShippingAmount:  i.ShippingAmount,
		ShippingTaxRate: i.ShippingTaxRate,
	}
}

// Recalculate re-derives every computed amount from the line items and rates.
func (i *Invoice) Recalculate() error {
	totals, err := valueobject.ComputeTotals(i.TotalsInput())
	if err != nil {
		return err
	}

	for idx, lt := range totals.Lines {
		item := i.LineItems[idx]
		item.Position = idx
		item.Amount = lt.Amount
		item.TaxAmount = lt.TaxAmount
		item.DiscountAmount = lt.DiscountAmount
	}

	i.Subtotal = totals.Subtotal
	i.TaxAmount = totals.TaxAmount
	i.DiscountAmount = totals.DiscountAmount
	i.ShippingAmount = totals.ShippingAmount
	i.ShippingTaxAmount = totals.ShippingTaxAmount
	i.Total = totals.Total
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// IsEditable reports whether line items and rates may still change.
// Partial, paid and cancelled invoices are locked.
func (i *Invoice) IsEditable() bool {
	switch i.Status {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusViewed, InvoiceStatusOverdue:
		return true
	default:
		return false
	}
}

// CheckPayment validates a prospective payment without mutating the invoice.
func (i *Invoice) CheckPayment(amount decimal.Decimal) error {
	if i.Status == InvoiceStatusCancelled {
		return domainerror.NewPaymentError(
			domainerror.ErrCodePaymentOnCancelledInvoice,
			"cannot record payment on a cancelled invoice",
			domainerror.ErrPaymentOnCancelledInvoice,
		)
	}
	if !amount.IsPositive() {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"payment amount must be greater than zero",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	if i.AmountPaid.Add(amount).GreaterThan(i.Total) {
		return domainerror.NewOverpaymentError(i.AmountDue())
	}
	return nil
}

// ApplyPayment adds amount to the paid balance and advances the status.
// The status never moves backwards and paid or cancelled invoices stay put.
func (i *Invoice) ApplyPayment(amount decimal.Decimal, at time.Time) error {
	if err := i.CheckPayment(amount); err != nil {
		return err
	}

	i.AmountPaid = i.AmountPaid.Add(amount)
	i.Status = StatusAfterPayment(i.Status, i.Total, i.AmountPaid)
	if i.Status == InvoiceStatusPaid && i.PaidAt == nil {
		i.PaidAt = &at
	}
	i.UpdatedAt = at
	return nil
}

// StatusAfterPayment derives the status once paid has been recorded against total.
// Overdue invoices stay overdue until they are fully paid.
func StatusAfterPayment(current InvoiceStatus, total, paid decimal.Decimal) InvoiceStatus {
	if current.IsTerminal() {
		return current
	}
	if paid.GreaterThanOrEqual(total) {
		return InvoiceStatusPaid
	}
	if !paid.IsPositive() || current == InvoiceStatusOverdue {
		return current
	}
	if invoiceStatusRank[current] < invoiceStatusRank[InvoiceStatusPartial] {
		return InvoiceStatusPartial
	}
	return current
}

// MarkSent moves a draft to sent. Invoices further along keep their status.
func (i *Invoice) MarkSent(at time.Time) error {
	if i.Status == InvoiceStatusCancelled {
		return invalidTransition(i.Status, InvoiceStatusSent)
	}
	if i.Status == InvoiceStatusDraft {
		i.Status = InvoiceStatusSent
	}
	if i.SentAt == nil {
		i.SentAt = &at
	}
	i.UpdatedAt = at
	return nil
}

// MarkViewed records that the client opened the invoice.
func (i *Invoice) MarkViewed(at time.Time) error {
	switch i.Status {
	case InvoiceStatusDraft, InvoiceStatusCancelled:
		return invalidTransition(i.Status, InvoiceStatusViewed)
	case InvoiceStatusSent:
		i.Status = InvoiceStatusViewed
	}
	if i.ViewedAt == nil {
		i.ViewedAt = &at
	}
	i.UpdatedAt = at
	return nil
}

// Cancel voids the invoice. Paid invoices cannot be cancelled.
func (i *Invoice) Cancel(at time.Time) error {
	if i.Status.IsTerminal() {
		return invalidTransition(i.Status, InvoiceStatusCancelled)
	}
	i.Status = InvoiceStatusCancelled
	i.CancelledAt = &at
	i.UpdatedAt = at
	return nil
}

// MarkOverdue flags an unpaid, already delivered invoice whose due date has passed.
// It reports whether the status changed.
func (i *Invoice) MarkOverdue(today time.Time) bool {
	switch i.Status {
	case InvoiceStatusSent, InvoiceStatusViewed, InvoiceStatusPartial:
	default:
		return false
	}
	if !i.DueDate.Before(today) {
		return false
	}
	i.Status = InvoiceStatusOverdue
	i.UpdatedAt = time.Now().UTC()
	return true
}

// LineInput extracts the priced fields of the line item.
func (l *LineItem) LineInput() valueobject.LineInput {
	return valueobject.LineInput{
		Quantity:       l.Quantity,
		Rate:           l.Rate,
		AmountOverride: l.AmountOverride,
		TaxRate:        l.TaxRate,
		DiscountType:   l.DiscountType,
		DiscountValue:  l.DiscountValue,
	}
}

// Clone copies the line item under a new ID for another invoice.
func (l *LineItem) Clone(invoiceID uuid.UUID) *LineItem {
	c := *l
	c.ID = uuid.New()
	c.InvoiceID = invoiceID
	return &c
}

func invalidTransition(from, to InvoiceStatus) error {
	return domainerror.NewInvoiceError(
		domainerror.ErrCodeInvalidStatusTransition,
		"cannot move invoice from "+string(from)+" to "+string(to),
		domainerror.ErrInvalidStatusTransition,
	)
}

// InvoiceListResult represents the result of listing invoices.
type InvoiceListResult struct {
	Invoices   []*Invoice
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
