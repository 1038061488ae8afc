package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/usecase/invoice"
	"github.com/agency-crm/backend/internal/domain/entity"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// LineItemRequest is a line item in invoice and recurring template requests.
// Amount overrides quantity times rate when set.
type LineItemRequest struct {
	Description   string           `json:"description" binding:"required,max=500"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Rate          decimal.Decimal  `json:"rate"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	TaxRate       decimal.Decimal  `json:"tax_rate"`
	DiscountType  string           `json:"discount_type,omitempty" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue decimal.Decimal  `json:"discount_value"`
	ProjectID     *string          `json:"project_id,omitempty"`
	TaskID        *string          `json:"task_id,omitempty"`
	Category      string           `json:"category,omitempty"`
	Hours         *decimal.Decimal `json:"hours,omitempty"`
	PeriodStart   *string          `json:"period_start,omitempty"`
	PeriodEnd     *string          `json:"period_end,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// ToLineItemInputs converts line item requests into use case input.
func ToLineItemInputs(reqs []LineItemRequest) ([]invoice.LineItemInput, error) {
	inputs := make([]invoice.LineItemInput, len(reqs))
	for i, r := range reqs {
		projectID, err := ParseOptionalID(r.ProjectID)
		if err != nil {
			return nil, err
		}
		taskID, err := ParseOptionalID(r.TaskID)
		if err != nil {
			return nil, err
		}
		periodStart, err := ParseOptionalDate(r.PeriodStart)
		if err != nil {
			return nil, err
		}
		periodEnd, err := ParseOptionalDate(r.PeriodEnd)
		if err != nil {
			return nil, err
		}

		inputs[i] = invoice.LineItemInput{
			Description:    r.Description,
			Quantity:       r.Quantity,
			Rate:           r.Rate,
			AmountOverride: r.Amount,
			TaxRate:        r.TaxRate,
			DiscountType:   valueobject.DiscountType(r.DiscountType),
			DiscountValue:  r.DiscountValue,
			ProjectID:      projectID,
			TaskID:         taskID,
			Category:       r.Category,
			Hours:          r.Hours,
			PeriodStart:    periodStart,
			PeriodEnd:      periodEnd,
			Notes:          r.Notes,
		}
	}
	return inputs, nil
}

// CreateInvoiceRequest represents the request body for invoice creation.
type CreateInvoiceRequest struct {
	ClientID         string            `json:"client_id" binding:"required,uuid"`
	ProjectID        *string           `json:"project_id,omitempty"`
	IssueDate        *string           `json:"issue_date,omitempty"`
	DueDate          *string           `json:"due_date,omitempty"`
	PaymentTermsDays *int              `json:"payment_terms_days,omitempty" binding:"omitempty,min=0"`
	Currency         string            `json:"currency,omitempty" binding:"omitempty,len=3"`
	TaxRate          decimal.Decimal   `json:"tax_rate"`
	DiscountType     string            `json:"discount_type,omitempty" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue    decimal.Decimal   `json:"discount_value"`
	ShippingAmount   decimal.Decimal   `json:"shipping_amount"`
	ShippingTaxRate  decimal.Decimal   `json:"shipping_tax_rate"`
	Notes            string            `json:"notes,omitempty" binding:"omitempty,max=2000"`
	Terms            string            `json:"terms,omitempty" binding:"omitempty,max=2000"`
	LineItems        []LineItemRequest `json:"line_items" binding:"dive"`
}

// ToInput converts the request into use case input for tenantID.
func (r CreateInvoiceRequest) ToInput(tenantID uuid.UUID) (invoice.CreateInvoiceInput, error) {
	clientID, err := uuid.Parse(r.ClientID)
	if err != nil {
		return invoice.CreateInvoiceInput{}, ErrInvalidID
	}
	projectID, err := ParseOptionalID(r.ProjectID)
	if err != nil {
		return invoice.CreateInvoiceInput{}, err
	}
	issueDate, err := ParseOptionalDate(r.IssueDate)
	if err != nil {
		return invoice.CreateInvoiceInput{}, err
	}
	dueDate, err := ParseOptionalDate(r.DueDate)
	if err != nil {
		return invoice.CreateInvoiceInput{}, err
	}
	items, err := ToLineItemInputs(r.LineItems)
	if err != nil {
		return invoice.CreateInvoiceInput{}, err
	}

	return invoice.CreateInvoiceInput{
		TenantID:         tenantID,
		ClientID:         clientID,
		ProjectID:        projectID,
		IssueDate:        issueDate,
		DueDate:          dueDate,
		PaymentTermsDays: r.PaymentTermsDays,
		Currency:         r.Currency,
		TaxRate:          r.TaxRate,
		DiscountType:     valueobject.DiscountType(r.DiscountType),
		DiscountValue:    r.DiscountValue,
		ShippingAmount:   r.ShippingAmount,
		ShippingTaxRate:  r.ShippingTaxRate,
		Notes:            r.Notes,
		Terms:            r.Terms,
		LineItems:        items,
	}, nil
}

// UpdateInvoiceRequest represents the request body for invoice update.
// Omitted fields keep their stored value; line_items replaces all line items.
type UpdateInvoiceRequest struct {
	ClientID        *string            `json:"client_id,omitempty"`
	ProjectID       *string            `json:"project_id,omitempty"`
	IssueDate       *string            `json:"issue_date,omitempty"`
	DueDate         *string            `json:"due_date,omitempty"`
	Currency        *string            `json:"currency,omitempty" binding:"omitempty,len=3"`
	TaxRate         *decimal.Decimal   `json:"tax_rate,omitempty"`
	DiscountType    *string            `json:"discount_type,omitempty" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue   *decimal.Decimal   `json:"discount_value,omitempty"`
	ShippingAmount  *decimal.Decimal   `json:"shipping_amount,omitempty"`
	ShippingTaxRate *decimal.Decimal   `json:"shipping_tax_rate,omitempty"`
	Notes           *string            `json:"notes,omitempty" binding:"omitempty,max=2000"`
	Terms           *string            `json:"terms,omitempty" binding:"omitempty,max=2000"`
	LineItems       *[]LineItemRequest `json:"line_items,omitempty" binding:"omitempty,dive"`
}

// ToInput converts the request into use case input.
func (r UpdateInvoiceRequest) ToInput(tenantID, invoiceID uuid.UUID) (invoice.UpdateInvoiceInput, error) {
	input := invoice.UpdateInvoiceInput{
		TenantID:        tenantID,
		InvoiceID:       invoiceID,
		Currency:        r.Currency,
		TaxRate:         r.TaxRate,
		DiscountValue:   r.DiscountValue,
		ShippingAmount:  r.ShippingAmount,
		ShippingTaxRate: r.ShippingTaxRate,
		Notes:           r.Notes,
		Terms:           r.Terms,
	}

	var err error
	if input.ClientID, err = ParseOptionalID(r.ClientID); err != nil {
		return input, err
	}
	if input.ProjectID, err = ParseOptionalID(r.ProjectID); err != nil {
		return input, err
	}
	if input.IssueDate, err = ParseOptionalDate(r.IssueDate); err != nil {
		return input, err
	}
	if input.DueDate, err = ParseOptionalDate(r.DueDate); err != nil {
		return input, err
	}
	if r.DiscountType != nil {
		dt := valueobject.DiscountType(*r.DiscountType)
		input.DiscountType = &dt
	}
	if r.LineItems != nil {
		items, err := ToLineItemInputs(*r.LineItems)
		if err != nil {
			return input, err
		}
		input.LineItems = &items
	}
	return input, nil
}

// SendInvoiceRequest represents the optional request body for sending an invoice.
type SendInvoiceRequest struct {
	RecipientEmail string `json:"recipient_email,omitempty" binding:"omitempty,email"`
	Message        string `json:"message,omitempty" binding:"omitempty,max=2000"`
}

// CancelInvoiceRequest represents the optional request body for cancelling an invoice.
type CancelInvoiceRequest struct {
	Reason string `json:"reason,omitempty" binding:"omitempty,max=1000"`
}

// LineItemResponse represents a line item in API responses.
type LineItemResponse struct {
	ID             string  `json:"id"`
	Position       int     `json:"position"`
	Description    string  `json:"description"`
	Quantity       string  `json:"quantity"`
	Rate           string  `json:"rate"`
	Amount         string  `json:"amount"`
	TaxRate        string  `json:"tax_rate"`
	TaxAmount      string  `json:"tax_amount"`
	DiscountType   string  `json:"discount_type,omitempty"`
	DiscountValue  string  `json:"discount_value"`
	DiscountAmount string  `json:"discount_amount"`
	ProjectID      *string `json:"project_id,omitempty"`
	TaskID         *string `json:"task_id,omitempty"`
	Category       string  `json:"category,omitempty"`
	Hours          *string `json:"hours,omitempty"`
	PeriodStart    *string `json:"period_start,omitempty"`
	PeriodEnd      *string `json:"period_end,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// PaymentResponse represents an invoice payment in API responses.
type PaymentResponse struct {
	ID        string    `json:"id"`
	InvoiceID string    `json:"invoice_id"`
	Amount    string    `json:"amount"`
	Date      string    `json:"date"`
	Method    string    `json:"method"`
	Reference string    `json:"reference,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// InvoiceHistoryResponse represents an email history entry in API responses.
type InvoiceHistoryResponse struct {
	ID             string    `json:"id"`
	Event          string    `json:"event"`
	RecipientEmail string    `json:"recipient_email,omitempty"`
	EmailJobID     *string   `json:"email_job_id,omitempty"`
	Message        string    `json:"message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// InvoiceResponse represents an invoice in API responses. Children are omitted in lists.
type InvoiceResponse struct {
	ID                  string                   `json:"id"`
	InvoiceNumber       string                   `json:"invoice_number"`
	ClientID            string                   `json:"client_id"`
	ProjectID           *string                  `json:"project_id,omitempty"`
	IssueDate           string                   `json:"issue_date"`
	DueDate             string                   `json:"due_date"`
	Status              string                   `json:"status"`
	Currency            string                   `json:"currency"`
	Subtotal            string                   `json:"subtotal"`
	TaxRate             string                   `json:"tax_rate"`
	TaxAmount           string                   `json:"tax_amount"`
	DiscountType        string                   `json:"discount_type"`
	DiscountValue       string                   `json:"discount_value"`
	DiscountAmount      string                   `json:"discount_amount"`
	ShippingAmount      string                   `json:"shipping_amount"`
	ShippingTaxRate     string                   `json:"shipping_tax_rate"`
	ShippingTaxAmount   string                   `json:"shipping_tax_amount"`
	Total               string                   `json:"total"`
	AmountPaid          string                   `json:"amount_paid"`
	AmountDue           string                   `json:"amount_due"`
	Notes               string                   `json:"notes,omitempty"`
	Terms               string                   `json:"terms,omitempty"`
	RecurringTemplateID *string                  `json:"recurring_template_id,omitempty"`
	SentAt              *time.Time               `json:"sent_at,omitempty"`
	ViewedAt            *time.Time               `json:"viewed_at,omitempty"`
	PaidAt              *time.Time               `json:"paid_at,omitempty"`
	CancelledAt         *time.Time               `json:"cancelled_at,omitempty"`
	CreatedAt           time.Time                `json:"created_at"`
	UpdatedAt           time.Time                `json:"updated_at"`
	LineItems           []LineItemResponse       `json:"line_items,omitempty"`
	Payments            []PaymentResponse        `json:"payments,omitempty"`
	EmailHistory        []InvoiceHistoryResponse `json:"email_history,omitempty"`
}

// InvoiceListResponse represents the response for listing invoices.
type InvoiceListResponse struct {
	Invoices   []InvoiceResponse  `json:"invoices"`
	Pagination PaginationResponse `json:"pagination"`
}

// SendInvoiceResponse represents the response for sending an invoice.
type SendInvoiceResponse struct {
	Invoice    InvoiceResponse `json:"invoice"`
	EmailJobID string          `json:"email_job_id"`
	Recipient  string          `json:"recipient"`
}

// ToInvoiceResponse converts an invoice entity to its API representation.
func ToInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:                  inv.ID.String(),
		InvoiceNumber:       inv.InvoiceNumber,
		ClientID:            inv.ClientID.String(),
		ProjectID:           formatOptionalID(inv.ProjectID),
		IssueDate:           formatDate(inv.IssueDate),
		DueDate:             formatDate(inv.DueDate),
		Status:              string(inv.Status),
		Currency:            inv.Currency,
		Subtotal:            money(inv.Subtotal),
		TaxRate:             inv.TaxRate.String(),
		TaxAmount:           money(inv.TaxAmount),
		DiscountType:        string(inv.DiscountType),
		DiscountValue:       inv.DiscountValue.String(),
		DiscountAmount:      money(inv.DiscountAmount),
		ShippingAmount:      money(inv.ShippingAmount),
		ShippingTaxRate:     inv.ShippingTaxRate.String(),
		ShippingTaxAmount:   money(inv.ShippingTaxAmount),
		Total:               money(inv.Total),
		AmountPaid:          money(inv.AmountPaid),
		AmountDue:           money(inv.AmountDue()),
		Notes:               inv.Notes,
		Terms:               inv.Terms,
		RecurringTemplateID: formatOptionalID(inv.RecurringTemplateID),
		SentAt:              inv.SentAt,
		ViewedAt:            inv.ViewedAt,
		PaidAt:              inv.PaidAt,
		CancelledAt:         inv.CancelledAt,
		CreatedAt:           inv.CreatedAt,
		UpdatedAt:           inv.UpdatedAt,
		LineItems:           lo.Map(inv.LineItems, func(l *entity.LineItem, _ int) LineItemResponse { return ToLineItemResponse(l) }),
		Payments:            ToPaymentResponses(inv.Payments),
		EmailHistory: lo.Map(inv.EmailHistory, func(h *entity.InvoiceEmailHistory, _ int) InvoiceHistoryResponse {
			return InvoiceHistoryResponse{
				ID:             h.ID.String(),
				Event:          string(h.Event),
				RecipientEmail: h.RecipientEmail,
				EmailJobID:     formatOptionalID(h.EmailJobID),
				Message:        h.Message,
				CreatedAt:      h.CreatedAt,
			}
		}),
	}
}

// ToLineItemResponse converts a line item entity.
func ToLineItemResponse(l *entity.LineItem) LineItemResponse {
	resp := LineItemResponse{
		ID:             l.ID.String(),
		Position:       l.Position,
		Description:    l.Description,
		Quantity:       l.Quantity.String(),
		Rate:           money(l.Rate),
		Amount:         money(l.Amount),
		TaxRate:        l.TaxRate.String(),
		TaxAmount:      money(l.TaxAmount),
		DiscountType:   string(l.DiscountType),
		DiscountValue:  l.DiscountValue.String(),
		DiscountAmount: money(l.DiscountAmount),
		ProjectID:      formatOptionalID(l.ProjectID),
		TaskID:         formatOptionalID(l.TaskID),
		Category:       l.Category,
		PeriodStart:    formatOptionalDate(l.PeriodStart),
		PeriodEnd:      formatOptionalDate(l.PeriodEnd),
		Notes:          l.Notes,
	}
	if l.Hours != nil {
		h := l.Hours.String()
		resp.Hours = &h
	}
	return resp
}

// ToPaymentResponses converts payment entities.
func ToPaymentResponses(payments []*entity.InvoicePayment) []PaymentResponse {
	return lo.Map(payments, func(p *entity.InvoicePayment, _ int) PaymentResponse {
		return ToPaymentResponse(p)
	})
}

// ToPaymentResponse converts a payment entity.
func ToPaymentResponse(p *entity.InvoicePayment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID.String(),
		InvoiceID: p.InvoiceID.String(),
		Amount:    money(p.Amount),
		Date:      formatDate(p.Date),
		Method:    p.Method,
		Reference: p.Reference,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

// ToInvoiceListResponse converts a page of invoices.
func ToInvoiceListResponse(result *entity.InvoiceListResult) InvoiceListResponse {
	return InvoiceListResponse{
		Invoices: lo.Map(result.Invoices, func(inv *entity.Invoice, _ int) InvoiceResponse {
			return ToInvoiceResponse(inv)
		}),
		Pagination: PaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
}

// AddPaymentRequest represents the request body for recording a payment.
type AddPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" binding:"required"`
	Method      string          `json:"method" binding:"required,max=50"`
	Reference   string          `json:"reference,omitempty" binding:"omitempty,max=255"`
	Notes       string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
	SendReceipt bool            `json:"send_receipt,omitempty"`
}

// AddPaymentResponse represents the response for a recorded payment.
type AddPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
}

// PaymentListResponse represents the response for listing payments.
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}
