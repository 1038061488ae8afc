package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/usecase/recurring"
	"github.com/agency-crm/backend/internal/domain/entity"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// RecurringInvoiceRequest represents the request body for creating or replacing
// a recurring invoice template.
type RecurringInvoiceRequest struct {
	ClientID         string            `json:"client_id" binding:"required,uuid"`
	ProjectID        *string           `json:"project_id,omitempty"`
	Name             string            `json:"name" binding:"required,max=255"`
	Frequency        string            `json:"frequency" binding:"required,oneof=daily weekly monthly quarterly yearly custom_days"`
	Interval         int               `json:"interval,omitempty" binding:"omitempty,min=1"`
	StartDate        string            `json:"start_date" binding:"required"`
	EndDate          *string           `json:"end_date,omitempty"`
	AutoSend         bool              `json:"auto_send,omitempty"`
	Active           *bool             `json:"active,omitempty"`
	Currency         string            `json:"currency,omitempty" binding:"omitempty,len=3"`
	PaymentTermsDays *int              `json:"payment_terms_days,omitempty" binding:"omitempty,min=0"`
	TaxRate          decimal.Decimal   `json:"tax_rate"`
	DiscountType     string            `json:"discount_type,omitempty" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue    decimal.Decimal   `json:"discount_value"`
	ShippingAmount   decimal.Decimal   `json:"shipping_amount"`
	ShippingTaxRate  decimal.Decimal   `json:"shipping_tax_rate"`
	Notes            string            `json:"notes,omitempty" binding:"omitempty,max=2000"`
	Terms            string            `json:"terms,omitempty" binding:"omitempty,max=2000"`
	LineItems        []LineItemRequest `json:"line_items" binding:"required,min=1,dive"`
}

// ToTemplateInput converts the request into the shared template input.
func (r RecurringInvoiceRequest) ToTemplateInput() (recurring.TemplateInput, error) {
	clientID, err := uuid.Parse(r.ClientID)
	if err != nil {
		return recurring.TemplateInput{}, ErrInvalidID
	}
	projectID, err := ParseOptionalID(r.ProjectID)
	if err != nil {
		return recurring.TemplateInput{}, err
	}
	startDate, err := ParseDate(r.StartDate)
	if err != nil {
		return recurring.TemplateInput{}, err
	}
	endDate, err := ParseOptionalDate(r.EndDate)
	if err != nil {
		return recurring.TemplateInput{}, err
	}
	items, err := ToLineItemInputs(r.LineItems)
	if err != nil {
		return recurring.TemplateInput{}, err
	}

	return recurring.TemplateInput{
		ClientID:         clientID,
		ProjectID:        projectID,
		Name:             r.Name,
		Frequency:        valueobject.Frequency(r.Frequency),
		Interval:         r.Interval,
		StartDate:        startDate,
		EndDate:          endDate,
		AutoSend:         r.AutoSend,
		Currency:         r.Currency,
		PaymentTermsDays: r.PaymentTermsDays,
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

// RecurringInvoiceResponse represents a recurring invoice template in API responses.
type RecurringInvoiceResponse struct {
	ID                 string             `json:"id"`
	ClientID           string             `json:"client_id"`
	ProjectID          *string            `json:"project_id,omitempty"`
	Name               string             `json:"name"`
	Frequency          string             `json:"frequency"`
	Interval           int                `json:"interval"`
	StartDate          string             `json:"start_date"`
	EndDate            *string            `json:"end_date,omitempty"`
	NextGenerationDate string             `json:"next_generation_date"`
	LastGeneratedDate  *string            `json:"last_generated_date,omitempty"`
	Active             bool               `json:"active"`
	AutoSend           bool               `json:"auto_send"`
	Currency           string             `json:"currency"`
	PaymentTermsDays   int                `json:"payment_terms_days"`
	TaxRate            string             `json:"tax_rate"`
	DiscountType       string             `json:"discount_type"`
	DiscountValue      string             `json:"discount_value"`
	ShippingAmount     string             `json:"shipping_amount"`
	ShippingTaxRate    string             `json:"shipping_tax_rate"`
	Notes              string             `json:"notes,omitempty"`
	Terms              string             `json:"terms,omitempty"`
	LineItems          []LineItemResponse `json:"line_items,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// RecurringInvoiceListResponse represents the response for listing templates.
type RecurringInvoiceListResponse struct {
	Templates []RecurringInvoiceResponse `json:"templates"`
}

// GenerateDueResponse summarizes a generation run.
type GenerateDueResponse struct {
	TemplatesProcessed      int      `json:"templates_processed"`
	InvoicesCreated         int      `json:"invoices_created"`
	InvoiceIDs              []string `json:"invoice_ids"`
	RecurringTasksProcessed int      `json:"recurring_tasks_processed"`
	TasksCreated            int      `json:"tasks_created"`
	Failures                int      `json:"failures"`
}

// ToRecurringInvoiceResponse converts a template entity.
func ToRecurringInvoiceResponse(t *entity.RecurringInvoiceTemplate) RecurringInvoiceResponse {
	return RecurringInvoiceResponse{
		ID:                 t.ID.String(),
		ClientID:           t.ClientID.String(),
		ProjectID:          formatOptionalID(t.ProjectID),
		Name:               t.Name,
		Frequency:          string(t.Recurrence.Frequency),
		Interval:           t.Recurrence.Interval,
		StartDate:          formatDate(t.StartDate),
		EndDate:            formatOptionalDate(t.EndDate),
		NextGenerationDate: formatDate(t.NextGenerationDate),
		LastGeneratedDate:  formatOptionalDate(t.LastGeneratedDate),
		Active:             t.Active,
		AutoSend:           t.AutoSend,
		Currency:           t.Currency,
		PaymentTermsDays:   t.PaymentTermsDays,
		TaxRate:            t.TaxRate.String(),
		DiscountType:       string(t.DiscountType),
		DiscountValue:      t.DiscountValue.String(),
		ShippingAmount:     money(t.ShippingAmount),
		ShippingTaxRate:    t.ShippingTaxRate.String(),
		Notes:              t.Notes,
		Terms:              t.Terms,
		LineItems:          lo.Map(t.LineItems, func(l *entity.LineItem, _ int) LineItemResponse { return ToLineItemResponse(l) }),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// ToRecurringInvoiceListResponse converts template entities.
func ToRecurringInvoiceListResponse(templates []*entity.RecurringInvoiceTemplate) RecurringInvoiceListResponse {
	return RecurringInvoiceListResponse{
		Templates: lo.Map(templates, func(t *entity.RecurringInvoiceTemplate, _ int) RecurringInvoiceResponse {
			return ToRecurringInvoiceResponse(t)
		}),
	}
}

// ToGenerateDueResponse converts a generation summary.
func ToGenerateDueResponse(out *recurring.GenerateDueOutput) GenerateDueResponse {
	return GenerateDueResponse{
		TemplatesProcessed:      out.TemplatesProcessed,
		InvoicesCreated:         out.InvoicesCreated,
		InvoiceIDs:              lo.Map(out.InvoiceIDs, func(id uuid.UUID, _ int) string { return id.String() }),
		RecurringTasksProcessed: out.RecurringTasksProcessed,
		TasksCreated:            out.TasksCreated,
		Failures:                out.Failures,
	}
}
