// Package recurring contains recurring invoice template use cases and the
// generator that materializes due invoices and tasks.
package recurring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/application/usecase/invoice"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// TemplateInput holds the fields shared by template creation and replacement.
type TemplateInput struct {
	ClientID         uuid.UUID
	ProjectID        *uuid.UUID
	Name             string
	Frequency        valueobject.Frequency
	Interval         int
	StartDate        time.Time
	EndDate          *time.Time
	AutoSend         bool
	Currency         string
	PaymentTermsDays *int
	TaxRate          decimal.Decimal
	DiscountType     valueobject.DiscountType
	DiscountValue    decimal.Decimal
	ShippingAmount   decimal.Decimal
	ShippingTaxRate  decimal.Decimal
	Notes            string
	Terms            string
	LineItems        []invoice.LineItemInput
}

func recurringError(code domainerror.RecurringErrorCode, msg string, err error) error {
	return domainerror.NewRecurringError(code, msg, err)
}

func templateNotFound() error {
	return recurringError(
		domainerror.ErrCodeRecurringTemplateNotFound,
		"recurring invoice template not found",
		domainerror.ErrRecurringTemplateNotFound,
	)
}

func findTemplate(ctx context.Context, repo adapter.RecurringInvoiceRepository, tenantID, id uuid.UUID) (*entity.RecurringInvoiceTemplate, error) {
	tpl, err := repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecurringTemplateNotFound) {
			return nil, templateNotFound()
		}
		return nil, fmt.Errorf("failed to find recurring template: %w", err)
	}
	return tpl, nil
}

// templateValidator checks references owned by other aggregates.
type templateValidator struct {
	clientRepo  adapter.ClientRepository
	projectRepo adapter.ProjectRepository
}

func (v templateValidator) check(ctx context.Context, tenantID uuid.UUID, clientID uuid.UUID, projectID *uuid.UUID) (*entity.Client, error) {
	client, err := v.clientRepo.FindByID(ctx, tenantID, clientID)
	if err != nil {
		if errors.Is(err, domainerror.ErrClientNotFound) {
			return nil, recurringError(domainerror.ErrCodeRecurringClientNotFound, "client not found", domainerror.ErrClientNotFound)
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	if projectID != nil {
		if _, err := v.projectRepo.FindByID(ctx, tenantID, *projectID); err != nil {
			if errors.Is(err, domainerror.ErrProjectNotFound) {
				return nil, recurringError(domainerror.ErrCodeRecurringProjectNotFound, "project not found", domainerror.ErrProjectNotFound)
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
	}
	return client, nil
}

// apply validates input and writes it onto tpl, rebuilding line items. The
// schedule is re-anchored on the start date while nothing has been generated yet.
func apply(tpl *entity.RecurringInvoiceTemplate, input TemplateInput, defaultCurrency string) error {
	if strings.TrimSpace(input.Name) == "" {
		return recurringError(domainerror.ErrCodeMissingRecurringFields, "name is required", nil)
	}
	if input.StartDate.IsZero() {
		return recurringError(domainerror.ErrCodeMissingRecurringFields, "start_date is required", nil)
	}

	recurrence, err := valueobject.NewRecurrence(input.Frequency, input.Interval)
	if err != nil {
		return recurringError(domainerror.ErrCodeInvalidRecurrence, err.Error(), domainerror.ErrInvalidRecurrence)
	}

	start := valueobject.DateOnly(input.StartDate)
	var end *time.Time
	if input.EndDate != nil {
		e := valueobject.DateOnly(*input.EndDate)
		if e.Before(start) {
			return recurringError(
				domainerror.ErrCodeInvalidRecurrenceDates,
				"end_date must not precede start_date",
				domainerror.ErrInvalidRecurrenceDates,
			)
		}
		end = &e
	}

	if len(input.LineItems) == 0 {
		return recurringError(
			domainerror.ErrCodeTemplateHasNoLineItems,
			"at least one line item is required",
			domainerror.ErrTemplateHasNoLineItems,
		)
	}
	items, err := invoice.BuildLineItems(tpl.ID, input.LineItems)
	if err != nil {
		return err
	}
	terms := entity.DefaultPaymentTermsDays
	if input.PaymentTermsDays != nil {
		if *input.PaymentTermsDays < 0 {
			return recurringError(domainerror.ErrCodeInvalidRecurringTemplate, "payment_terms_days must not be negative", nil)
		}
		terms = *input.PaymentTermsDays
	}

	discountType := input.DiscountType
	if discountType == "" {
		discountType = valueobject.DiscountTypeFixed
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	tpl.ClientID = input.ClientID
	tpl.ProjectID = input.ProjectID
	tpl.Name = strings.TrimSpace(input.Name)
	tpl.Recurrence = recurrence
	tpl.EndDate = end
	tpl.AutoSend = input.AutoSend
	tpl.Currency = currency
	tpl.PaymentTermsDays = terms
	tpl.TaxRate = input.TaxRate
	tpl.DiscountType = discountType
	tpl.DiscountValue = input.DiscountValue
	tpl.ShippingAmount = input.ShippingAmount
	tpl.ShippingTaxRate = input.ShippingTaxRate
	tpl.Notes = input.Notes
	tpl.Terms = input.Terms
	tpl.LineItems = items

	tpl.StartDate = start
	if tpl.LastGeneratedDate == nil {
		tpl.AnchorDay = start.Day()
		tpl.NextGenerationDate = start
	}
	if tpl.EndDate != nil && tpl.NextGenerationDate.After(*tpl.EndDate) {
		tpl.Active = false
	}
	tpl.UpdatedAt = time.Now().UTC()

	// A dry run of the ledger rejects rates and discounts an invoice would refuse.
	if _, err := tpl.BuildInvoice(); err != nil {
		return err
	}
	return nil
}

func currencyFor(client *entity.Client) string {
	if client != nil && client.Currency != "" {
		return client.Currency
	}
	return invoice.DefaultCurrency
}
