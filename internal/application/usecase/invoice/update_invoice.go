package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// UpdateInvoiceInput is a partial invoice edit. Nil fields keep their stored value and a
// nil LineItems keeps the stored line items.
type UpdateInvoiceInput struct {
	TenantID        uuid.UUID
	InvoiceID       uuid.UUID
	ClientID        *uuid.UUID
	ProjectID       *uuid.UUID
	IssueDate       *time.Time
	DueDate         *time.Time
	Currency        *string
	TaxRate         *decimal.Decimal
	DiscountType    *valueobject.DiscountType
	DiscountValue   *decimal.Decimal
	ShippingAmount  *decimal.Decimal
	ShippingTaxRate *decimal.Decimal
	Notes           *string
	Terms           *string
	LineItems       *[]LineItemInput
}

// UpdateInvoiceUseCase merges an edit into an invoice and re-derives its totals.
type UpdateInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	clientRepo  adapter.ClientRepository
	projectRepo adapter.ProjectRepository
}

// NewUpdateInvoiceUseCase creates a new UpdateInvoiceUseCase instance.
func NewUpdateInvoiceUseCase(
	invoiceRepo adapter.InvoiceRepository,
	clientRepo adapter.ClientRepository,
	projectRepo adapter.ProjectRepository,
) *UpdateInvoiceUseCase {
	return &UpdateInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
	}
}

// Execute applies the edit. Totals are always recomputed server side.
func (uc *UpdateInvoiceUseCase) Execute(ctx context.Context, input UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := loadInvoice(ctx, uc.invoiceRepo, input.TenantID, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	if !invoice.IsEditable() {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceNotEditable,
			fmt.Sprintf("%s invoices cannot be edited", invoice.Status),
			domainerror.ErrInvoiceNotEditable,
		)
	}

	if input.ClientID != nil && *input.ClientID != invoice.ClientID {
		if _, err := findClient(ctx, uc.clientRepo, input.TenantID, *input.ClientID); err != nil {
			return nil, err
		}
		invoice.ClientID = *input.ClientID
	}
	if input.ProjectID != nil {
		if err := findProject(ctx, uc.projectRepo, input.TenantID, input.ProjectID); err != nil {
			return nil, err
		}
		invoice.ProjectID = input.ProjectID
	}

	if input.IssueDate != nil {
		invoice.IssueDate = valueobject.DateOnly(*input.IssueDate)
	}
	if input.DueDate != nil {
		invoice.DueDate = valueobject.DateOnly(*input.DueDate)
	}
	if err := validateDates(invoice.IssueDate, invoice.DueDate); err != nil {
		return nil, err
	}

	if input.Currency != nil && *input.Currency != "" {
		invoice.Currency = *input.Currency
	}
	if input.TaxRate != nil {
		invoice.TaxRate = *input.TaxRate
	}
	if input.DiscountType != nil {
		if err := validateDiscountType(*input.DiscountType); err != nil {
			return nil, err
		}
		invoice.DiscountType = *input.DiscountType
	}
	if input.DiscountValue != nil {
		invoice.DiscountValue = *input.DiscountValue
	}
	if input.ShippingAmount != nil {
		invoice.ShippingAmount = *input.ShippingAmount
	}
	if input.ShippingTaxRate != nil {
		invoice.ShippingTaxRate = *input.ShippingTaxRate
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}
	if input.Terms != nil {
		invoice.Terms = *input.Terms
	}

	replaceLineItems := input.LineItems != nil
	if replaceLineItems {
		invoice.LineItems, err = BuildLineItems(invoice.ID, *input.LineItems)
		if err != nil {
			return nil, err
		}
	}

	if err := invoice.Recalculate(); err != nil {
		return nil, err
	}

	if invoice.Total.LessThan(invoice.AmountPaid) {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeTotalBelowAmountPaid,
			fmt.Sprintf("new total %s is below the amount already paid %s",
				invoice.Total.StringFixed(2), invoice.AmountPaid.StringFixed(2)),
			domainerror.ErrTotalBelowAmountPaid,
		)
	}
	// A partially paid invoice edited down to exactly its paid amount is settled.
	// Without any payment the status is left alone, even at a zero total.
	if invoice.AmountPaid.IsPositive() {
		invoice.Status = entity.StatusAfterPayment(invoice.Status, invoice.Total, invoice.AmountPaid)
		if invoice.Status == entity.InvoiceStatusPaid && invoice.PaidAt == nil {
			paidAt := time.Now().UTC()
			invoice.PaidAt = &paidAt
		}
	}

	if err := uc.invoiceRepo.Update(ctx, invoice, replaceLineItems); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	return invoice, nil
}
