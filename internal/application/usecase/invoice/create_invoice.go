package invoice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// CreateInvoiceInput represents the input for invoice creation.
type CreateInvoiceInput struct {
	TenantID         uuid.UUID
	ClientID         uuid.UUID
	ProjectID        *uuid.UUID
	IssueDate        *time.Time
	DueDate          *time.Time
	PaymentTermsDays *int
	Currency         string
	TaxRate          decimal.Decimal
	DiscountType     valueobject.DiscountType
	DiscountValue    decimal.Decimal
	ShippingAmount   decimal.Decimal
	ShippingTaxRate  decimal.Decimal
	Notes            string
	Terms            string
	LineItems        []LineItemInput
}

// CreateInvoiceUseCase handles invoice creation.
type CreateInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	clientRepo  adapter.ClientRepository
	projectRepo adapter.ProjectRepository
}

// NewCreateInvoiceUseCase creates a new CreateInvoiceUseCase instance.
func NewCreateInvoiceUseCase(
	invoiceRepo adapter.InvoiceRepository,
	clientRepo adapter.ClientRepository,
	projectRepo adapter.ProjectRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
	}
}

// Execute prices and stores a draft invoice.
func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, input CreateInvoiceInput) (*entity.Invoice, error) {
	client, err := findClient(ctx, uc.clientRepo, input.TenantID, input.ClientID)
	if err != nil {
		return nil, err
	}
	if err := findProject(ctx, uc.projectRepo, input.TenantID, input.ProjectID); err != nil {
		return nil, err
	}
	if err := validateDiscountType(input.DiscountType); err != nil {
		return nil, err
	}

	issueDate := valueobject.Today()
	if input.IssueDate != nil {
		issueDate = valueobject.DateOnly(*input.IssueDate)
	}

	terms := entity.DefaultPaymentTermsDays
	if input.PaymentTermsDays != nil && *input.PaymentTermsDays >= 0 {
		terms = *input.PaymentTermsDays
	}
	dueDate := issueDate.AddDate(0, 0, terms)
	if input.DueDate != nil {
		dueDate = valueobject.DateOnly(*input.DueDate)
	}
	if err := validateDates(issueDate, dueDate); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = client.Currency
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	invoice := entity.NewInvoice(input.TenantID, client.ID, input.ProjectID, issueDate, dueDate, currency)
	invoice.TaxRate = input.TaxRate
	invoice.DiscountType = input.DiscountType
	invoice.DiscountValue = input.DiscountValue
	invoice.ShippingAmount = input.ShippingAmount
	invoice.ShippingTaxRate = input.ShippingTaxRate
	invoice.Notes = input.Notes
	invoice.Terms = input.Terms

	invoice.LineItems, err = BuildLineItems(invoice.ID, input.LineItems)
	if err != nil {
		return nil, err
	}
	if err := invoice.Recalculate(); err != nil {
		return nil, err
	}

	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	slog.Info("Invoice created",
		"tenant_id", input.TenantID,
		"invoice_id", invoice.ID,
		"invoice_number", invoice.InvoiceNumber,
		"total", invoice.Total.StringFixed(2),
	)

	return invoice, nil
}
