// Package invoice contains invoice lifecycle use cases.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// DefaultCurrency is used when neither the request nor the client names one.
const DefaultCurrency = "USD"

// LineItemInput is a line item as submitted by the caller.
type LineItemInput struct {
	Description    string
	Quantity       decimal.Decimal
	Rate           decimal.Decimal
	AmountOverride *decimal.Decimal
	TaxRate        decimal.Decimal
	DiscountType   valueobject.DiscountType
	DiscountValue  decimal.Decimal
	ProjectID      *uuid.UUID
	TaskID         *uuid.UUID
	Category       string
	Hours          *decimal.Decimal
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
	Notes          string
}

// BuildLineItems converts inputs into line items owned by invoiceID. Amounts are
// left for Invoice.Recalculate.
func BuildLineItems(invoiceID uuid.UUID, inputs []LineItemInput) ([]*entity.LineItem, error) {
	items := make([]*entity.LineItem, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.Description) == "" {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvalidLineItem,
				fmt.Sprintf("line item %d: description is required", i+1),
				domainerror.ErrInvalidLineItem,
			)
		}
		if !in.DiscountType.IsValid() {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvalidDiscount,
				fmt.Sprintf("line item %d: discount_type must be 'percentage' or 'fixed'", i+1),
				domainerror.ErrInvalidDiscount,
			)
		}

		items[i] = &entity.LineItem{
			ID:             uuid.New(),
			InvoiceID:      invoiceID,
			Position:       i,
			Description:    in.Description,
			Quantity:       in.Quantity,
			Rate:           in.Rate,
			AmountOverride: in.AmountOverride,
			TaxRate:        in.TaxRate,
			DiscountType:   in.DiscountType,
			DiscountValue:  in.DiscountValue,
			ProjectID:      in.ProjectID,
			TaskID:         in.TaskID,
			Category:       in.Category,
			Hours:          in.Hours,
			PeriodStart:    in.PeriodStart,
			PeriodEnd:      in.PeriodEnd,
			Notes:          in.Notes,
		}
	}
	return items, nil
}

func invoiceNotFound() error {
	return domainerror.NewInvoiceError(
		domainerror.ErrCodeInvoiceNotFound,
		"invoice not found",
		domainerror.ErrInvoiceNotFound,
	)
}

// loadInvoice fetches the invoice and maps a miss to a coded error.
func loadInvoice(ctx context.Context, repo adapter.InvoiceRepository, tenantID, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return nil, invoiceNotFound()
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return invoice, nil
}

func findClient(ctx context.Context, repo adapter.ClientRepository, tenantID, id uuid.UUID) (*entity.Client, error) {
	client, err := repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrClientNotFound) {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceClientNotFound,
				"client not found",
				domainerror.ErrClientNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return client, nil
}

func findProject(ctx context.Context, repo adapter.ProjectRepository, tenantID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := repo.FindByID(ctx, tenantID, *id); err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceProjectNotFound,
				"project not found",
				domainerror.ErrProjectNotFound,
			)
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	return nil
}

func validateDates(issue, due time.Time) error {
	if due.Before(issue) {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidInvoiceDates,
			"due_date must not precede issue_date",
			domainerror.ErrInvalidInvoiceDates,
		)
	}
	return nil
}

func validateDiscountType(t valueobject.DiscountType) error {
	if !t.IsValid() {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidDiscount,
			"discount_type must be 'percentage' or 'fixed'",
			domainerror.ErrInvalidDiscount,
		)
	}
	return nil
}
