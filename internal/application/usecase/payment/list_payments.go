package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// ListPaymentsUseCase lists the payments of an invoice.
type ListPaymentsUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewListPaymentsUseCase creates a new ListPaymentsUseCase instance.
func NewListPaymentsUseCase(invoiceRepo adapter.InvoiceRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute returns the payments ordered by date, newest first.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]*entity.InvoicePayment, error) {
	if _, err := uc.invoiceRepo.FindByID(ctx, tenantID, invoiceID); err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodePaymentInvoiceNotFound,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}

	payments, err := uc.invoiceRepo.ListPayments(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
