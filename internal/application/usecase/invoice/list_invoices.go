package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// ListInvoicesInput represents the input for listing invoices.
type ListInvoicesInput struct {
	TenantID  uuid.UUID
	Status    *entity.InvoiceStatus
	ClientID  *uuid.UUID
	ProjectID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	Page      int
	Limit     int
}

// ListInvoicesUseCase lists invoices of a tenant.
type ListInvoicesUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewListInvoicesUseCase creates a new ListInvoicesUseCase instance.
func NewListInvoicesUseCase(invoiceRepo adapter.InvoiceRepository) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute returns one page of invoices, newest first.
func (uc *ListInvoicesUseCase) Execute(ctx context.Context, input ListInvoicesInput) (*entity.InvoiceListResult, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidInvoiceFilter,
			"unknown invoice status "+string(*input.Status),
			nil,
		)
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidInvoiceFilter,
			"end_date must not precede start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	filter := adapter.InvoiceFilter{
		TenantID:  input.TenantID,
		Status:    input.Status,
		ClientID:  input.ClientID,
		ProjectID: input.ProjectID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Search:    input.Search,
	}

	result, err := uc.invoiceRepo.FindByFilter(ctx, filter, adapter.NewPagination(input.Page, input.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return result, nil
}
