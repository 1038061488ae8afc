package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// DeleteClientUseCase handles client deletion logic.
type DeleteClientUseCase struct {
	clientRepo  adapter.ClientRepository
	invoiceRepo adapter.InvoiceRepository
}

// NewDeleteClientUseCase creates a new DeleteClientUseCase instance.
func NewDeleteClientUseCase(clientRepo adapter.ClientRepository, invoiceRepo adapter.InvoiceRepository) *DeleteClientUseCase {
	return &DeleteClientUseCase{
		clientRepo:  clientRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Execute removes a client that no invoice references.
func (uc *DeleteClientUseCase) Execute(ctx context.Context, tenantID, clientID uuid.UUID) error {
	if _, err := findClient(ctx, uc.clientRepo, tenantID, clientID); err != nil {
		return err
	}

	count, err := uc.invoiceRepo.CountByClient(ctx, tenantID, clientID)
	if err != nil {
		return fmt.Errorf("failed to count client invoices: %w", err)
	}
	if count > 0 {
		return domainerror.NewClientError(
			domainerror.ErrCodeClientHasInvoices,
			fmt.Sprintf("client has %d invoice(s) and cannot be deleted", count),
			domainerror.ErrClientHasInvoices,
		)
	}

	if err := uc.clientRepo.Delete(ctx, tenantID, clientID); err != nil {
		if errors.Is(err, domainerror.ErrClientNotFound) {
			return notFound()
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}

	slog.Info("Client deleted", "tenant_id", tenantID, "client_id", clientID)
	return nil
}
