package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// ListClientsUseCase handles listing the tenant's clients.
type ListClientsUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewListClientsUseCase creates a new ListClientsUseCase instance.
func NewListClientsUseCase(clientRepo adapter.ClientRepository) *ListClientsUseCase {
	return &ListClientsUseCase{
		clientRepo: clientRepo,
	}
}

// Execute returns the tenant's clients whose name, company or email contain search.
func (uc *ListClientsUseCase) Execute(ctx context.Context, tenantID uuid.UUID, search string) ([]*entity.Client, error) {
	clients, err := uc.clientRepo.FindByTenant(ctx, tenantID, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
