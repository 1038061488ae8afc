package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// GetClientUseCase handles fetching a single client.
type GetClientUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewGetClientUseCase creates a new GetClientUseCase instance.
func NewGetClientUseCase(clientRepo adapter.ClientRepository) *GetClientUseCase {
	return &GetClientUseCase{
		clientRepo: clientRepo,
	}
}

// Execute returns the client.
func (uc *GetClientUseCase) Execute(ctx context.Context, tenantID, clientID uuid.UUID) (*entity.Client, error) {
	return findClient(ctx, uc.clientRepo, tenantID, clientID)
}
