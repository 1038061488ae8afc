package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// CreateClientInput represents the input for creating a client.
type CreateClientInput struct {
	TenantID uuid.UUID
	Fields
}

// CreateClientUseCase handles client creation logic.
type CreateClientUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewCreateClientUseCase creates a new CreateClientUseCase instance.
func NewCreateClientUseCase(clientRepo adapter.ClientRepository) *CreateClientUseCase {
	return &CreateClientUseCase{
		clientRepo: clientRepo,
	}
}

// Execute validates and stores a new client.
func (uc *CreateClientUseCase) Execute(ctx context.Context, input CreateClientInput) (*entity.Client, error) {
	if err := validate(input.Name, input.Email); err != nil {
		return nil, err
	}

	client := entity.NewClient(
		input.TenantID,
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Email),
		input.Phone,
		input.Company,
		input.Address,
		strings.ToUpper(input.Currency),
		input.Notes,
	)
	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	slog.Info("Client created", "tenant_id", input.TenantID, "client_id", client.ID)
	return client, nil
}
