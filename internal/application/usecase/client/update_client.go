package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
)

// UpdateClientInput is a partial client edit. Nil fields keep their stored value.
type UpdateClientInput struct {
	TenantID uuid.UUID
	ClientID uuid.UUID
	Name     *string
	Email    *string
	Phone    *string
	Company  *string
	Address  *string
	Currency *string
	Notes    *string
}

// UpdateClientUseCase handles client update logic.
type UpdateClientUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewUpdateClientUseCase creates a new UpdateClientUseCase instance.
func NewUpdateClientUseCase(clientRepo adapter.ClientRepository) *UpdateClientUseCase {
	return &UpdateClientUseCase{
		clientRepo: clientRepo,
	}
}

// Execute merges the input into the stored client.
func (uc *UpdateClientUseCase) Execute(ctx context.Context, input UpdateClientInput) (*entity.Client, error) {
	client, err := findClient(ctx, uc.clientRepo, input.TenantID, input.ClientID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		client.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		client.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Company != nil {
		client.Company = *input.Company
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.Currency != nil {
		client.Currency = strings.ToUpper(*input.Currency)
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}

	if err := validate(client.Name, client.Email); err != nil {
		return nil, err
	}

	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}
