// Package client contains client management use cases.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// MaxNameLength is the maximum allowed length for client names.
const MaxNameLength = 255

// Fields are the editable attributes of a client.
type Fields struct {
	Name     string
	Email    string
	Phone    string
	Company  string
	Address  string
	Currency string
	Notes    string
}

func validate(name, email string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domainerror.NewClientError(
			domainerror.ErrCodeClientNameRequired,
			"client name is required",
			domainerror.ErrClientNameRequired,
		)
	}
	if len(name) > MaxNameLength {
		return domainerror.NewClientError(
			domainerror.ErrCodeClientNameTooLong,
			fmt.Sprintf("client name must not exceed %d characters", MaxNameLength),
			domainerror.ErrClientNameTooLong,
		)
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return domainerror.NewClientError(
				domainerror.ErrCodeInvalidClientEmail,
				"email is not a valid address",
				domainerror.ErrInvalidClientEmail,
			)
		}
	}
	return nil
}

// findClient maps a repository miss to a coded error.
func findClient(ctx context.Context, repo adapter.ClientRepository, tenantID, clientID uuid.UUID) (*entity.Client, error) {
	client, err := repo.FindByID(ctx, tenantID, clientID)
	if err != nil {
		if errors.Is(err, domainerror.ErrClientNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return client, nil
}

func notFound() error {
	return domainerror.NewClientError(
		domainerror.ErrCodeClientNotFound,
		"client not found",
		domainerror.ErrClientNotFound,
	)
}
