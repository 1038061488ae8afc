// Package budget contains project budget use cases.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/application/usecase/report"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// SpendingReader sums the expenses recorded against a project budget.
type SpendingReader interface {
	GetBudgetSpending(ctx context.Context, tenantID, projectID uuid.UUID) (*report.BudgetSpending, error)
}

func ensureProject(ctx context.Context, repo adapter.ProjectRepository, tenantID, projectID uuid.UUID) error {
	if _, err := repo.FindByID(ctx, tenantID, projectID); err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetProjectNotFound,
				"project not found",
				domainerror.ErrProjectNotFound,
			)
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	return nil
}
