// Package task contains project task and recurring task use cases.
package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// MaxTitleLength is the maximum allowed length for task titles.
const MaxTitleLength = 255

func ensureProject(ctx context.Context, repo adapter.ProjectRepository, tenantID, projectID uuid.UUID) error {
	if _, err := repo.FindByID(ctx, tenantID, projectID); err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return domainerror.NewTaskError(
				domainerror.ErrCodeTaskProjectNotFound,
				"project not found",
				domainerror.ErrProjectNotFound,
			)
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	return nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > MaxTitleLength {
		return domainerror.NewTaskError(
			domainerror.ErrCodeTaskTitleRequired,
			fmt.Sprintf("title is required and must not exceed %d characters", MaxTitleLength),
			domainerror.ErrTaskTitleRequired,
		)
	}
	return nil
}

func validatePriority(p entity.TaskPriority) error {
	if p != "" && !p.IsValid() {
		return domainerror.NewTaskError(
			domainerror.ErrCodeInvalidTaskPriority,
			"priority must be one of low, medium, high, urgent",
			domainerror.ErrInvalidTaskPriority,
		)
	}
	return nil
}

func validateStatus(s entity.TaskStatus) error {
	if !s.IsValid() {
		return domainerror.NewTaskError(
			domainerror.ErrCodeInvalidTaskStatus,
			"status must be one of todo, in_progress, review, done",
			domainerror.ErrInvalidTaskStatus,
		)
	}
	return nil
}
