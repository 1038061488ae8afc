package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// EmailQueueRepository persists outbound email jobs.
type EmailQueueRepository interface {
	Create(ctx context.Context, job *entity.EmailJob) error

	// ClaimDueJobs leases up to limit due jobs to the caller. Pending jobs and
	// processing jobs whose lease ran out are both due.
	ClaimDueJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	Update(ctx context.Context, job *entity.EmailJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)

	// DeleteFinishedBefore removes sent and failed jobs processed before cutoff.
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
