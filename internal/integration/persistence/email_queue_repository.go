package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/integration/persistence/model"
)

type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error; err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to create email job", err)
	}
	return nil
}

// ClaimDueJobs selects and leases due jobs in one transaction. On PostgreSQL
// the selected rows are locked with SKIP LOCKED so concurrent API instances
// never claim the same job.
func (r *emailQueueRepository) ClaimDueJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var jobs []*entity.EmailJob

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.
			Where("status IN ?", []entity.EmailStatus{entity.EmailStatusPending, entity.EmailStatusProcessing}).
			Where("scheduled_at <= ?", now).
			Order("scheduled_at ASC").
			Limit(limit)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		}

		var rows []model.EmailQueueModel
		if err := query.Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, len(rows))
		jobs = make([]*entity.EmailJob, len(rows))
		for i := range rows {
			job := rows[i].ToEntity()
			job.Claim(now)
			ids[i] = job.ID
			jobs[i] = job
		}

		return tx.Model(&model.EmailQueueModel{}).
			Where("id IN ?", ids).
			Updates(map[string]any{
				"status":       entity.EmailStatusProcessing,
				"scheduled_at": now.Add(entity.ClaimLease),
			}).Error
	})
	if err != nil {
		return nil, domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to claim email jobs", err)
	}
	return jobs, nil
}

func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}

func (r *emailQueueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	var row model.EmailQueueModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEmailJobNotFound
		}
		return nil, err
	}
	return row.ToEntity(), nil
}

func (r *emailQueueRepository) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status IN ?", []entity.EmailStatus{entity.EmailStatusSent, entity.EmailStatusFailed}).
		Where("processed_at < ?", cutoff).
		Delete(&model.EmailQueueModel{})
	return result.RowsAffected, result.Error
}
