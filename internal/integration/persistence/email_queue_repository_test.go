package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-crm/backend/internal/domain/entity"
	"github.com/agency-crm/backend/internal/integration/persistence/persistencetest"
)

func TestEmailQueueRepository_ClaimDueJobs(t *testing.T) {
	repo := NewEmailQueueRepository(persistencetest.Open(t))
	ctx := context.Background()
	now := time.Now().UTC()

	due := entity.NewEmailJob(uuid.New(), nil, entity.TemplatePaymentReceipt, "a@acme.test", "A", "Receipt", nil)
	due.ScheduledAt = now.Add(-time.Minute)
	later := entity.NewEmailJob(uuid.New(), nil, entity.TemplatePaymentReceipt, "b@acme.test", "B", "Receipt", nil)
	later.ScheduledAt = now.Add(time.Hour)
	require.NoError(t, repo.Create(ctx, due))
	require.NoError(t, repo.Create(ctx, later))

	claimed, err := repo.ClaimDueJobs(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, due.ID, claimed[0].ID)
	assert.Equal(t, entity.EmailStatusProcessing, claimed[0].Status)

	again, err := repo.ClaimDueJobs(ctx, now, 10)
	require.NoError(t, err)
	assert.Empty(t, again, "leased job must not be claimed twice")

	afterLease, err := repo.ClaimDueJobs(ctx, now.Add(entity.ClaimLease+time.Second), 10)
	require.NoError(t, err)
	require.Len(t, afterLease, 1)
	assert.Equal(t, due.ID, afterLease[0].ID)
}

func TestEmailQueueRepository_DeleteFinishedBefore(t *testing.T) {
	repo := NewEmailQueueRepository(persistencetest.Open(t))
	ctx := context.Background()

	sent := entity.NewEmailJob(uuid.New(), nil, entity.TemplateInvoice, "a@acme.test", "A", "Invoice", nil)
	sent.MarkSent("re_1")
	old := sent.ProcessedAt.AddDate(0, 0, -40)
	sent.ProcessedAt = &old

	failed := entity.NewEmailJob(uuid.New(), nil, entity.TemplateInvoice, "b@acme.test", "B", "Invoice", nil)
	failed.MarkFailed(errors.New("invalid recipient"), true)
	failed.ProcessedAt = &old

	pending := entity.NewEmailJob(uuid.New(), nil, entity.TemplateInvoice, "c@acme.test", "C", "Invoice", nil)

	for _, job := range []*entity.EmailJob{sent, failed, pending} {
		require.NoError(t, repo.Create(ctx, job))
	}

	deleted, err := repo.DeleteFinishedBefore(ctx, time.Now().UTC().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = repo.GetByID(ctx, pending.ID)
	assert.NoError(t, err)
}
