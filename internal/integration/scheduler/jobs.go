package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/agency-crm/backend/internal/application/usecase/invoice"
	"github.com/agency-crm/backend/internal/application/usecase/recurring"
)

// Job names, also used as lock keys.
const (
	JobRecurringGeneration = "recurring-generation"
	JobOverdueSweep        = "overdue-sweep"
	JobEmailCleanup        = "email-cleanup"
)

// RecurringGeneration creates the invoices and tasks due across all tenants.
func RecurringGeneration(uc *recurring.GenerateDueUseCase) JobFunc {
	return func(ctx context.Context) error {
		out, err := uc.Execute(ctx, recurring.GenerateDueInput{Now: time.Now().UTC()})
		if err != nil {
			return err
		}
		if out.InvoicesCreated > 0 || out.TasksCreated > 0 || out.Failures > 0 {
			slog.Info("Recurring generation finished",
				"invoices_created", out.InvoicesCreated,
				"tasks_created", out.TasksCreated,
				"failures", out.Failures,
			)
		}
		return nil
	}
}

// OverdueSweep flags unpaid invoices past their due date.
func OverdueSweep(uc *invoice.MarkOverdueUseCase) JobFunc {
	return func(ctx context.Context) error {
		_, err := uc.Execute(ctx, time.Now().UTC())
		return err
	}
}

// EmailCleaner removes delivered email jobs.
type EmailCleaner interface {
	CleanupFinishedJobs(ctx context.Context, olderThanDays int) error
}

// EmailCleanup drops finished email jobs older than retentionDays.
func EmailCleanup(cleaner EmailCleaner, retentionDays int) JobFunc {
	return func(ctx context.Context) error {
		return cleaner.CleanupFinishedJobs(ctx, retentionDays)
	}
}
