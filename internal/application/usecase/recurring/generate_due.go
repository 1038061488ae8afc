package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/application/usecase/invoice"
	"github.com/agency-crm/backend/internal/domain/entity"
)

const (
	// DefaultMaxCatchUp bounds how many missed occurrences one template yields per run.
	DefaultMaxCatchUp = 12
	// DefaultBatchSize bounds how many schedules one run loads.
	DefaultBatchSize = 200
)

// InvoiceSender delivers a freshly generated invoice of an auto-send template.
type InvoiceSender interface {
	Execute(ctx context.Context, input invoice.SendInvoiceInput) (*invoice.SendInvoiceOutput, error)
}

// GenerateDueInput selects the schedules to run. A nil TenantID runs every tenant.
type GenerateDueInput struct {
	Now      time.Time
	TenantID *uuid.UUID
}

// GenerateDueOutput summarizes a generation run.
type GenerateDueOutput struct {
	TemplatesProcessed      int
	InvoicesCreated         int
	InvoiceIDs              []uuid.UUID
	RecurringTasksProcessed int
	TasksCreated            int
	Failures                int
}

// GenerateDueUseCase materializes invoices and tasks for every due schedule.
type GenerateDueUseCase struct {
	templateRepo      adapter.RecurringInvoiceRepository
	recurringTaskRepo adapter.RecurringTaskRepository
	sender            InvoiceSender
	maxCatchUp        int
	batchSize         int
}

// NewGenerateDueUseCase creates a new GenerateDueUseCase instance. sender may be nil,
// in which case auto-send templates only produce drafts.
func NewGenerateDueUseCase(
	templateRepo adapter.RecurringInvoiceRepository,
	recurringTaskRepo adapter.RecurringTaskRepository,
	sender InvoiceSender,
	maxCatchUp int,
) *GenerateDueUseCase {
	if maxCatchUp <= 0 {
		maxCatchUp = DefaultMaxCatchUp
	}
	return &GenerateDueUseCase{
		templateRepo:      templateRepo,
		recurringTaskRepo: recurringTaskRepo,
		sender:            sender,
		maxCatchUp:        maxCatchUp,
		batchSize:         DefaultBatchSize,
	}
}

// Execute generates every missed occurrence up to the catch-up limit. Occurrences
// generated by an earlier run are skipped, so repeated runs are harmless.
func (uc *GenerateDueUseCase) Execute(ctx context.Context, input GenerateDueInput) (*GenerateDueOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	output := &GenerateDueOutput{InvoiceIDs: []uuid.UUID{}}

	templates, err := uc.templateRepo.FindDue(ctx, input.TenantID, now, uc.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to find due recurring templates: %w", err)
	}

	for _, tpl := range templates {
		if ctx.Err() != nil {
			return output, ctx.Err()
		}
		output.TemplatesProcessed++
		uc.generateInvoices(ctx, tpl, now, output)
	}

	if uc.recurringTaskRepo != nil {
		recurring, err := uc.recurringTaskRepo.FindDue(ctx, input.TenantID, now, uc.batchSize)
		if err != nil {
			return output, fmt.Errorf("failed to find due recurring tasks: %w", err)
		}

		for _, r := range recurring {
			if ctx.Err() != nil {
				return output, ctx.Err()
			}
			output.RecurringTasksProcessed++
			uc.generateTasks(ctx, r, now, output)
		}
	}

	slog.Info("Recurring generation finished",
		"templates", output.TemplatesProcessed,
		"invoices_created", output.InvoicesCreated,
		"recurring_tasks", output.RecurringTasksProcessed,
		"tasks_created", output.TasksCreated,
		"failures", output.Failures,
	)
	return output, nil
}

func (uc *GenerateDueUseCase) generateInvoices(ctx context.Context, tpl *entity.RecurringInvoiceTemplate, now time.Time, output *GenerateDueOutput) {
	logger := slog.With("tenant_id", tpl.TenantID, "template_id", tpl.ID)

	for n := 0; n < uc.maxCatchUp && tpl.IsDue(now); n++ {
		inv, err := tpl.BuildInvoice()
		if err != nil {
			logger.Error("Failed to build recurring invoice", "error", err)
			output.Failures++
			return
		}
		tpl.Advance()

		created, err := uc.templateRepo.RecordGeneration(ctx, tpl, inv)
		if err != nil {
			logger.Error("Failed to record recurring invoice", "recurrence_date", inv.RecurrenceDate, "error", err)
			output.Failures++
			return
		}
		if !created {
			logger.Debug("Occurrence already generated", "recurrence_date", inv.RecurrenceDate)
			continue
		}

		output.InvoicesCreated++
		output.InvoiceIDs = append(output.InvoiceIDs, inv.ID)
		logger.Info("Recurring invoice generated", "invoice_id", inv.ID, "invoice_number", inv.InvoiceNumber)

		if tpl.AutoSend && uc.sender != nil {
			if _, err := uc.sender.Execute(ctx, invoice.SendInvoiceInput{TenantID: tpl.TenantID, InvoiceID: inv.ID}); err != nil {
				logger.Warn("Failed to auto-send recurring invoice", "invoice_id", inv.ID, "error", err)
			}
		}
	}
}

func (uc *GenerateDueUseCase) generateTasks(ctx context.Context, r *entity.RecurringTask, now time.Time, output *GenerateDueOutput) {
	logger := slog.With("tenant_id", r.TenantID, "recurring_task_id", r.ID)

	for n := 0; n < uc.maxCatchUp && r.IsDue(now); n++ {
		task := r.BuildTask()
		r.Advance()

		created, err := uc.recurringTaskRepo.RecordGeneration(ctx, r, task)
		if err != nil {
			logger.Error("Failed to record recurring task", "due_date", task.DueDate, "error", err)
			output.Failures++
			return
		}
		if created {
			output.TasksCreated++
		}
	}
}
