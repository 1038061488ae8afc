package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agency-crm/backend/internal/application/adapter"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// DefaultOverdueBatch bounds how many invoices one sweep inspects.
const DefaultOverdueBatch = 500

// MarkOverdueOutput summarizes one sweep.
type MarkOverdueOutput struct {
	Inspected int
	Marked    int
}

// MarkOverdueUseCase flags delivered, unpaid invoices whose due date has passed.
type MarkOverdueUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	batchSize   int
}

// NewMarkOverdueUseCase creates a new MarkOverdueUseCase instance.
func NewMarkOverdueUseCase(invoiceRepo adapter.InvoiceRepository, batchSize int) *MarkOverdueUseCase {
	if batchSize <= 0 {
		batchSize = DefaultOverdueBatch
	}
	return &MarkOverdueUseCase{
		invoiceRepo: invoiceRepo,
		batchSize:   batchSize,
	}
}

// Execute sweeps every tenant. An invoice changed concurrently is left for the next run.
func (uc *MarkOverdueUseCase) Execute(ctx context.Context, now time.Time) (*MarkOverdueOutput, error) {
	today := valueobject.DateOnly(now)

	candidates, err := uc.invoiceRepo.FindOverdueCandidates(ctx, today, uc.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to find overdue candidates: %w", err)
	}

	output := &MarkOverdueOutput{Inspected: len(candidates)}
	for _, invoice := range candidates {
		if !invoice.MarkOverdue(today) {
			continue
		}
		if err := uc.invoiceRepo.Update(ctx, invoice, false); err != nil {
			if errors.Is(err, domainerror.ErrInvoiceConcurrentUpdate) {
				slog.Debug("Skipping invoice modified during overdue sweep", "invoice_id", invoice.ID)
				continue
			}
			return output, fmt.Errorf("failed to mark invoice %s overdue: %w", invoice.ID, err)
		}
		output.Marked++
	}

	if output.Marked > 0 {
		slog.Info("Overdue sweep finished", "inspected", output.Inspected, "marked", output.Marked)
	}
	return output, nil
}
