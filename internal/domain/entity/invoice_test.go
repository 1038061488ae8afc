package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestInvoice(t *testing.T, qty, rate, taxRate string) *Invoice {
	t.Helper()

	issue := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	inv := NewInvoice(uuid.New(), uuid.New(), nil, issue, issue.AddDate(0, 0, 30), "USD")
	inv.TaxRate = dec(taxRate)
	inv.LineItems = []*LineItem{{
		ID:          uuid.New(),
		InvoiceID:   inv.ID,
		Description: "Consulting",
		Quantity:    dec(qty),
		Rate:        dec(rate),
	}}
	require.NoError(t, inv.Recalculate())
	return inv
}

func TestInvoice_CreateAndPayInFull(t *testing.T) {
	inv := newTestInvoice(t, "2", "50", "10")

	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	assert.True(t, inv.Subtotal.Equal(dec("100")))
	assert.True(t, inv.TaxAmount.Equal(dec("10")))
	assert.True(t, inv.Total.Equal(dec("110")))
	assert.True(t, inv.LineItems[0].Amount.Equal(dec("100")))

	require.NoError(t, inv.ApplyPayment(dec("110"), time.Now()))

	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.AmountDue().IsZero())
	assert.NotNil(t, inv.PaidAt)
}

func TestInvoice_Overpayment(t *testing.T) {
	inv := newTestInvoice(t, "1", "100", "0")
	require.NoError(t, inv.MarkSent(time.Now()))

	require.NoError(t, inv.ApplyPayment(dec("80"), time.Now()))
	assert.Equal(t, InvoiceStatusPartial, inv.Status)

	err := inv.ApplyPayment(dec("25"), time.Now())
	require.Error(t, err)

	var payErr *domainerror.PaymentError
	require.True(t, errors.As(err, &payErr))
	assert.Equal(t, domainerror.ErrCodeOverpayment, payErr.Code)
	assert.True(t, errors.Is(err, domainerror.ErrOverpayment))
	require.NotNil(t, payErr.MaxAllowed)
	assert.True(t, payErr.MaxAllowed.Equal(dec("20")))
	assert.Contains(t, payErr.Message, "20.00")

	// The rejected payment left nothing behind.
	assert.True(t, inv.AmountPaid.Equal(dec("80")))

	require.NoError(t, inv.ApplyPayment(dec("20"), time.Now()))
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.AmountDue().IsZero())
}

func TestInvoice_CheckPayment(t *testing.T) {
	tests := []struct {
		name     string
		status   InvoiceStatus
		amount   string
		wantCode domainerror.PaymentErrorCode
	}{
		{name: "zero amount", status: InvoiceStatusSent, amount: "0", wantCode: domainerror.ErrCodeInvalidPaymentAmount},
		{name: "negative amount", status: InvoiceStatusSent, amount: "-5", wantCode: domainerror.ErrCodeInvalidPaymentAmount},
		{name: "cancelled invoice", status: InvoiceStatusCancelled, amount: "10", wantCode: domainerror.ErrCodePaymentOnCancelledInvoice},
		{name: "above total", status: InvoiceStatusSent, amount: "100.01", wantCode: domainerror.ErrCodeOverpayment},
		{name: "exact total", status: InvoiceStatusSent, amount: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newTestInvoice(t, "1", "100", "0")
			inv.Status = tt.status

			err := inv.CheckPayment(dec(tt.amount))
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}

			var payErr *domainerror.PaymentError
			require.True(t, errors.As(err, &payErr))
			assert.Equal(t, tt.wantCode, payErr.Code)
		})
	}
}

func TestInvoice_CancelledRejectsPayment(t *testing.T) {
	inv := newTestInvoice(t, "1", "100", "0")
	require.NoError(t, inv.Cancel(time.Now()))

	err := inv.ApplyPayment(dec("10"), time.Now())
	assert.True(t, errors.Is(err, domainerror.ErrPaymentOnCancelledInvoice))
	assert.True(t, inv.AmountPaid.IsZero())
	assert.Equal(t, InvoiceStatusCancelled, inv.Status)
}

func TestStatusAfterPayment(t *testing.T) {
	tests := []struct {
		name    string
		current InvoiceStatus
		total   string
		paid    string
		want    InvoiceStatus
	}{
		{name: "draft partial", current: InvoiceStatusDraft, total: "100", paid: "40", want: InvoiceStatusPartial},
		{name: "sent partial", current: InvoiceStatusSent, total: "100", paid: "40", want: InvoiceStatusPartial},
		{name: "viewed partial", current: InvoiceStatusViewed, total: "100", paid: "40", want: InvoiceStatusPartial},
		{name: "partial stays partial", current: InvoiceStatusPartial, total: "100", paid: "90", want: InvoiceStatusPartial},
		{name: "full payment", current: InvoiceStatusViewed, total: "100", paid: "100", want: InvoiceStatusPaid},
		{name: "overdue partial stays overdue", current: InvoiceStatusOverdue, total: "100", paid: "50", want: InvoiceStatusOverdue},
		{name: "overdue paid in full", current: InvoiceStatusOverdue, total: "100", paid: "100", want: InvoiceStatusPaid},
		{name: "paid is terminal", current: InvoiceStatusPaid, total: "100", paid: "100", want: InvoiceStatusPaid},
		{name: "cancelled is terminal", current: InvoiceStatusCancelled, total: "100", paid: "100", want: InvoiceStatusCancelled},
		{name: "nothing paid", current: InvoiceStatusSent, total: "100", paid: "0", want: InvoiceStatusSent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusAfterPayment(tt.current, dec(tt.total), dec(tt.paid)))
		})
	}
}

func TestInvoice_StatusNeverRegresses(t *testing.T) {
	inv := newTestInvoice(t, "4", "25", "0")
	require.NoError(t, inv.MarkSent(time.Now()))
	require.NoError(t, inv.MarkViewed(time.Now()))

	previous := invoiceStatusRank[inv.Status]
	for _, amount := range []string{"10", "20", "30", "40"} {
		require.NoError(t, inv.ApplyPayment(dec(amount), time.Now()))
		rank := invoiceStatusRank[inv.Status]
		assert.GreaterOrEqual(t, rank, previous)
		previous = rank
	}
	assert.Equal(t, InvoiceStatusPaid, inv.Status)

	// Sending or viewing a paid invoice does not move it back.
	require.NoError(t, inv.MarkSent(time.Now()))
	require.NoError(t, inv.MarkViewed(time.Now()))
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
}

func TestInvoice_Transitions(t *testing.T) {
	t.Run("view requires send", func(t *testing.T) {
		inv := newTestInvoice(t, "1", "10", "0")
		err := inv.MarkViewed(time.Now())
		assert.True(t, errors.Is(err, domainerror.ErrInvalidStatusTransition))
	})

	t.Run("send then view", func(t *testing.T) {
		inv := newTestInvoice(t, "1", "10", "0")
		require.NoError(t, inv.MarkSent(time.Now()))
		assert.Equal(t, InvoiceStatusSent, inv.Status)
		assert.NotNil(t, inv.SentAt)

		require.NoError(t, inv.MarkViewed(time.Now()))
		assert.Equal(t, InvoiceStatusViewed, inv.Status)
		assert.NotNil(t, inv.ViewedAt)
	})

	t.Run("cancelled cannot be sent", func(t *testing.T) {
		inv := newTestInvoice(t, "1", "10", "0")
		require.NoError(t, inv.Cancel(time.Now()))
		assert.Error(t, inv.MarkSent(time.Now()))
	})

	t.Run("paid cannot be cancelled", func(t *testing.T) {
		inv := newTestInvoice(t, "1", "10", "0")
		require.NoError(t, inv.ApplyPayment(dec("10"), time.Now()))
		assert.True(t, errors.Is(inv.Cancel(time.Now()), domainerror.ErrInvalidStatusTransition))
		assert.False(t, inv.IsEditable())
	})
}

func TestInvoice_MarkOverdue(t *testing.T) {
	today := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  InvoiceStatus
		dueDate time.Time
		changed bool
	}{
		{name: "sent past due", status: InvoiceStatusSent, dueDate: today.AddDate(0, 0, -1), changed: true},
		{name: "partial past due", status: InvoiceStatusPartial, dueDate: today.AddDate(0, 0, -10), changed: true},
		{name: "due today", status: InvoiceStatusSent, dueDate: today, changed: false},
		{name: "draft past due", status: InvoiceStatusDraft, dueDate: today.AddDate(0, 0, -1), changed: false},
		{name: "paid past due", status: InvoiceStatusPaid, dueDate: today.AddDate(0, 0, -1), changed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newTestInvoice(t, "1", "10", "0")
			inv.Status = tt.status
			inv.DueDate = tt.dueDate

			assert.Equal(t, tt.changed, inv.MarkOverdue(today))
			if tt.changed {
				assert.Equal(t, InvoiceStatusOverdue, inv.Status)
			} else {
				assert.Equal(t, tt.status, inv.Status)
			}
		})
	}
}

func TestRecurringInvoiceTemplate_GenerateAndAdvance(t *testing.T) {
	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	recurrence, err := valueobject.NewRecurrence(valueobject.FrequencyMonthly, 1)
	require.NoError(t, err)

	tmpl := NewRecurringInvoiceTemplate(uuid.New(), uuid.New(), nil, "Retainer", recurrence, start, nil)
	tmpl.TaxRate = dec("10")
	tmpl.LineItems = []*LineItem{{ID: uuid.New(), Description: "Retainer", Quantity: dec("1"), Rate: dec("500")}}

	require.True(t, tmpl.IsDue(start))
	assert.False(t, tmpl.IsDue(start.AddDate(0, 0, -1)))

	inv, err := tmpl.BuildInvoice()
	require.NoError(t, err)
	assert.True(t, inv.Total.Equal(dec("550")))
	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	assert.Equal(t, tmpl.ID, *inv.RecurringTemplateID)
	assert.Equal(t, start, *inv.RecurrenceDate)
	assert.Equal(t, start.AddDate(0, 0, DefaultPaymentTermsDays), inv.DueDate)
	assert.NotEqual(t, tmpl.LineItems[0].ID, inv.LineItems[0].ID)
	assert.Equal(t, inv.ID, inv.LineItems[0].InvoiceID)

	tmpl.Advance()
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), tmpl.NextGenerationDate)
	tmpl.Advance()
	assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), tmpl.NextGenerationDate)
	assert.True(t, tmpl.Active)
}

func TestRecurringInvoiceTemplate_DeactivatesAfterEndDate(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	recurrence, err := valueobject.NewRecurrence(valueobject.FrequencyWeekly, 2)
	require.NoError(t, err)

	tmpl := NewRecurringInvoiceTemplate(uuid.New(), uuid.New(), nil, "Biweekly", recurrence, start, &end)

	tmpl.Advance()
	assert.Equal(t, start.AddDate(0, 0, 14), tmpl.NextGenerationDate)
	assert.True(t, tmpl.Active)

	tmpl.Advance()
	assert.False(t, tmpl.Active)
	assert.False(t, tmpl.IsDue(end.AddDate(1, 0, 0)))
}

func TestRecurringTask_BuildAndAdvance(t *testing.T) {
	start := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	recurrence, err := valueobject.NewRecurrence(valueobject.FrequencyDaily, 3)
	require.NoError(t, err)

	rt := NewRecurringTask(uuid.New(), uuid.New(), "Standup notes", "", "", recurrence, start, nil)
	assert.Equal(t, TaskPriorityMedium, rt.Priority)

	task := rt.BuildTask()
	assert.Equal(t, rt.ID, *task.RecurringTaskID)
	assert.Equal(t, start, *task.DueDate)
	assert.Equal(t, TaskStatusTodo, task.Status)

	rt.Advance()
	assert.Equal(t, start.AddDate(0, 0, 3), rt.NextDueDate)
	assert.Equal(t, start, *rt.LastGeneratedDate)
}

func TestNewUtilization(t *testing.T) {
	u := NewUtilization(dec("1000"), dec("250"))
	assert.True(t, u.Remaining.Equal(dec("750")))
	assert.True(t, u.UtilizationPercentage.Equal(dec("25")))

	zero := NewUtilization(decimal.Zero, dec("50"))
	assert.True(t, zero.UtilizationPercentage.IsZero())
	assert.True(t, zero.Remaining.Equal(dec("-50")))

	third := NewUtilization(dec("3"), dec("1"))
	assert.True(t, third.UtilizationPercentage.Equal(dec("33.33")))
}
