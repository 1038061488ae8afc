package recurring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/application/usecase/invoice"
	"github.com/agency-crm/backend/internal/domain/entity"
	domainerror "github.com/agency-crm/backend/internal/domain/error"
	"github.com/agency-crm/backend/internal/domain/valueobject"
	"github.com/agency-crm/backend/internal/integration/persistence"
	"github.com/agency-crm/backend/internal/integration/persistence/persistencetest"
)

type fixture struct {
	tenantID          uuid.UUID
	client            *entity.Client
	project           *entity.Project
	templateRepo      adapter.RecurringInvoiceRepository
	recurringTaskRepo adapter.RecurringTaskRepository
	invoiceRepo       adapter.InvoiceRepository
	taskRepo          adapter.TaskRepository
	create            *CreateTemplateUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db := persistencetest.Open(t)
	clientRepo := persistence.NewClientRepository(db)
	projectRepo := persistence.NewProjectRepository(db)
	templateRepo := persistence.NewRecurringInvoiceRepository(db)

	tenantID := uuid.New()
	client := entity.NewClient(tenantID, "Umbrella", "ap@umbrella.test", "", "", "", "GBP", "")
	require.NoError(t, clientRepo.Create(ctx, client))
	project := entity.NewProject(tenantID, client.ID, "Retainer", "", decimal.Zero, nil, nil)
	require.NoError(t, projectRepo.Create(ctx, project))

	return &fixture{
		tenantID:          tenantID,
		client:            client,
		project:           project,
		templateRepo:      templateRepo,
		recurringTaskRepo: persistence.NewRecurringTaskRepository(db),
		invoiceRepo:       persistence.NewInvoiceRepository(db),
		taskRepo:          persistence.NewTaskRepository(db),
		create:            NewCreateTemplateUseCase(templateRepo, clientRepo, projectRepo),
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f *fixture) template(t *testing.T, start time.Time, end *time.Time) *entity.RecurringInvoiceTemplate {
	t.Helper()

	tpl, err := f.create.Execute(context.Background(), CreateTemplateInput{
		TenantID: f.tenantID,
		TemplateInput: TemplateInput{
			ClientID:  f.client.ID,
			Name:      "Monthly retainer",
			Frequency: valueobject.FrequencyMonthly,
			StartDate: start,
			EndDate:   end,
			TaxRate:   decimal.NewFromInt(20),
			LineItems: []invoice.LineItemInput{
				{Description: "Retainer", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(500)},
			},
		},
	})
	require.NoError(t, err)
	return tpl
}

func TestCreateTemplate_Defaults(t *testing.T) {
	f := newFixture(t)
	tpl := f.template(t, date(2024, 1, 31), nil)

	assert.Equal(t, "GBP", tpl.Currency)
	assert.Equal(t, 31, tpl.AnchorDay)
	assert.Equal(t, date(2024, 1, 31), tpl.NextGenerationDate)
	assert.Equal(t, valueobject.DiscountTypeFixed, tpl.DiscountType)
	assert.Equal(t, entity.DefaultPaymentTermsDays, tpl.PaymentTermsDays)
	assert.True(t, tpl.Active)
}

func TestCreateTemplate_DueOnReceipt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	onReceipt := 0
	tpl, err := f.create.Execute(ctx, CreateTemplateInput{
		TenantID: f.tenantID,
		TemplateInput: TemplateInput{
			ClientID:         f.client.ID,
			Name:             "Hosting",
			Frequency:        valueobject.FrequencyMonthly,
			StartDate:        date(2024, 5, 1),
			PaymentTermsDays: &onReceipt,
			LineItems: []invoice.LineItemInput{
				{Description: "Hosting", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(40)},
			},
		},
	})
	require.NoError(t, err)
	assert.Zero(t, tpl.PaymentTermsDays)

	uc := NewGenerateDueUseCase(f.templateRepo, f.recurringTaskRepo, nil, 12)
	out, err := uc.Execute(ctx, GenerateDueInput{Now: date(2024, 5, 1), TenantID: &f.tenantID})
	require.NoError(t, err)
	require.Len(t, out.InvoiceIDs, 1)

	inv, err := f.invoiceRepo.FindByID(ctx, f.tenantID, out.InvoiceIDs[0])
	require.NoError(t, err)
	assert.True(t, date(2024, 5, 1).Equal(inv.DueDate), "due: %s", inv.DueDate)
}

func TestCreateTemplate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := TemplateInput{
		ClientID:  f.client.ID,
		Name:      "Retainer",
		Frequency: valueobject.FrequencyMonthly,
		StartDate: date(2024, 1, 1),
		LineItems: []invoice.LineItemInput{{Description: "Work", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(1)}},
	}

	noItems := base
	noItems.LineItems = nil
	badFrequency := base
	badFrequency.Frequency = "fortnightly"
	badEnd := base
	end := date(2023, 12, 1)
	badEnd.EndDate = &end
	unknownClient := base
	unknownClient.ClientID = uuid.New()
	negativeTerms := base
	minusOne := -1
	negativeTerms.PaymentTermsDays = &minusOne

	tests := []struct {
		name  string
		input TemplateInput
		code  domainerror.RecurringErrorCode
	}{
		{name: "no line items", input: noItems, code: domainerror.ErrCodeTemplateHasNoLineItems},
		{name: "bad frequency", input: badFrequency, code: domainerror.ErrCodeInvalidRecurrence},
		{name: "end before start", input: badEnd, code: domainerror.ErrCodeInvalidRecurrenceDates},
		{name: "unknown client", input: unknownClient, code: domainerror.ErrCodeRecurringClientNotFound},
		{name: "negative payment terms", input: negativeTerms, code: domainerror.ErrCodeInvalidRecurringTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.create.Execute(ctx, CreateTemplateInput{TenantID: f.tenantID, TemplateInput: tt.input})

			var recErr *domainerror.RecurringError
			require.True(t, errors.As(err, &recErr), "got %v", err)
			assert.Equal(t, tt.code, recErr.Code)
		})
	}
}

func TestGenerateDue_CatchesUpWithMonthEndClamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tpl := f.template(t, date(2024, 1, 31), nil)

	uc := NewGenerateDueUseCase(f.templateRepo, f.recurringTaskRepo, nil, 12)
	out, err := uc.Execute(ctx, GenerateDueInput{Now: date(2024, 4, 15), TenantID: &f.tenantID})
	require.NoError(t, err)

	assert.Equal(t, 1, out.TemplatesProcessed)
	assert.Equal(t, 3, out.InvoicesCreated)
	require.Len(t, out.InvoiceIDs, 3)

	wantDates := []time.Time{date(2024, 1, 31), date(2024, 2, 29), date(2024, 3, 31)}
	for i, id := range out.InvoiceIDs {
		inv, err := f.invoiceRepo.FindByID(ctx, f.tenantID, id)
		require.NoError(t, err)
		require.NotNil(t, inv.RecurrenceDate)
		assert.True(t, wantDates[i].Equal(*inv.RecurrenceDate), "occurrence %d: %s", i, inv.RecurrenceDate)
		assert.True(t, decimal.RequireFromString("600").Equal(inv.Total))
		assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	}

	stored, err := f.templateRepo.FindByID(ctx, f.tenantID, tpl.ID)
	require.NoError(t, err)
	assert.True(t, date(2024, 4, 30).Equal(stored.NextGenerationDate), "next: %s", stored.NextGenerationDate)

	again, err := uc.Execute(ctx, GenerateDueInput{Now: date(2024, 4, 15), TenantID: &f.tenantID})
	require.NoError(t, err)
	assert.Zero(t, again.InvoicesCreated)
}

func TestGenerateDue_RespectsCatchUpLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.template(t, date(2024, 1, 10), nil)

	uc := NewGenerateDueUseCase(f.templateRepo, f.recurringTaskRepo, nil, 2)
	now := date(2024, 4, 15)

	first, err := uc.Execute(ctx, GenerateDueInput{Now: now})
	require.NoError(t, err)
	assert.Equal(t, 2, first.InvoicesCreated)

	second, err := uc.Execute(ctx, GenerateDueInput{Now: now})
	require.NoError(t, err)
	assert.Equal(t, 2, second.InvoicesCreated)

	third, err := uc.Execute(ctx, GenerateDueInput{Now: now})
	require.NoError(t, err)
	assert.Zero(t, third.InvoicesCreated)
}

func TestGenerateDue_DeactivatesPastEndDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	end := date(2024, 2, 29)
	tpl := f.template(t, date(2024, 1, 31), &end)

	uc := NewGenerateDueUseCase(f.templateRepo, f.recurringTaskRepo, nil, 12)
	out, err := uc.Execute(ctx, GenerateDueInput{Now: date(2024, 6, 1), TenantID: &f.tenantID})
	require.NoError(t, err)
	assert.Equal(t, 2, out.InvoicesCreated)

	stored, err := f.templateRepo.FindByID(ctx, f.tenantID, tpl.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestGenerateDue_RecurringTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	recurring := entity.NewRecurringTask(
		f.tenantID, f.project.ID, "Weekly report", "", entity.TaskPriorityHigh,
		valueobject.Recurrence{Frequency: valueobject.FrequencyWeekly, Interval: 1},
		date(2024, 4, 1), nil,
	)
	require.NoError(t, f.recurringTaskRepo.Create(ctx, recurring))

	uc := NewGenerateDueUseCase(f.templateRepo, f.recurringTaskRepo, nil, 12)
	out, err := uc.Execute(ctx, GenerateDueInput{Now: date(2024, 4, 15)})
	require.NoError(t, err)
	assert.Equal(t, 3, out.TasksCreated)

	tasks, err := f.taskRepo.FindByProject(ctx, f.tenantID, f.project.ID, nil)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, entity.TaskPriorityHigh, tasks[0].Priority)
}
