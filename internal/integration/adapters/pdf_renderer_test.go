package adapters

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-crm/backend/internal/domain/entity"
)

func TestPDFRenderer_RenderPDF(t *testing.T) {
	tenantID := uuid.New()
	client := entity.NewClient(tenantID, "Zoë Café", "zoe@cafe.test", "", "", "1 Rue Montmartre", "EUR", "")

	issue := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inv := entity.NewInvoice(tenantID, client.ID, nil, issue, issue.AddDate(0, 0, 30), "EUR")
	inv.InvoiceNumber = "INV-202403-001"
	inv.TaxRate = decimal.NewFromInt(10)
	inv.Notes = "Thank you"
	inv.LineItems = []*entity.LineItem{
		{ID: uuid.New(), InvoiceID: inv.ID, Description: "Design sprint", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(50)},
	}
	require.NoError(t, inv.Recalculate())
	inv.Payments = []*entity.InvoicePayment{
		entity.NewInvoicePayment(tenantID, inv.ID, decimal.NewFromInt(10), issue, "bank", "REF-1", ""),
	}

	out, err := NewPDFRenderer("Agency Ltd").RenderPDF(context.Background(), inv, client)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "USD 110.00", money("USD", decimal.NewFromInt(110)))
	assert.Equal(t, "EUR 0.50", money("EUR", decimal.RequireFromString("0.5")))
}
