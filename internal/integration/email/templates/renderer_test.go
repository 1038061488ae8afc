package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Invoice(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	html, text, err := r.Render("invoice", InvoiceData{
		RecipientName: "Acme <Ops>",
		InvoiceNumber: "INV-202403-001",
		Total:         "USD 110.00",
		AmountDue:     "USD 60.00",
		DueDate:       "2024-03-31",
		Message:       "See you soon",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "INV-202403-001")
	assert.Contains(t, html, "Acme &lt;Ops&gt;")
	assert.Contains(t, html, "See you soon")
	assert.Contains(t, text, "Amount due: USD 60.00")
	assert.Contains(t, text, "Acme <Ops>")
}

func TestRenderer_PaymentReceipt(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	html, text, err := r.Render("payment_receipt", PaymentReceiptData{
		InvoiceNumber: "INV-202403-001",
		Amount:        "USD 50.00",
		AmountDue:     "USD 0.00",
		PaymentDate:   "2024-03-05",
		Method:        "bank",
		PaidInFull:    true,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "paid in full")
	assert.Contains(t, text, "USD 50.00")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, _, err = r.Render("password_reset", nil)
	assert.Error(t, err)
}
