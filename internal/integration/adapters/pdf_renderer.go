package adapters

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/application/adapter"
	"github.com/agency-crm/backend/internal/domain/entity"
	"github.com/agency-crm/backend/internal/domain/valueobject"
)

// Column widths of the line item table. They add up to the 190mm A4 text width.
var lineItemColumns = []struct {
	title string
	width float64
	align string
}{
	{"Description", 86, "L"},
	{"Qty", 18, "R"},
	{"Rate", 26, "R"},
	{"Tax", 26, "R"},
	{"Amount", 34, "R"},
}

// pdfRenderer implements adapter.InvoiceRenderer with gofpdf.
type pdfRenderer struct {
	issuerName string
}

// NewPDFRenderer creates an invoice renderer. issuerName heads every document.
func NewPDFRenderer(issuerName string) adapter.InvoiceRenderer {
	return &pdfRenderer{
		issuerName: issuerName,
	}
}

// RenderPDF renders header, client, line items, totals and payments on A4.
func (r *pdfRenderer) RenderPDF(_ context.Context, invoice *entity.Invoice, client *entity.Client) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(invoice.InvoiceNumber, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(120, 10, tr(r.issuerName))
	pdf.CellFormat(70, 10, tr("Invoice "+invoice.InvoiceNumber), "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Issued: %s", invoice.IssueDate.Format(valueobject.DateLayout)), "", 1, "R", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Due: %s", invoice.DueDate.Format(valueobject.DateLayout)), "", 1, "R", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Status: %s", invoice.Status), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	if client != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 8, "Bill To:")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		for _, line := range []string{client.Name, client.Company, client.Address, client.Email, client.Phone} {
			if line == "" {
				continue
			}
			pdf.MultiCell(120, 6, tr(line), "", "L", false)
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Arial", "B", 10)
	for i, col := range lineItemColumns {
		ln := 0
		if i == len(lineItemColumns)-1 {
			ln = 1
		}
		pdf.CellFormat(col.width, 8, col.title, "1", ln, "C", false, 0, "")
	}

	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.LineItems {
		cells := []string{
			tr(item.Description),
			item.Quantity.String(),
			money(invoice.Currency, item.Rate),
			money(invoice.Currency, item.TaxAmount),
			money(invoice.Currency, item.Amount),
		}
		for i, col := range lineItemColumns {
			ln := 0
			if i == len(lineItemColumns)-1 {
				ln = 1
			}
			pdf.CellFormat(col.width, 7, cells[i], "1", ln, col.align, false, 0, "")
		}
	}
	pdf.Ln(4)

	totals := []struct {
		label string
		value decimal.Decimal
		show  bool
	}{
		{"Subtotal", invoice.Subtotal, true},
		{"Tax", invoice.TaxAmount, invoice.TaxAmount.IsPositive()},
		{"Discount", invoice.DiscountAmount.Neg(), invoice.DiscountAmount.IsPositive()},
		{"Shipping", invoice.ShippingAmount, invoice.ShippingAmount.IsPositive()},
		{"Shipping tax", invoice.ShippingTaxAmount, invoice.ShippingTaxAmount.IsPositive()},
		{"Total", invoice.Total, true},
		{"Paid", invoice.AmountPaid, invoice.AmountPaid.IsPositive()},
		{"Amount due", invoice.AmountDue(), true},
	}
	for _, row := range totals {
		if !row.show {
			continue
		}
		style := ""
		if row.label == "Total" || row.label == "Amount due" {
			style = "B"
		}
		pdf.SetFont("Arial", style, 11)
		pdf.CellFormat(156, 7, row.label+":", "", 0, "R", false, 0, "")
		pdf.CellFormat(34, 7, money(invoice.Currency, row.value), "", 1, "R", false, 0, "")
	}

	if len(invoice.Payments) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 8, "Payments")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		for _, p := range invoice.Payments {
			pdf.CellFormat(40, 6, p.Date.Format(valueobject.DateLayout), "", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, tr(p.Method), "", 0, "L", false, 0, "")
			pdf.CellFormat(66, 6, tr(p.Reference), "", 0, "L", false, 0, "")
			pdf.CellFormat(34, 6, money(invoice.Currency, p.Amount), "", 1, "R", false, 0, "")
		}
	}

	for _, block := range []struct{ title, body string }{{"Notes", invoice.Notes}, {"Terms", invoice.Terms}} {
		if block.body == "" {
			continue
		}
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(40, 7, block.title)
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(190, 5, tr(block.body), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func money(currency string, amount decimal.Decimal) string {
	return currency + " " + amount.StringFixed(2)
}
