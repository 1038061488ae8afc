package dto

import (
	"github.com/agency-crm/backend/internal/domain/entity"
)

// FinancialReportResponse represents the financial report for a period.
type FinancialReportResponse struct {
	StartDate        string         `json:"start_date"`
	EndDate          string         `json:"end_date"`
	Invoiced         string         `json:"invoiced"`
	Collected        string         `json:"collected"`
	Outstanding      string         `json:"outstanding"`
	InvoiceCount     int            `json:"invoice_count"`
	OverdueCount     int            `json:"overdue_count"`
	OverdueAmount    string         `json:"overdue_amount"`
	Income           string         `json:"income"`
	Expense          string         `json:"expense"`
	Net              string         `json:"net"`
	InvoicesByStatus map[string]int `json:"invoices_by_status"`
}

// ToFinancialReportResponse converts a financial report.
func ToFinancialReportResponse(r *entity.FinancialReport) FinancialReportResponse {
	byStatus := make(map[string]int, len(r.InvoicesByStatus))
	for status, count := range r.InvoicesByStatus {
		byStatus[string(status)] = count
	}

	return FinancialReportResponse{
		StartDate:        formatDate(r.StartDate),
		EndDate:          formatDate(r.EndDate),
		Invoiced:         money(r.Invoiced),
		Collected:        money(r.Collected),
		Outstanding:      money(r.Outstanding),
		InvoiceCount:     r.InvoiceCount,
		OverdueCount:     r.OverdueCount,
		OverdueAmount:    money(r.OverdueAmount),
		Income:           money(r.Income),
		Expense:          money(r.Expense),
		Net:              money(r.Net),
		InvoicesByStatus: byStatus,
	}
}
