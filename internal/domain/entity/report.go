package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialReport summarizes billing and bookkeeping for a tenant over a period.
type FinancialReport struct {
	StartDate        time.Time
	EndDate          time.Time
	Invoiced         decimal.Decimal
	Collected        decimal.Decimal
	Outstanding      decimal.Decimal
	InvoiceCount     int
	OverdueCount     int
	OverdueAmount    decimal.Decimal
	Income           decimal.Decimal
	Expense          decimal.Decimal
	Net              decimal.Decimal
	InvoicesByStatus map[InvoiceStatus]int
}
