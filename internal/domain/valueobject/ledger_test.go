package valueobject

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		input        TotalsInput
		wantSubtotal string
		wantTax      string
		wantDiscount string
		wantShipTax  string
		wantTotal    string
	}{
		{
			name: "two units at fifty with ten percent tax",
			input: TotalsInput{
				Lines:   []LineInput{{Quantity: d("2"), Rate: d("50")}},
				TaxRate: d("10"),
			},
			wantSubtotal: "100",
			wantTax:      "10",
			wantDiscount: "0",
			wantShipTax:  "0",
			wantTotal:    "110",
		},
		{
			name: "percentage discount and taxed shipping",
			input: TotalsInput{
				Lines: []LineInput{
					{Quantity: d("3"), Rate: d("19.99")},
					{Quantity: d("1.5"), Rate: d("80")},
				},
				TaxRate:         d("8.25"),
				DiscountType:    DiscountTypePercentage,
				DiscountValue:   d("10"),
				ShippingAmount:  d("12.50"),
				ShippingTaxRate: d("5"),
			},
			// 59.97 + 120 = 179.97; tax 14.85; discount 18.00; ship tax 0.63
			wantSubtotal: "179.97",
			wantTax:      "14.85",
			wantDiscount: "18",
			wantShipTax:  "0.63",
			wantTotal:    "189.95",
		},
		{
			name: "fixed discount larger than subtotal clamps total at zero",
			input: TotalsInput{
				Lines:         []LineInput{{Quantity: d("1"), Rate: d("10")}},
				DiscountType:  DiscountTypeFixed,
				DiscountValue: d("25"),
			},
			wantSubtotal: "10",
			wantTax:      "0",
			wantDiscount: "25",
			wantShipTax:  "0",
			wantTotal:    "0",
		},
		{
			name: "amount override wins over quantity times rate",
			input: TotalsInput{
				Lines: []LineInput{{Quantity: d("3"), Rate: d("33.333"), AmountOverride: ptr(d("100"))}},
			},
			wantSubtotal: "100",
			wantTax:      "0",
			wantDiscount: "0",
			wantShipTax:  "0",
			wantTotal:    "100",
		},
		{
			name: "line level tax and discount add to invoice level",
			input: TotalsInput{
				Lines: []LineInput{
					{Quantity: d("1"), Rate: d("200"), TaxRate: d("5"), DiscountType: DiscountTypePercentage, DiscountValue: d("50")},
					{Quantity: d("2"), Rate: d("25")},
				},
				TaxRate:       d("10"),
				DiscountValue: d("5"),
			},
			// subtotal 250; tax 25 + 10 = 35; discount 5 + 100 = 105
			wantSubtotal: "250",
			wantTax:      "35",
			wantDiscount: "105",
			wantShipTax:  "0",
			wantTotal:    "180",
		},
		{
			name:         "no line items",
			input:        TotalsInput{TaxRate: d("10")},
			wantSubtotal: "0",
			wantTax:      "0",
			wantDiscount: "0",
			wantShipTax:  "0",
			wantTotal:    "0",
		},
		{
			name: "half cent rounds away from zero",
			input: TotalsInput{
				Lines:   []LineInput{{Quantity: d("1"), Rate: d("0.05")}},
				TaxRate: d("50"),
			},
			wantSubtotal: "0.05",
			wantTax:      "0.03",
			wantDiscount: "0",
			wantShipTax:  "0",
			wantTotal:    "0.08",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotals(tt.input)
			require.NoError(t, err)

			assert.True(t, d(tt.wantSubtotal).Equal(got.Subtotal), "subtotal: got %s", got.Subtotal)
			assert.True(t, d(tt.wantTax).Equal(got.TaxAmount), "tax: got %s", got.TaxAmount)
			assert.True(t, d(tt.wantDiscount).Equal(got.DiscountAmount), "discount: got %s", got.DiscountAmount)
			assert.True(t, d(tt.wantShipTax).Equal(got.ShippingTaxAmount), "shipping tax: got %s", got.ShippingTaxAmount)
			assert.True(t, d(tt.wantTotal).Equal(got.Total), "total: got %s", got.Total)
			assert.Len(t, got.Lines, len(tt.input.Lines))
		})
	}
}

func TestComputeTotals_TotalsIdentity(t *testing.T) {
	got, err := ComputeTotals(TotalsInput{
		Lines: []LineInput{
			{Quantity: d("7"), Rate: d("13.37")},
			{Quantity: d("0.25"), Rate: d("120")},
		},
		TaxRate:         d("19"),
		DiscountType:    DiscountTypeFixed,
		DiscountValue:   d("3.10"),
		ShippingAmount:  d("4.99"),
		ShippingTaxRate: d("19"),
	})
	require.NoError(t, err)

	expected := got.Subtotal.Add(got.TaxAmount).Add(got.ShippingAmount).Add(got.ShippingTaxAmount).Sub(got.DiscountAmount)
	assert.True(t, expected.Equal(got.Total), "expected %s, got %s", expected, got.Total)
}

func TestComputeTotals_Validation(t *testing.T) {
	tests := []struct {
		name     string
		input    TotalsInput
		wantCode domainerror.InvoiceErrorCode
	}{
		{
			name:     "negative quantity",
			input:    TotalsInput{Lines: []LineInput{{Quantity: d("-1"), Rate: d("10")}}},
			wantCode: domainerror.ErrCodeInvalidLineItem,
		},
		{
			name:     "negative rate",
			input:    TotalsInput{Lines: []LineInput{{Quantity: d("1"), Rate: d("-10")}}},
			wantCode: domainerror.ErrCodeInvalidLineItem,
		},
		{
			name:     "negative tax rate",
			input:    TotalsInput{TaxRate: d("-1")},
			wantCode: domainerror.ErrCodeInvalidTaxRate,
		},
		{
			name:     "negative shipping",
			input:    TotalsInput{ShippingAmount: d("-5")},
			wantCode: domainerror.ErrCodeInvalidShipping,
		},
		{
			name:     "percentage over one hundred",
			input:    TotalsInput{DiscountType: DiscountTypePercentage, DiscountValue: d("101")},
			wantCode: domainerror.ErrCodeInvalidDiscount,
		},
		{
			name:     "unknown discount type",
			input:    TotalsInput{DiscountType: "bogus"},
			wantCode: domainerror.ErrCodeInvalidDiscount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTotals(tt.input)
			require.Error(t, err)

			var invErr *domainerror.InvoiceError
			require.True(t, errors.As(err, &invErr))
			assert.Equal(t, tt.wantCode, invErr.Code)
		})
	}
}

func TestAmountDue(t *testing.T) {
	assert.True(t, d("30").Equal(AmountDue(d("110"), d("80"))))
	assert.True(t, decimal.Zero.Equal(AmountDue(d("110"), d("110"))))
	assert.True(t, decimal.Zero.Equal(AmountDue(d("100"), d("120"))))
}

func ptr(v decimal.Decimal) *decimal.Decimal {
	return &v
}
