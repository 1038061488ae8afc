package valueobject

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// MoneyPlaces is the number of decimal places every derived amount is rounded to.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// DiscountType selects how a discount value is interpreted.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// IsValid reports whether the discount type is known. The empty value means fixed.
func (t DiscountType) IsValid() bool {
	return t == "" || t == DiscountTypePercentage || t == DiscountTypeFixed
}

// LineInput holds the priced fields of a single line item.
type LineInput struct {
	Quantity       decimal.Decimal
	Rate           decimal.Decimal
	AmountOverride *decimal.Decimal
	TaxRate        decimal.Decimal
	DiscountType   DiscountType
	DiscountValue  decimal.Decimal
}

// LineTotals are the derived amounts of one line item.
type LineTotals struct {
	Amount         decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
}

// TotalsInput is everything needed to price an invoice.
type TotalsInput struct {
	Lines           []LineInput
	TaxRate         decimal.Decimal
	DiscountType    DiscountType
	DiscountValue   decimal.Decimal
	ShippingAmount  decimal.Decimal
	ShippingTaxRate decimal.Decimal
}

// Totals is the priced result. Every field is rounded to MoneyPlaces.
type Totals struct {
	Lines             []LineTotals
	Subtotal          decimal.Decimal
	TaxAmount         decimal.Decimal
	DiscountAmount    decimal.Decimal
	ShippingAmount    decimal.Decimal
	ShippingTaxAmount decimal.Decimal
	Total             decimal.Decimal
}

// RoundMoney rounds half away from zero to MoneyPlaces.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// Percent returns round(base * rate / 100).
func Percent(base, rate decimal.Decimal) decimal.Decimal {
	return RoundMoney(base.Mul(rate).Div(hundred))
}

// ComputeLine prices a single line item.
func ComputeLine(in LineInput) (LineTotals, error) {
	if in.Quantity.IsNegative() || in.Rate.IsNegative() {
		return LineTotals{}, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidLineItem,
			"line item quantity and rate must not be negative",
			domainerror.ErrInvalidLineItem,
		)
	}
	if in.AmountOverride != nil && in.AmountOverride.IsNegative() {
		return LineTotals{}, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidLineItem,
			"line item amount must not be negative",
			domainerror.ErrInvalidLineItem,
		)
	}
	if in.TaxRate.IsNegative() {
		return LineTotals{}, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidTaxRate,
			"line item tax rate must not be negative",
			domainerror.ErrInvalidTaxRate,
		)
	}

	amount := RoundMoney(in.Quantity.Mul(in.Rate))
	if in.AmountOverride != nil {
		amount = RoundMoney(*in.AmountOverride)
	}

	discount, err := discountAmount(amount, in.DiscountType, in.DiscountValue)
	if err != nil {
		return LineTotals{}, err
	}

	return LineTotals{
		Amount:         amount,
		TaxAmount:      Percent(amount, in.TaxRate),
		DiscountAmount: discount,
	}, nil
}

// ComputeTotals prices an invoice:
//
//	subtotal = sum(line amount)
//	tax      = round(subtotal * taxRate / 100) + sum(line tax)
//	discount = invoice discount + sum(line discount)
//	total    = max(round(subtotal + tax + shipping + shippingTax - discount), 0)
func ComputeTotals(in TotalsInput) (Totals, error) {
	if in.TaxRate.IsNegative() || in.ShippingTaxRate.IsNegative() {
		return Totals{}, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidTaxRate,
			"tax rate must not be negative",
			domainerror.ErrInvalidTaxRate,
		)
	}
	if in.ShippingAmount.IsNegative() {
		return Totals{}, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidShipping,
			"shipping amount must not be negative",
			domainerror.ErrInvalidShipping,
		)
	}

	lines := make([]LineTotals, 0, len(in.Lines))
	for _, line := range in.Lines {
		lt, err := ComputeLine(line)
		if err != nil {
			return Totals{}, err
		}
		lines = append(lines, lt)
	}

	subtotal := lo.Reduce(lines, func(acc decimal.Decimal, lt LineTotals, _ int) decimal.Decimal {
		return acc.Add(lt.Amount)
	}, decimal.Zero)
	lineTax := lo.Reduce(lines, func(acc decimal.Decimal, lt LineTotals, _ int) decimal.Decimal {
		return acc.Add(lt.TaxAmount)
	}, decimal.Zero)
	lineDiscount := lo.Reduce(lines, func(acc decimal.Decimal, lt LineTotals, _ int) decimal.Decimal {
		return acc.Add(lt.DiscountAmount)
	}, decimal.Zero)

	invoiceDiscount, err := discountAmount(subtotal, in.DiscountType, in.DiscountValue)
	if err != nil {
		return Totals{}, err
	}

	shipping := RoundMoney(in.ShippingAmount)
	taxAmount := Percent(subtotal, in.TaxRate).Add(lineTax)
	discount := invoiceDiscount.Add(lineDiscount)
	shippingTax := Percent(shipping, in.ShippingTaxRate)

	total := RoundMoney(subtotal.Add(taxAmount).Add(shipping).Add(shippingTax).Sub(discount))
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Lines:             lines,
		Subtotal:          subtotal,
		TaxAmount:         taxAmount,
		DiscountAmount:    discount,
		ShippingAmount:    shipping,
		ShippingTaxAmount: shippingTax,
		Total:             total,
	}, nil
}

// AmountDue returns max(total - paid, 0).
func AmountDue(total, paid decimal.Decimal) decimal.Decimal {
	due := total.Sub(paid)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

func discountAmount(base decimal.Decimal, discountType DiscountType, value decimal.Decimal) (decimal.Decimal, error) {
	if !discountType.IsValid() {
		return decimal.Zero, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidDiscount,
			"discount type must be 'percentage' or 'fixed'",
			domainerror.ErrInvalidDiscount,
		)
	}
	if value.IsNegative() {
		return decimal.Zero, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidDiscount,
			"discount must not be negative",
			domainerror.ErrInvalidDiscount,
		)
	}

	if discountType == DiscountTypePercentage {
		if value.GreaterThan(hundred) {
			return decimal.Zero, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvalidDiscount,
				"discount percentage must not exceed 100",
				domainerror.ErrInvalidDiscount,
			)
		}
		return Percent(base, value), nil
	}

	return RoundMoney(value), nil
}
