package model

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineAmount is quantity times unit price, before tax.
func LineAmount(item LineItem) decimal.Decimal {
	return decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.UnitPrice))
}

// Subtotal sums the line amounts.
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(LineAmount(item))
	}
	return sum
}

// TaxAmount sums the tax of every line at its own rate.
func TaxAmount(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		rate := decimal.NewFromFloat(item.TaxRate).Div(hundred)
		sum = sum.Add(LineAmount(item).Mul(rate))
	}
	return sum
}

// Total is subtotal plus tax minus the flat discount. The result is not
// clamped: a discount above subtotal and tax gives a negative total.
func Total(items []LineItem, discount float64) decimal.Decimal {
	return Subtotal(items).Add(TaxAmount(items)).Sub(decimal.NewFromFloat(discount))
}
