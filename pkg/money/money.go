// Package money holds the decimal conventions shared by cart totals and order payloads.
package money

import "github.com/shopspring/decimal"

// TaxRate is the flat rate applied to every cart subtotal.
var TaxRate = decimal.RequireFromString("0.10")

// Round rounds half away from zero to cents.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Format renders an amount with exactly two decimal places.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// Line returns price × quantity.
func Line(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
