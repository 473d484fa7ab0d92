package cart

import (
	"github.com/angelmondragon/laundrypro-storefront/pkg/money"
	"github.com/shopspring/decimal"
)

// Totals are derived from the cart contents on demand and never cached.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums the lines, applies the flat tax rate and rounds each
// figure to cents.
func ComputeTotals(items []Item) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	tax := subtotal.Mul(money.TaxRate)
	return Totals{
		Subtotal: money.Round(subtotal),
		Tax:      money.Round(tax),
		Total:    money.Round(subtotal.Add(tax)),
	}
}
