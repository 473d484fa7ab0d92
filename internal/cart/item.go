package cart

import (
	"github.com/angelmondragon/laundrypro-storefront/pkg/money"
	"github.com/shopspring/decimal"
)

// Item is one line in the cart. ItemID is the merge key; Unit is informational.
type Item struct {
	ItemID   string          `json:"itemId"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit,omitempty"`
	Quantity int             `json:"quantity"`
}

func (i Item) LineTotal() decimal.Decimal {
	return money.Line(i.Price, i.Quantity)
}
