package orders

import (
	"time"

	"github.com/angelmondragon/laundrypro-storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// Item is a value snapshot of a cart line taken at placement time.
type Item struct {
	ItemID   string
	Name     string
	Price    decimal.Decimal
	Unit     string
	Quantity int
}

// CustomerInfo is the contact and delivery data collected at checkout.
type CustomerInfo struct {
	FullName string `json:"fullName" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=40"`
	Address  string `json:"address" validate:"required,max=200"`
	City     string `json:"city" validate:"omitempty,max=80"`
	ZipCode  string `json:"zipCode" validate:"omitempty,max=20"`
}

// Order is a placed order as known to the storefront.
type Order struct {
	ID       string
	PlacedAt time.Time
	Status   enums.OrderStatus
	Items    []Item
	Total    decimal.Decimal
	Customer CustomerInfo
}

// PlacementRequest is the order submitted to the backend; the backend assigns the id.
type PlacementRequest struct {
	PlacedAt time.Time
	Status   enums.OrderStatus
	Items    []Item
	Total    decimal.Decimal
	Customer CustomerInfo
}

func (o Order) clone() Order {
	if o.Items != nil {
		items := make([]Item, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return o
}
