package controllers

import (
	"time"

	"github.com/angelmondragon/laundrypro-storefront/internal/cart"
	"github.com/angelmondragon/laundrypro-storefront/internal/catalog"
	"github.com/angelmondragon/laundrypro-storefront/internal/orders"
	"github.com/angelmondragon/laundrypro-storefront/pkg/money"
)

// Money is rendered as fixed two-decimal strings so clients never see float drift.

type lineView struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Unit      string `json:"unit,omitempty"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

type totalsView struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

type cartView struct {
	Items  []lineView `json:"items"`
	Count  int        `json:"count"`
	Totals totalsView `json:"totals"`
}

func newCartView(store *cart.Store) cartView {
	items := store.Items()
	lines := make([]lineView, len(items))
	count := 0
	for i, it := range items {
		lines[i] = lineView{
			ItemID:    it.ItemID,
			Name:      it.Name,
			Price:     money.Format(it.Price),
			Unit:      it.Unit,
			Quantity:  it.Quantity,
			LineTotal: money.Format(money.Round(it.LineTotal())),
		}
		count += it.Quantity
	}
	totals := cart.ComputeTotals(items)
	return cartView{
		Items: lines,
		Count: count,
		Totals: totalsView{
			Subtotal: money.Format(totals.Subtotal),
			Tax:      money.Format(totals.Tax),
			Total:    money.Format(totals.Total),
		},
	}
}

type customerView struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
}

type orderView struct {
	ID       string       `json:"id"`
	Date     time.Time    `json:"date"`
	Status   string       `json:"status"`
	Items    []lineView   `json:"items"`
	Total    string       `json:"total"`
	Customer customerView `json:"customerInfo"`
}

func newOrderView(o orders.Order) orderView {
	lines := make([]lineView, len(o.Items))
	for i, it := range o.Items {
		lines[i] = lineView{
			ItemID:    it.ItemID,
			Name:      it.Name,
			Price:     money.Format(it.Price),
			Unit:      it.Unit,
			Quantity:  it.Quantity,
			LineTotal: money.Format(money.Round(money.Line(it.Price, it.Quantity))),
		}
	}
	return orderView{
		ID:       o.ID,
		Date:     o.PlacedAt,
		Status:   o.Status.String(),
		Items:    lines,
		Total:    money.Format(o.Total),
		Customer: customerView(o.Customer),
	}
}

func newOrderViews(list []orders.Order) []orderView {
	out := make([]orderView, len(list))
	for i, o := range list {
		out[i] = newOrderView(o)
	}
	return out
}

type trackingStepView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	State string `json:"state"`
}

type trackingView struct {
	OrderID string             `json:"orderId"`
	Status  string             `json:"status"`
	Steps   []trackingStepView `json:"steps"`
}

func newTrackingView(o orders.Order) trackingView {
	steps := orders.TrackingSteps(o.Status)
	out := make([]trackingStepView, len(steps))
	for i, s := range steps {
		out[i] = trackingStepView{Key: s.Key, Label: s.Label, State: s.State.String()}
	}
	return trackingView{OrderID: o.ID, Status: o.Status.String(), Steps: out}
}

type serviceView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Unit        string `json:"unit,omitempty"`
	Category    string `json:"category,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Available   bool   `json:"isAvailable"`
}

func newServiceView(s catalog.Service) serviceView {
	return serviceView{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       money.Format(s.Price),
		Unit:        s.Unit,
		Category:    s.Category,
		Duration:    s.Duration,
		Available:   s.Available,
	}
}
