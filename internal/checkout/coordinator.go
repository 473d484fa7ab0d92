package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/laundrypro-storefront/internal/cart"
	"github.com/angelmondragon/laundrypro-storefront/internal/orders"
	"github.com/angelmondragon/laundrypro-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/laundrypro-storefront/pkg/errors"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
	"github.com/angelmondragon/laundrypro-storefront/pkg/metrics"
	"github.com/angelmondragon/laundrypro-storefront/pkg/validation"
)

// OrderCreator submits a placement to the backend and returns the recorded order.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req orders.PlacementRequest) (*orders.Order, error)
}

// Input is the customer form collected at checkout.
type Input struct {
	Customer orders.CustomerInfo `json:"customerInfo"`
}

// Coordinator turns the session cart into a placed order.
type Coordinator struct {
	creator OrderCreator
	logg    *logger.Logger
	metrics *metrics.CheckoutMetrics
	now     func() time.Time
}

func NewCoordinator(creator OrderCreator, logg *logger.Logger, m *metrics.CheckoutMetrics) (*Coordinator, error) {
	if creator == nil {
		return nil, fmt.Errorf("order creator required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Coordinator{
		creator: creator,
		logg:    logg,
		metrics: m,
		now:     time.Now,
	}, nil
}

// Place submits the cart. An empty cart or invalid customer form fails before
// any backend call. On success the order is added to ordersStore and then the
// placed lines leave the cart; anything added while the order was in flight
// stays. On failure both stores are left untouched.
func (c *Coordinator) Place(ctx context.Context, cartStore *cart.Store, ordersStore *orders.Store, input Input) (*orders.Order, error) {
	items := cartStore.Items()
	if len(items) == 0 {
		c.metrics.IncAttempt(metrics.CheckoutOutcomeEmptyCart)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if err := validation.Struct(input); err != nil {
		c.metrics.IncAttempt(metrics.CheckoutOutcomeValidation)
		return nil, err
	}

	totals := cart.ComputeTotals(items)
	req := orders.PlacementRequest{
		PlacedAt: c.now().UTC(),
		Status:   enums.OrderStatusPending,
		Items:    snapshotItems(items),
		Total:    totals.Total,
		Customer: input.Customer,
	}

	order, err := c.creator.CreateOrder(ctx, req)
	if err != nil {
		c.metrics.IncAttempt(metrics.CheckoutOutcomeFailure)
		c.logg.Warn(c.logg.WithField(ctx, "error_code", string(pkgerrors.CodeOf(err))), "checkout failed")
		return nil, err
	}
	if order == nil {
		c.metrics.IncAttempt(metrics.CheckoutOutcomeFailure)
		return nil, pkgerrors.New(pkgerrors.CodeMalformedResponse, "backend returned no order")
	}

	ordersStore.AddOrder(*order)
	cartStore.RemovePlaced(items)

	c.metrics.IncAttempt(metrics.CheckoutOutcomeSuccess)
	c.logg.Info(c.logg.WithFields(c.logg.WithOrderID(ctx, order.ID), map[string]any{
		"item_count": len(req.Items),
		"total":      totals.Total.StringFixed(2),
	}), "order placed")
	return order, nil
}

func snapshotItems(items []cart.Item) []orders.Item {
	out := make([]orders.Item, len(items))
	for i, it := range items {
		out[i] = orders.Item{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Price:    it.Price,
			Unit:     it.Unit,
			Quantity: it.Quantity,
		}
	}
	return out
}
