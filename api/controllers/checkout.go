package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/laundrypro-storefront/api/responses"
	"github.com/angelmondragon/laundrypro-storefront/api/validators"
	"github.com/angelmondragon/laundrypro-storefront/internal/cart"
	checkoutsvc "github.com/angelmondragon/laundrypro-storefront/internal/checkout"
	"github.com/angelmondragon/laundrypro-storefront/internal/orders"
	"github.com/angelmondragon/laundrypro-storefront/internal/session"
	pkgerrors "github.com/angelmondragon/laundrypro-storefront/pkg/errors"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
)

type orderPlacer interface {
	Place(ctx context.Context, cartStore *cart.Store, ordersStore *orders.Store, input checkoutsvc.Input) (*orders.Order, error)
}

// Checkout places the session cart as an order.
func Checkout(svc orderPlacer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		sess := session.FromContext(r.Context())

		// The coordinator validates the form after its empty-cart check.
		var payload checkoutsvc.Input
		if err := validators.DecodeJSON(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Place(r.Context(), sess.Cart, sess.Orders, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderView(*order))
	}
}
