package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/laundrypro-storefront/api/responses"
	"github.com/angelmondragon/laundrypro-storefront/api/validators"
	"github.com/angelmondragon/laundrypro-storefront/internal/catalog"
	"github.com/angelmondragon/laundrypro-storefront/internal/session"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
)

type addCartItemRequest struct {
	ServiceID string `json:"serviceId" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=999"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		responses.WriteSuccess(w, newCartView(sess.Cart))
	}
}

// AddCartItem resolves the service from the catalog so name and price always
// come from the backend, then merges it into the cart.
func AddCartItem(cat catalogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		svc, err := cat.Get(r.Context(), payload.ServiceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.Cart.AddItem(catalog.ToCartItem(*svc, payload.Quantity))
		responses.WriteSuccess(w, newCartView(sess.Cart))
	}
}

// UpdateCartItem clamps the requested quantity to at least 1; removal goes
// through DELETE.
func UpdateCartItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity := payload.Quantity
		if quantity < 1 {
			quantity = 1
		}
		sess.Cart.UpdateQuantity(chi.URLParam(r, "itemId"), quantity)
		responses.WriteSuccess(w, newCartView(sess.Cart))
	}
}

func RemoveCartItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		sess.Cart.RemoveItem(chi.URLParam(r, "itemId"))
		responses.WriteSuccess(w, newCartView(sess.Cart))
	}
}

func ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		sess.Cart.Clear()
		responses.WriteSuccess(w, newCartView(sess.Cart))
	}
}
