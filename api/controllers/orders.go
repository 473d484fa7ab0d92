package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/laundrypro-storefront/api/responses"
	"github.com/angelmondragon/laundrypro-storefront/api/validators"
	"github.com/angelmondragon/laundrypro-storefront/internal/orders"
	"github.com/angelmondragon/laundrypro-storefront/internal/session"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
)

const sortNewest = "newest"

// ListOrders returns the session's Orders Store as held locally.
func ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		responses.WriteSuccess(w, newOrderViews(sess.Orders.Orders()))
	}
}

// RefreshOrders replaces the local list with the backend's; ?sort=newest
// orders it by placement time.
func RefreshOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		sort, err := validators.ParseQueryChoice(r, "sort", sortNewest)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		opts := orders.RefreshOptions{SortNewestFirst: sort == sortNewest}
		list, err := svc.Refresh(r.Context(), sess.Orders, opts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderViews(list))
	}
}

func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		orderID := chi.URLParam(r, "orderId")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, orderID)
		}
		order, err := svc.Fetch(ctx, sess.Orders, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderView(*order))
	}
}

type orderStatusView struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

func GetOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		orderID := chi.URLParam(r, "orderId")
		status, err := svc.RefreshStatus(r.Context(), sess.Orders, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orderStatusView{OrderID: orderID, Status: status.String()})
	}
}

// GetOrderTracking renders the four-step progress indicator, using the local
// copy of the order when the session already knows it.
func GetOrderTracking(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		orderID := chi.URLParam(r, "orderId")

		order, ok := sess.Orders.Find(orderID)
		if !ok {
			fetched, err := svc.Fetch(r.Context(), sess.Orders, orderID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			order = *fetched
		}
		responses.WriteSuccess(w, newTrackingView(order))
	}
}

func CancelOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		orderID := chi.URLParam(r, "orderId")
		status, err := svc.Cancel(r.Context(), sess.Orders, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orderStatusView{OrderID: orderID, Status: status.String()})
	}
}
