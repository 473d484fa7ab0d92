package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/laundrypro-storefront/api/responses"
	"github.com/angelmondragon/laundrypro-storefront/api/validators"
	"github.com/angelmondragon/laundrypro-storefront/internal/catalog"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
)

type catalogReader interface {
	List(ctx context.Context, category string) ([]catalog.Service, error)
	Get(ctx context.Context, serviceID string) (*catalog.Service, error)
}

// ListCatalog returns the services on offer, optionally narrowed by ?category=.
func ListCatalog(cat catalogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := validators.SanitizeString(r.URL.Query().Get("category"), 64)
		items, err := cat.List(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]serviceView, len(items))
		for i, it := range items {
			out[i] = newServiceView(it)
		}
		responses.WriteSuccess(w, out)
	}
}

func GetCatalogItem(cat catalogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := cat.Get(r.Context(), chi.URLParam(r, "serviceId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newServiceView(*svc))
	}
}
