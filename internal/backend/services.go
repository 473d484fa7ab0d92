package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/angelmondragon/laundrypro-storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/laundrypro-storefront/pkg/errors"
)

const (
	opListServices = "list_services"
	opGetService   = "get_service"
)

// ListServices returns the backend's catalog.
func (c *Client) ListServices(ctx context.Context) ([]catalog.Service, error) {
	body, err := c.do(ctx, call{operation: opListServices, method: http.MethodGet, path: c.servicesPath})
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[serviceDTO](body, "services", "data")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMalformedResponse, err, "decode backend response")
	}
	out := make([]catalog.Service, 0, len(dtos))
	for i := range dtos {
		if err := validateResponse(&dtos[i]); err != nil {
			return nil, err
		}
		out = append(out, dtos[i].toModel())
	}
	return out, nil
}

// GetService returns one catalog entry.
func (c *Client) GetService(ctx context.Context, serviceID string) (*catalog.Service, error) {
	body, err := c.do(ctx, call{
		operation: opGetService,
		method:    http.MethodGet,
		path:      c.servicesPath + "/" + url.PathEscape(serviceID),
		notFound:  "service not found",
	})
	if err != nil {
		return nil, err
	}
	var dto serviceDTO
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	svc := dto.toModel()
	return &svc, nil
}
