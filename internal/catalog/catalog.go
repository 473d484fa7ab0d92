package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/laundrypro-storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/laundrypro-storefront/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service is a laundry service offered by the backend.
type Service struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Unit        string
	Category    string
	Duration    string
	Available   bool
}

// Source loads catalog entries from the backend.
type Source interface {
	ListServices(ctx context.Context) ([]Service, error)
	GetService(ctx context.Context, serviceID string) (*Service, error)
}

// Catalog is a read-through view over the backend's service list.
type Catalog struct {
	source Source
}

func New(source Source) (*Catalog, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	return &Catalog{source: source}, nil
}

// List returns all services, narrowed to category when it is non-empty.
func (c *Catalog) List(ctx context.Context, category string) ([]Service, error) {
	items, err := c.source.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(items, category), nil
}

func (c *Catalog) Get(ctx context.Context, serviceID string) (*Service, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service id is required")
	}
	return c.source.GetService(ctx, serviceID)
}

// Filter keeps services whose category matches, ignoring case.
func Filter(items []Service, category string) []Service {
	category = strings.TrimSpace(category)
	if category == "" {
		return items
	}
	out := make([]Service, 0, len(items))
	for _, it := range items {
		if strings.EqualFold(it.Category, category) {
			out = append(out, it)
		}
	}
	return out
}

// ToCartItem builds the cart line for quantity units of svc.
func ToCartItem(svc Service, quantity int) cart.Item {
	return cart.Item{
		ItemID:   svc.ID,
		Name:     svc.Name,
		Price:    svc.Price,
		Unit:     svc.Unit,
		Quantity: quantity,
	}
}
