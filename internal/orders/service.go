package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/laundrypro-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/laundrypro-storefront/pkg/errors"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
)

// Backend is the subset of the laundry API the order sync needs.
type Backend interface {
	ListOrders(ctx context.Context) ([]Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	GetOrderStatus(ctx context.Context, orderID string) (enums.OrderStatus, error)
	CancelOrder(ctx context.Context, orderID string) (enums.OrderStatus, error)
}

// RefreshOptions tunes a listing refresh.
type RefreshOptions struct {
	SortNewestFirst bool
}

// Service keeps a session's Orders Store in step with the backend. Results that
// arrive after ctx is done are dropped without touching the store.
type Service interface {
	Refresh(ctx context.Context, store *Store, opts RefreshOptions) ([]Order, error)
	Fetch(ctx context.Context, store *Store, orderID string) (*Order, error)
	RefreshStatus(ctx context.Context, store *Store, orderID string) (enums.OrderStatus, error)
	Cancel(ctx context.Context, store *Store, orderID string) (enums.OrderStatus, error)
}

type service struct {
	backend Backend
	logg    *logger.Logger
}

// NewService builds an order sync service over backend.
func NewService(backend Backend, logg *logger.Logger) (Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("orders backend required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{backend: backend, logg: logg}, nil
}

func (s *service) Refresh(ctx context.Context, store *Store, opts RefreshOptions) ([]Order, error) {
	list, err := s.backend.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.SortNewestFirst {
		list = SortByPlacedDesc(list)
	}
	store.SetOrders(list)
	s.logg.Debug(s.logg.WithField(ctx, "order_count", len(list)), "orders refreshed")
	return store.Orders(), nil
}

func (s *service) Fetch(ctx context.Context, store *Store, orderID string) (*Order, error) {
	orderID, err := requireOrderID(orderID)
	if err != nil {
		return nil, err
	}
	order, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := store.Find(orderID); ok {
		store.UpdateOrderStatus(orderID, order.Status)
	}
	return order, nil
}

func (s *service) RefreshStatus(ctx context.Context, store *Store, orderID string) (enums.OrderStatus, error) {
	orderID, err := requireOrderID(orderID)
	if err != nil {
		return "", err
	}
	status, err := s.backend.GetOrderStatus(ctx, orderID)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	store.UpdateOrderStatus(orderID, status)
	return status, nil
}

func (s *service) Cancel(ctx context.Context, store *Store, orderID string) (enums.OrderStatus, error) {
	orderID, err := requireOrderID(orderID)
	if err != nil {
		return "", err
	}
	status, err := s.backend.CancelOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	store.UpdateOrderStatus(orderID, status)
	s.logg.Info(s.logg.WithOrderID(ctx, orderID), "order cancelled")
	return status, nil
}

func requireOrderID(orderID string) (string, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	return orderID, nil
}
