package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/angelmondragon/laundrypro-storefront/internal/orders"
	"github.com/angelmondragon/laundrypro-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/laundrypro-storefront/pkg/errors"
)

const (
	opCreateOrder    = "create_order"
	opListOrders     = "list_orders"
	opGetOrder       = "get_order"
	opGetOrderStatus = "get_order_status"
	opCancelOrder    = "cancel_order"
)

// CreateOrder submits req and returns the recorded order. Fields the backend
// leaves out of its reply are taken from the request.
func (c *Client) CreateOrder(ctx context.Context, req orders.PlacementRequest) (*orders.Order, error) {
	body, err := c.do(ctx, call{
		operation: opCreateOrder,
		method:    http.MethodPost,
		path:      c.ordersPath,
		body:      newCreateOrderDTO(req),
	})
	if err != nil {
		return nil, err
	}
	var dto orderDTO
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	order, err := dto.toModel()
	if err != nil {
		return nil, err
	}
	if order.PlacedAt.IsZero() {
		order.PlacedAt = req.PlacedAt
	}
	if order.Status == "" {
		order.Status = req.Status
	}
	if order.Items == nil {
		order.Items = req.Items
	}
	if dto.Total == nil && dto.TotalAmount == nil {
		order.Total = req.Total
	}
	if dto.CustomerInfo == nil {
		order.Customer = req.Customer
	}
	return &order, nil
}

// ListOrders returns the caller's orders in backend order.
func (c *Client) ListOrders(ctx context.Context) ([]orders.Order, error) {
	body, err := c.do(ctx, call{operation: opListOrders, method: http.MethodGet, path: c.ordersPath})
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[orderDTO](body, "orders", "data")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMalformedResponse, err, "decode backend response")
	}
	out := make([]orders.Order, 0, len(dtos))
	for i := range dtos {
		if err := validateResponse(&dtos[i]); err != nil {
			return nil, err
		}
		o, err := dtos[i].toModel()
		if err != nil {
			return nil, err
		}
		if o.Status == "" {
			o.Status = enums.OrderStatusPending
		}
		out = append(out, o)
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*orders.Order, error) {
	body, err := c.do(ctx, call{
		operation: opGetOrder,
		method:    http.MethodGet,
		path:      c.orderPath(orderID, ""),
		notFound:  "order not found",
	})
	if err != nil {
		return nil, err
	}
	var dto orderDTO
	if err := decode(body, &dto); err != nil {
		return nil, err
	}
	if dto.Status == "" {
		return nil, pkgerrors.New(pkgerrors.CodeMalformedResponse, "backend order is missing a status")
	}
	order, err := dto.toModel()
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetOrderStatus(ctx context.Context, orderID string) (enums.OrderStatus, error) {
	return c.statusCall(ctx, call{
		operation: opGetOrderStatus,
		method:    http.MethodGet,
		path:      c.orderPath(orderID, "status"),
		notFound:  "order not found",
	})
}

// CancelOrder asks the backend to cancel and returns the status it reports.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (enums.OrderStatus, error) {
	return c.statusCall(ctx, call{
		operation: opCancelOrder,
		method:    http.MethodPost,
		path:      c.orderPath(orderID, "cancel"),
		notFound:  "order not found",
	})
}

func (c *Client) statusCall(ctx context.Context, cl call) (enums.OrderStatus, error) {
	body, err := c.do(ctx, cl)
	if err != nil {
		return "", err
	}
	var dto statusDTO
	if err := decode(body, &dto); err != nil {
		return "", err
	}
	return parseStatus(dto.Status)
}

func (c *Client) orderPath(orderID, suffix string) string {
	p := c.ordersPath + "/" + url.PathEscape(orderID)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}
