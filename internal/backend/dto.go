package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/laundrypro-storefront/internal/catalog"
	"github.com/angelmondragon/laundrypro-storefront/internal/orders"
	"github.com/angelmondragon/laundrypro-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/laundrypro-storefront/pkg/errors"
	"github.com/shopspring/decimal"
)

// flexID accepts ids encoded as JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

type serviceDTO struct {
	ID          flexID           `json:"id" validate:"required"`
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Unit        string           `json:"unit"`
	Category    string           `json:"category"`
	Duration    string           `json:"duration"`
	IsAvailable *bool            `json:"isAvailable"`
}

func (s serviceDTO) toModel() catalog.Service {
	available := true
	if s.IsAvailable != nil {
		available = *s.IsAvailable
	}
	return catalog.Service{
		ID:          string(s.ID),
		Name:        s.Name,
		Description: s.Description,
		Price:       *s.Price,
		Unit:        s.Unit,
		Category:    s.Category,
		Duration:    s.Duration,
		Available:   available,
	}
}

type customerInfoDTO struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
}

func customerFromModel(c orders.CustomerInfo) customerInfoDTO {
	return customerInfoDTO(c)
}

func (c customerInfoDTO) toModel() orders.CustomerInfo {
	return orders.CustomerInfo(c)
}

// createOrderItemDTO and createOrderDTO are the outgoing placement payload. Money is
// sent as JSON numbers, matching what the backend has always accepted.
type createOrderItemDTO struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Unit     string  `json:"unit,omitempty"`
	Quantity int     `json:"quantity"`
}

type createOrderDTO struct {
	Date         time.Time            `json:"date"`
	Status       string               `json:"status"`
	Items        []createOrderItemDTO `json:"items"`
	Total        float64              `json:"total"`
	CustomerInfo customerInfoDTO      `json:"customerInfo"`
}

func newCreateOrderDTO(req orders.PlacementRequest) createOrderDTO {
	items := make([]createOrderItemDTO, len(req.Items))
	for i, it := range req.Items {
		items[i] = createOrderItemDTO{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Price:    it.Price.InexactFloat64(),
			Unit:     it.Unit,
			Quantity: it.Quantity,
		}
	}
	return createOrderDTO{
		Date:         req.PlacedAt.UTC(),
		Status:       req.Status.String(),
		Items:        items,
		Total:        req.Total.InexactFloat64(),
		CustomerInfo: customerFromModel(req.Customer),
	}
}

type orderItemDTO struct {
	ItemID   flexID          `json:"itemId"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit"`
	Quantity int             `json:"quantity"`
}

// orderDTO is the order shape the backend returns. Older payloads use createdAt
// and totalAmount; both spellings are accepted.
type orderDTO struct {
	ID           flexID           `json:"id" validate:"required"`
	Date         *time.Time       `json:"date"`
	CreatedAt    *time.Time       `json:"createdAt"`
	Status       string           `json:"status"`
	Items        []orderItemDTO   `json:"items"`
	Total        *decimal.Decimal `json:"total"`
	TotalAmount  *decimal.Decimal `json:"totalAmount"`
	CustomerInfo *customerInfoDTO `json:"customerInfo"`
}

// toModel leaves Status empty when the backend omitted it; callers pick the default.
func (o orderDTO) toModel() (orders.Order, error) {
	out := orders.Order{ID: string(o.ID)}
	if o.Status != "" {
		status, err := parseStatus(o.Status)
		if err != nil {
			return orders.Order{}, err
		}
		out.Status = status
	}
	switch {
	case o.Date != nil:
		out.PlacedAt = *o.Date
	case o.CreatedAt != nil:
		out.PlacedAt = *o.CreatedAt
	}
	switch {
	case o.Total != nil:
		out.Total = *o.Total
	case o.TotalAmount != nil:
		out.Total = *o.TotalAmount
	}
	if o.CustomerInfo != nil {
		out.Customer = o.CustomerInfo.toModel()
	}
	if len(o.Items) > 0 {
		out.Items = make([]orders.Item, len(o.Items))
		for i, it := range o.Items {
			out.Items[i] = orders.Item{
				ItemID:   string(it.ItemID),
				Name:     it.Name,
				Price:    it.Price,
				Unit:     it.Unit,
				Quantity: it.Quantity,
			}
		}
	}
	return out, nil
}

type statusDTO struct {
	Status string `json:"status" validate:"required"`
}

func parseStatus(raw string) (enums.OrderStatus, error) {
	status, err := enums.ParseOrderStatus(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeMalformedResponse, err, "decode backend response")
	}
	return status, nil
}

// errorBodyDTO reads the backend's failure payload: {"error":"..."} or
// {"message":"..."}, with error optionally an object carrying message.
type errorBodyDTO struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

func (e errorBodyDTO) text() string {
	if len(e.Error) > 0 {
		var s string
		if err := json.Unmarshal(e.Error, &s); err == nil && strings.TrimSpace(s) != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(e.Error, &nested); err == nil && strings.TrimSpace(nested.Message) != "" {
			return nested.Message
		}
	}
	return strings.TrimSpace(e.Message)
}

// decodeList accepts either a bare array or an object wrapping it.
func decodeList[T any](body []byte, keys ...string) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, err
	}
	for _, key := range keys {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		var out []T
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, fmt.Errorf("list payload missing any of %v", keys)
}
