package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aswin-roy/ladybird-desk/pkg/enums"
	pkgerrors "github.com/aswin-roy/ladybird-desk/pkg/errors"
	"github.com/aswin-roy/ladybird-desk/pkg/models"
	"github.com/aswin-roy/ladybird-desk/pkg/types"
)

const deliveryDateLayout = "2006-01-02"

// wireOrder is the backend's order shape; status arrives as a wire token.
type wireOrder struct {
	types.RecordID
	CustomerID      string           `json:"customerId"`
	CustomerName    string           `json:"customerName"`
	ItemDescription string           `json:"itemDescription"`
	Status          string           `json:"status"`
	DeliveryDate    string           `json:"deliveryDate"`
	Assignments     []wireAssignment `json:"workerAssignments"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type wireAssignment struct {
	WorkerID   string          `json:"workerId"`
	WorkerName string          `json:"workerName"`
	Task       string          `json:"task"`
	Commission decimal.Decimal `json:"commission"`
}

// ListOrders fetches the order list with display-form statuses.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var raw []wireOrder
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &raw, false); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(raw))
	for _, w := range raw {
		orders = append(orders, c.fromWireOrder(ctx, w))
	}
	return orders, nil
}

// CreateOrder submits a new order body.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (*models.Order, error) {
	if err := validateOutbound(payload); err != nil {
		return nil, err
	}
	var raw wireOrder
	if err := c.do(ctx, http.MethodPost, "/orders", nil, payload, &raw, false); err != nil {
		return nil, err
	}
	order := c.fromWireOrder(ctx, raw)
	return &order, nil
}

// UpdateOrder replaces the stored order identified by its backend id.
func (c *Client) UpdateOrder(ctx context.Context, backendID string, payload OrderPayload) (*models.Order, error) {
	if backendID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order backend id is required")
	}
	if err := validateOutbound(payload); err != nil {
		return nil, err
	}
	var raw wireOrder
	if err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(backendID), nil, payload, &raw, false); err != nil {
		return nil, err
	}
	order := c.fromWireOrder(ctx, raw)
	return &order, nil
}

// DeleteOrder removes the stored order identified by its backend id.
func (c *Client) DeleteOrder(ctx context.Context, backendID string) error {
	if backendID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order backend id is required")
	}
	return c.do(ctx, http.MethodDelete, "/orders/"+url.PathEscape(backendID), nil, nil, nil, false)
}

func (c *Client) fromWireOrder(ctx context.Context, w wireOrder) models.Order {
	status, err := enums.OrderStatusFromWire(w.Status)
	if err != nil {
		// Unknown token: keep the raw value rather than dropping the order.
		status = enums.OrderStatus(w.Status)
		c.log(ctx, "error", http.MethodGet, "/orders", map[string]any{"error": err.Error()})
	}

	order := models.Order{
		RecordID:        w.RecordID,
		CustomerID:      w.CustomerID,
		CustomerName:    w.CustomerName,
		ItemDescription: w.ItemDescription,
		Status:          status,
		CreatedAt:       w.CreatedAt,
	}

	if w.DeliveryDate != "" {
		if parsed, err := time.Parse(deliveryDateLayout, w.DeliveryDate); err == nil {
			order.DeliveryDate = &parsed
		} else if parsed, err := time.Parse(time.RFC3339, w.DeliveryDate); err == nil {
			order.DeliveryDate = &parsed
		}
	}

	for _, a := range w.Assignments {
		order.Assignments = append(order.Assignments, models.OrderAssignment{
			WorkerID:   a.WorkerID,
			WorkerName: a.WorkerName,
			Task:       enums.WorkerTask(a.Task),
			Commission: a.Commission,
		})
	}
	return order
}
