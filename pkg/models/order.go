package models

import (
	"time"

	"github.com/aswin-roy/ladybird-desk/pkg/enums"
	"github.com/aswin-roy/ladybird-desk/pkg/types"
	"github.com/shopspring/decimal"
)

// Order is a tailoring order as shown in the order list. Status carries the
// display form; the wire token is translated at the API boundary.
type Order struct {
	types.RecordID
	CustomerID      string            `json:"customerId"`
	CustomerName    string            `json:"customerName,omitempty"`
	ItemDescription string            `json:"itemDescription"`
	Status          enums.OrderStatus `json:"-"`
	DeliveryDate    *time.Time        `json:"deliveryDate,omitempty"`
	Assignments     []OrderAssignment `json:"workerAssignments,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// OrderAssignment is one worker/task/commission line on a stored order.
type OrderAssignment struct {
	WorkerID   string           `json:"workerId"`
	WorkerName string           `json:"workerName,omitempty"`
	Task       enums.WorkerTask `json:"task"`
	Commission decimal.Decimal  `json:"commission"`
}

// SaleEntry is a point-of-sale entry as stored by the backend. Item rates
// are snapshots taken at submission time.
type SaleEntry struct {
	types.RecordID
	CustomerID    string              `json:"customerId"`
	Items         []SaleItem          `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Tax           decimal.Decimal     `json:"tax"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	PaidAmount    decimal.Decimal     `json:"paidAmount"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// SaleItem references a product by backend identity with the quantity and
// unit rate captured when the sale was submitted.
type SaleItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	Rate      decimal.Decimal `json:"rate"`
}
