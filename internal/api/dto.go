package api

// Wire payloads for the boutique backend. Money travels as plain numbers
// rounded to two decimals; identities are always the backend string form.

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateCustomerPayload is the body for POST /customers.
type CreateCustomerPayload struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// AssignmentPayload is one resolved worker assignment on an order body.
type AssignmentPayload struct {
	WorkerID   string  `json:"workerId" validate:"required"`
	Task       string  `json:"task" validate:"required,oneof=Cutting Stitching"`
	Commission float64 `json:"commission" validate:"gte=0"`
}

// OrderPayload is the body for POST/PUT /orders. Status carries the wire
// token, already translated from the display form.
type OrderPayload struct {
	CustomerID      string              `json:"customerId" validate:"required"`
	ItemDescription string              `json:"itemDescription" validate:"required"`
	Status          string              `json:"status" validate:"required"`
	DeliveryDate    string              `json:"deliveryDate,omitempty"`
	Assignments     []AssignmentPayload `json:"workerAssignments" validate:"dive"`
}

// SaleItemPayload is one cart line on a sale entry body. Rate is the unit
// price snapshot at submission time.
type SaleItemPayload struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"min=1"`
	Rate      float64 `json:"rate" validate:"gte=0"`
}

// SaleEntryPayload is the body for POST /salesentries.
type SaleEntryPayload struct {
	CustomerID    string            `json:"customerId" validate:"required"`
	Items         []SaleItemPayload `json:"items" validate:"min=1,dive"`
	Subtotal      float64           `json:"subtotal" validate:"gte=0"`
	Tax           float64           `json:"tax" validate:"gte=0"`
	Total         float64           `json:"total" validate:"gte=0"`
	PaymentMethod string            `json:"paymentMethod" validate:"required,oneof=Cash Card UPI"`
	PaidAmount    float64           `json:"paidAmount" validate:"gte=0"`
}
