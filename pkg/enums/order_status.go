package enums

import "fmt"

// OrderStatus tracks where a tailoring order sits in the shop's workflow.
// It is a reporting field: any status may follow any other.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusCutting    OrderStatus = "Cutting"
	OrderStatusStitching  OrderStatus = "Stitching"
	OrderStatusInProgress OrderStatus = "In Progress"
	OrderStatusReady      OrderStatus = "Ready"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusCutting,
	OrderStatusStitching,
	OrderStatusInProgress,
	OrderStatusReady,
	OrderStatusDelivered,
}

// wireByStatus is the fixed translation table between the display statuses
// and the tokens the backend accepts. Ready and Delivered pass through with
// their display casing; the backend has always been fed them that way, so
// the asymmetry is kept until the backend confirms otherwise.
var wireByStatus = map[OrderStatus]string{
	OrderStatusPending:    "pending",
	OrderStatusCutting:    "cutting",
	OrderStatusStitching:  "stitching",
	OrderStatusInProgress: "inprogress",
	OrderStatusReady:      "Ready",
	OrderStatusDelivered:  "Delivered",
}

var statusByWire = func() map[string]OrderStatus {
	m := make(map[string]OrderStatus, len(wireByStatus))
	for status, wire := range wireByStatus {
		m[wire] = status
	}
	return m
}()

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// Wire returns the token the backend expects for this status.
func (o OrderStatus) Wire() string {
	if wire, ok := wireByStatus[o]; ok {
		return wire
	}
	return string(o)
}

// ParseOrderStatus converts raw display input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// OrderStatusFromWire converts a backend token into an OrderStatus.
func OrderStatusFromWire(value string) (OrderStatus, error) {
	if status, ok := statusByWire[value]; ok {
		return status, nil
	}
	return "", fmt.Errorf("invalid order status token %q", value)
}

// OrderStatuses returns the full ordered status set.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(validOrderStatuses))
	copy(out, validOrderStatuses)
	return out
}
