package models

import (
	"github.com/aswin-roy/ladybird-desk/pkg/types"
)

// WalkInCustomerName is the display name of the sentinel customer used when
// a sale is submitted with nobody selected.
const WalkInCustomerName = "Walk-in Customer"

// Customer is a boutique customer as returned by the backend. Lookups match
// name or phone substring.
type Customer struct {
	types.RecordID
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address,omitempty"`
	OrderCount int    `json:"orderCount"`
}

// IsWalkIn reports whether this record is the walk-in sentinel.
func (c Customer) IsWalkIn() bool {
	return c.Name == WalkInCustomerName
}
