package models

import (
	"github.com/aswin-roy/ladybird-desk/pkg/enums"
	"github.com/aswin-roy/ladybird-desk/pkg/types"
	"github.com/shopspring/decimal"
)

// Product is a catalog item. Stock is the backend's count at the moment of
// the read; the client treats it as advisory only and never reserves it.
type Product struct {
	types.RecordID
	Name      string                `json:"name"`
	SKU       string                `json:"sku"`
	Category  enums.ProductCategory `json:"category"`
	UnitPrice decimal.Decimal       `json:"price"`
	Stock     int                   `json:"stock"`
}

// Worker is a shop worker that order assignments resolve to by name.
type Worker struct {
	types.RecordID
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}
