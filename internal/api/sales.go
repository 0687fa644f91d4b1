package api

import (
	"context"
	"net/http"

	"github.com/aswin-roy/ladybird-desk/pkg/models"
)

// CreateSaleEntry submits a completed sale.
func (c *Client) CreateSaleEntry(ctx context.Context, payload SaleEntryPayload) (*models.SaleEntry, error) {
	if err := validateOutbound(payload); err != nil {
		return nil, err
	}
	var out models.SaleEntry
	if err := c.do(ctx, http.MethodPost, "/salesentries", nil, payload, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSaleEntries fetches the stored sales, used for the full list reload
// after a successful submission.
func (c *Client) ListSaleEntries(ctx context.Context) ([]models.SaleEntry, error) {
	var out []models.SaleEntry
	if err := c.do(ctx, http.MethodGet, "/salesentries", nil, nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}
