package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/aswin-roy/ladybird-desk/pkg/models"
)

// SearchCustomers returns customers whose name or phone contains the query.
// An empty query returns an empty list without touching the backend.
func (c *Client) SearchCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, nil
	}

	params := url.Values{"query": {trimmed}}
	var out []models.Customer
	if err := c.do(ctx, http.MethodGet, "/customers", params, nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCustomer registers a new customer record.
func (c *Client) CreateCustomer(ctx context.Context, payload CreateCustomerPayload) (*models.Customer, error) {
	if err := validateOutbound(payload); err != nil {
		return nil, err
	}
	var out models.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", nil, payload, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnsureWalkInCustomer returns the walk-in sentinel customer, creating it
// when the backend has none yet. Sales with no selected customer resolve to
// this record at submission time.
func (c *Client) EnsureWalkInCustomer(ctx context.Context) (*models.Customer, error) {
	matches, err := c.SearchCustomers(ctx, models.WalkInCustomerName)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if matches[i].IsWalkIn() {
			return &matches[i], nil
		}
	}
	return c.CreateCustomer(ctx, CreateCustomerPayload{Name: models.WalkInCustomerName})
}
