package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/aswin-roy/ladybird-desk/pkg/models"
)

// ListProducts fetches the full product catalog. Stock counts are read-time
// snapshots and carry no reservation.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// ListWorkers fetches the worker roster.
func (c *Client) ListWorkers(ctx context.Context) ([]models.Worker, error) {
	var out []models.Worker
	if err := c.do(ctx, http.MethodGet, "/workers", nil, nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// WorkersByName indexes the roster by case-folded name for assignment
// resolution. Later duplicates shadow earlier ones, matching the backend's
// own lookup-by-name behavior.
func WorkersByName(workers []models.Worker) map[string]models.Worker {
	index := make(map[string]models.Worker, len(workers))
	for _, w := range workers {
		index[strings.ToLower(strings.TrimSpace(w.Name))] = w
	}
	return index
}
