package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	pkgerrors "github.com/aswin-roy/ladybird-desk/pkg/errors"
	"github.com/aswin-roy/ladybird-desk/pkg/logger"
	"github.com/aswin-roy/ladybird-desk/pkg/models"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBackoff  = 500 * time.Millisecond
)

type backendClient interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListWorkers(ctx context.Context) ([]models.Worker, error)
}

// Options tunes the load retry policy. Zero values take the defaults.
type Options struct {
	RetryAttempts uint64
	RetryBackoff  time.Duration
}

// Store caches the product catalog and worker roster for the session. Loads
// retry transient backend failures; reads serve the last good snapshot.
// Stock counts are advisory: they reflect the backend at load time and are
// never decremented locally.
type Store struct {
	api  backendClient
	logg *logger.Logger
	opts Options

	mu       sync.RWMutex
	products []models.Product
	workers  []models.Worker
	loaded   bool
}

// NewStore wires a catalog store around the backend client.
func NewStore(client backendClient, logg *logger.Logger, opts Options) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = defaultRetryAttempts
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = defaultRetryBackoff
	}
	return &Store{api: client, logg: logg, opts: opts}, nil
}

// Load fetches the catalog and roster, retrying transient backend failures
// with exponential backoff. An existing snapshot survives a failed reload.
func (s *Store) Load(ctx context.Context) error {
	backoff := retry.WithMaxRetries(s.opts.RetryAttempts, retry.NewExponential(s.opts.RetryBackoff))

	var products []models.Product
	var workers []models.Worker
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		if products, err = s.api.ListProducts(ctx); err != nil {
			return s.classify(ctx, "product catalog", err)
		}
		if workers, err = s.api.ListWorkers(ctx); err != nil {
			return s.classify(ctx, "worker roster", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.products = products
	s.workers = workers
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// classify marks dependency-class failures retryable; anything else, a
// rejected token or malformed payload for instance, fails immediately.
func (s *Store) classify(ctx context.Context, what string, err error) error {
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeDependency {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("retrying %s load", what))
		}
		return retry.RetryableError(err)
	}
	return err
}

// Loaded reports whether a snapshot has been taken.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Products returns a copy of the cached catalog.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Workers returns a copy of the cached roster.
func (s *Store) Workers() []models.Worker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Worker, len(s.workers))
	copy(out, s.workers)
	return out
}

// ProductByDisplay finds a product by its numeric display id.
func (s *Store) ProductByDisplay(id int) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Display == id {
			return p, nil
		}
	}
	return models.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no product with id %d", id))
}

// SearchProducts returns products whose name or SKU contains the query,
// case-insensitively. An empty query returns the whole catalog.
func (s *Store) SearchProducts(query string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.Products()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), query) || strings.Contains(strings.ToLower(p.SKU), query) {
			out = append(out, p)
		}
	}
	return out
}
