package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/aswin-roy/ladybird-desk/pkg/errors"
	"github.com/aswin-roy/ladybird-desk/pkg/models"
	"github.com/aswin-roy/ladybird-desk/pkg/types"
)

type stubBackend struct {
	products     []models.Product
	workers      []models.Worker
	productCalls int
	productErrs  []error
}

func (s *stubBackend) ListProducts(ctx context.Context) ([]models.Product, error) {
	call := s.productCalls
	s.productCalls++
	if call < len(s.productErrs) && s.productErrs[call] != nil {
		return nil, s.productErrs[call]
	}
	return s.products, nil
}

func (s *stubBackend) ListWorkers(ctx context.Context) ([]models.Worker, error) {
	return s.workers, nil
}

func sampleProducts() []models.Product {
	return []models.Product{
		{RecordID: types.RecordID{Display: 1, Backend: "p-1"}, Name: "Silk Kurta", SKU: "SK-01", UnitPrice: decimal.RequireFromString("1200"), Stock: 4},
		{RecordID: types.RecordID{Display: 2, Backend: "p-2"}, Name: "Cotton Saree", SKU: "CS-02", UnitPrice: decimal.RequireFromString("800"), Stock: 0},
	}
}

func newTestStore(t *testing.T, backend *stubBackend) *Store {
	t.Helper()
	store, err := NewStore(backend, nil, Options{RetryAttempts: 2, RetryBackoff: time.Millisecond})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestLoadRetriesTransientFailures(t *testing.T) {
	backend := &stubBackend{
		products:    sampleProducts(),
		productErrs: []error{pkgerrors.New(pkgerrors.CodeDependency, "backend unavailable")},
	}
	store := newTestStore(t, backend)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if backend.productCalls != 2 {
		t.Fatalf("expected retry after transient failure, got %d calls", backend.productCalls)
	}
	if !store.Loaded() || len(store.Products()) != 2 {
		t.Fatalf("expected snapshot after load")
	}
}

func TestLoadStopsOnPermanentFailure(t *testing.T) {
	backend := &stubBackend{
		products:    sampleProducts(),
		productErrs: []error{pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")},
	}
	store := newTestStore(t, backend)

	err := store.Load(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized passthrough, got %v", err)
	}
	if backend.productCalls != 1 {
		t.Fatalf("permanent failure must not retry, got %d calls", backend.productCalls)
	}
	if store.Loaded() {
		t.Fatal("failed load must not mark the store loaded")
	}
}

func TestLoadExhaustsRetryBudget(t *testing.T) {
	transient := pkgerrors.New(pkgerrors.CodeDependency, "backend unavailable")
	backend := &stubBackend{
		products:    sampleProducts(),
		productErrs: []error{transient, transient, transient},
	}
	store := newTestStore(t, backend)

	if err := store.Load(context.Background()); err == nil {
		t.Fatal("expected load to fail after exhausting retries")
	}
	// Two configured retries mean three attempts in total.
	if backend.productCalls != 3 {
		t.Fatalf("expected 3 attempts, got %d", backend.productCalls)
	}
}

func TestFailedReloadKeepsSnapshot(t *testing.T) {
	backend := &stubBackend{products: sampleProducts()}
	store := newTestStore(t, backend)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	backend.productErrs = []error{
		pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired"),
	}
	backend.productCalls = 0
	if err := store.Load(context.Background()); err == nil {
		t.Fatal("expected reload to fail")
	}
	if len(store.Products()) != 2 {
		t.Fatal("failed reload must keep the previous snapshot")
	}
}

func TestProductLookups(t *testing.T) {
	backend := &stubBackend{products: sampleProducts()}
	store := newTestStore(t, backend)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	product, err := store.ProductByDisplay(2)
	if err != nil || product.Name != "Cotton Saree" {
		t.Fatalf("lookup by display: %v %+v", err, product)
	}
	if _, err := store.ProductByDisplay(99); pkgerrors.As(err) == nil {
		t.Fatal("expected not-found for unknown display id")
	}

	if got := store.SearchProducts("sk-0"); len(got) != 1 || got[0].Display != 1 {
		t.Fatalf("sku search: %+v", got)
	}
	if got := store.SearchProducts("  "); len(got) != 2 {
		t.Fatalf("blank query must return everything, got %+v", got)
	}
}
