package sales

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/aswin-roy/ladybird-desk/internal/api"
	pkgerrors "github.com/aswin-roy/ladybird-desk/pkg/errors"
	"github.com/aswin-roy/ladybird-desk/pkg/logger"
	"github.com/aswin-roy/ladybird-desk/pkg/metrics"
	"github.com/aswin-roy/ladybird-desk/pkg/models"
)

type backendClient interface {
	EnsureWalkInCustomer(ctx context.Context) (*models.Customer, error)
	CreateSaleEntry(ctx context.Context, payload api.SaleEntryPayload) (*models.SaleEntry, error)
	ListSaleEntries(ctx context.Context) ([]models.SaleEntry, error)
}

// Outcome reports a completed submission: the stored entry and the freshly
// reloaded sales list feeding the list view.
type Outcome struct {
	Entry   *models.SaleEntry
	Entries []models.SaleEntry
}

// Submitter turns a sale draft into a backend sale entry. One submission is
// in flight at a time; concurrent attempts are rejected with a busy error
// and the draft is only reset after the backend accepts it.
type Submitter struct {
	api     backendClient
	logg    *logger.Logger
	metrics *metrics.WorkflowMetrics
	busy    atomic.Bool
}

// NewSubmitter wires a sale submitter.
func NewSubmitter(client backendClient, logg *logger.Logger, m *metrics.WorkflowMetrics) (*Submitter, error) {
	if client == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	return &Submitter{api: client, logg: logg, metrics: m}, nil
}

// Busy reports whether a submission is outstanding.
func (s *Submitter) Busy() bool {
	return s.busy.Load()
}

// Submit validates the draft, maps it to the wire shape, and performs the
// call. On failure the draft is untouched so the operator can correct and
// retry; on success it is reset and the sales list reloaded.
func (s *Submitter) Submit(ctx context.Context, draft *Draft) (*Outcome, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, pkgerrors.New(pkgerrors.CodeBusy, "a sale submission is already in flight")
	}
	defer s.busy.Store(false)

	start := time.Now()
	outcome, err := s.submit(ctx, draft)
	if err != nil {
		s.metrics.ObserveSubmission("sale", "failure", time.Since(start))
		return nil, err
	}
	s.metrics.ObserveSubmission("sale", "success", time.Since(start))
	return outcome, nil
}

func (s *Submitter) submit(ctx context.Context, draft *Draft) (*Outcome, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	customer := draft.Customer()
	if customer == nil {
		walkIn, err := s.api.EnsureWalkInCustomer(ctx)
		if err != nil {
			return nil, err
		}
		customer = walkIn
	}
	if !customer.RecordID.Resolved() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer has no backend identity")
	}

	entry, err := s.api.CreateSaleEntry(ctx, toWirePayload(draft, customer))
	if err != nil {
		return nil, err
	}

	draft.Reset()

	outcome := &Outcome{Entry: entry}
	entries, err := s.api.ListSaleEntries(ctx)
	if err != nil {
		// The sale is already stored; a failed reload only stales the list.
		if s.logg != nil {
			s.logg.Warn(ctx, "sales list reload failed after submission")
		}
		return outcome, nil
	}
	outcome.Entries = entries
	return outcome, nil
}

func validateDraft(draft *Draft) error {
	if draft == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "sale draft is required")
	}

	var errs error
	if draft.Empty() {
		errs = multierr.Append(errs, fmt.Errorf("cart is empty"))
	}
	for _, line := range draft.Lines() {
		if !line.Product.RecordID.Resolved() {
			errs = multierr.Append(errs, fmt.Errorf("product %q has no backend identity", line.Product.Name))
		}
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "sale draft is incomplete")
	}
	return nil
}

func toWirePayload(draft *Draft, customer *models.Customer) api.SaleEntryPayload {
	totals := draft.Totals()
	payload := api.SaleEntryPayload{
		CustomerID:    customer.Backend,
		Subtotal:      wireAmount(totals.Subtotal),
		Tax:           wireAmount(totals.Tax),
		Total:         wireAmount(totals.Total),
		PaymentMethod: draft.PaymentMethod().String(),
		PaidAmount:    wireAmount(draft.PaidAmount()),
	}
	for _, line := range draft.Lines() {
		payload.Items = append(payload.Items, api.SaleItemPayload{
			ProductID: line.Product.Backend,
			Quantity:  line.Quantity,
			Rate:      wireAmount(line.Product.UnitPrice),
		})
	}
	return payload
}

func wireAmount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
