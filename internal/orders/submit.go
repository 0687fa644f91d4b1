package orders

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"

	"github.com/aswin-roy/ladybird-desk/internal/api"
	pkgerrors "github.com/aswin-roy/ladybird-desk/pkg/errors"
	"github.com/aswin-roy/ladybird-desk/pkg/logger"
	"github.com/aswin-roy/ladybird-desk/pkg/metrics"
	"github.com/aswin-roy/ladybird-desk/pkg/models"
)

const deliveryDateLayout = "2006-01-02"

type backendClient interface {
	ListWorkers(ctx context.Context) ([]models.Worker, error)
	CreateOrder(ctx context.Context, payload api.OrderPayload) (*models.Order, error)
	UpdateOrder(ctx context.Context, backendID string, payload api.OrderPayload) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// Outcome reports a completed submission: the stored order and the freshly
// reloaded order list.
type Outcome struct {
	Order  *models.Order
	Orders []models.Order
}

// Submitter turns an order draft into a backend order, creating or updating
// depending on the draft. Submissions are serialized by a busy flag.
type Submitter struct {
	api     backendClient
	logg    *logger.Logger
	metrics *metrics.WorkflowMetrics
	busy    atomic.Bool
}

// NewSubmitter wires an order submitter.
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

// Submit validates the draft, resolves worker assignments, and performs the
// create or update. Failure preserves the draft; success resets it and
// reloads the order list.
func (s *Submitter) Submit(ctx context.Context, draft *Draft) (*Outcome, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, pkgerrors.New(pkgerrors.CodeBusy, "an order submission is already in flight")
	}
	defer s.busy.Store(false)

	start := time.Now()
	outcome, err := s.submit(ctx, draft)
	if err != nil {
		s.metrics.ObserveSubmission("order", "failure", time.Since(start))
		return nil, err
	}
	s.metrics.ObserveSubmission("order", "success", time.Since(start))
	return outcome, nil
}

func (s *Submitter) submit(ctx context.Context, draft *Draft) (*Outcome, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	assignments, err := s.resolveAssignments(ctx, draft.Assignments())
	if err != nil {
		return nil, err
	}

	payload := api.OrderPayload{
		CustomerID:      draft.Customer().Backend,
		ItemDescription: draft.ItemDescription(),
		Status:          draft.Status().Wire(),
		Assignments:     assignments,
	}
	if date := draft.DeliveryDate(); date != nil {
		payload.DeliveryDate = date.Format(deliveryDateLayout)
	}

	var order *models.Order
	if draft.Editing() {
		order, err = s.api.UpdateOrder(ctx, draft.existingID, payload)
	} else {
		order, err = s.api.CreateOrder(ctx, payload)
	}
	if err != nil {
		return nil, err
	}

	draft.Reset()

	outcome := &Outcome{Order: order}
	list, err := s.api.ListOrders(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "order list reload failed after submission")
		}
		return outcome, nil
	}
	outcome.Orders = list
	return outcome, nil
}

// resolveAssignments maps worker names to backend identities. Assignments
// whose worker cannot be found are dropped with a warning, matching the
// backend's tolerance for partial rosters.
func (s *Submitter) resolveAssignments(ctx context.Context, assignments []Assignment) ([]api.AssignmentPayload, error) {
	if len(assignments) == 0 {
		return nil, nil
	}

	workers, err := s.api.ListWorkers(ctx)
	if err != nil {
		return nil, err
	}
	index := api.WorkersByName(workers)

	var out []api.AssignmentPayload
	for _, a := range assignments {
		worker, ok := index[strings.ToLower(strings.TrimSpace(a.WorkerName))]
		if !ok || !worker.RecordID.Resolved() {
			if s.logg != nil {
				wctx := s.logg.WithField(ctx, "worker", a.WorkerName)
				s.logg.Warn(wctx, "dropping assignment for unknown worker")
			}
			continue
		}
		out = append(out, api.AssignmentPayload{
			WorkerID:   worker.Backend,
			Task:       a.Task.String(),
			Commission: a.Commission.Round(2).InexactFloat64(),
		})
	}
	return out, nil
}

func validateDraft(draft *Draft) error {
	if draft == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order draft is required")
	}

	var errs error
	if draft.Customer() == nil || !draft.Customer().RecordID.Resolved() {
		errs = multierr.Append(errs, fmt.Errorf("a customer must be selected"))
	}
	if strings.TrimSpace(draft.ItemDescription()) == "" {
		errs = multierr.Append(errs, fmt.Errorf("item description is required"))
	}
	if !draft.Status().IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("order status %q is unknown", draft.Status()))
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "order draft is incomplete")
	}
	return nil
}
