package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aswin-roy/ladybird-desk/pkg/logger"
	"github.com/aswin-roy/ladybird-desk/pkg/metrics"
	"github.com/aswin-roy/ladybird-desk/pkg/models"
)

// Phase is the user-visible state of the search box.
type Phase string

const (
	// PhaseIdle: empty query, nothing pending, no suggestions.
	PhaseIdle Phase = "idle"
	// PhasePending: a lookup is scheduled or in flight.
	PhasePending Phase = "pending"
	// PhaseNoMatch: the latest lookup returned zero customers.
	PhaseNoMatch Phase = "no_match"
	// PhaseSuggesting: the latest lookup returned two or more customers.
	PhaseSuggesting Phase = "suggesting"
	// PhaseResolved: a customer is selected, by auto-select or click.
	PhaseResolved Phase = "resolved"
)

// Lookup performs the remote customer query.
type Lookup func(ctx context.Context, query string) ([]models.Customer, error)

// Snapshot is an immutable view of the controller state, safe to render.
type Snapshot struct {
	Query       string
	Phase       Phase
	Suggestions []models.Customer
	Selected    *models.Customer
}

// Params wires a Controller.
type Params struct {
	Lookup    Lookup
	Delay     time.Duration
	Scheduler Scheduler
	Logger    *logger.Logger
	Metrics   *metrics.WorkflowMetrics
	// OnChange, when set, receives a snapshot after every state change. It
	// runs without the controller lock held.
	OnChange func(Snapshot)
	// BaseContext bounds the lookup calls; defaults to context.Background.
	BaseContext context.Context
}

// Controller turns a free-text query into a resolved customer with at most
// one outstanding lookup. Every query change bumps a monotonic token; a
// timer or response carrying a stale token is a no-op, so only the most
// recent lookup can ever touch state regardless of arrival order.
type Controller struct {
	mu          sync.Mutex
	lookup      Lookup
	sched       Scheduler
	delay       time.Duration
	logg        *logger.Logger
	metrics     *metrics.WorkflowMetrics
	onChange    func(Snapshot)
	ctx         context.Context
	gen         uint64
	cancel      func()
	query       string
	phase       Phase
	suggestions []models.Customer
	selected    *models.Customer
}

// NewController builds a controller around the provided lookup.
func NewController(params Params) (*Controller, error) {
	if params.Lookup == nil {
		return nil, fmt.Errorf("lookup is required")
	}
	if params.Delay <= 0 {
		params.Delay = 300 * time.Millisecond
	}
	if params.Scheduler == nil {
		params.Scheduler = NewTimerScheduler()
	}
	if params.BaseContext == nil {
		params.BaseContext = context.Background()
	}
	return &Controller{
		lookup:   params.Lookup,
		sched:    params.Scheduler,
		delay:    params.Delay,
		logg:     params.Logger,
		metrics:  params.Metrics,
		onChange: params.OnChange,
		ctx:      params.BaseContext,
		phase:    PhaseIdle,
	}, nil
}

// SetQuery records a keystroke. An empty query clears selection and
// suggestions immediately; anything else resets the debounce timer and
// supersedes whatever was pending.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	c.query = query
	c.gen++
	token := c.gen
	c.cancelPendingLocked()

	if strings.TrimSpace(query) == "" {
		c.selected = nil
		c.suggestions = nil
		c.phase = PhaseIdle
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return
	}

	c.phase = PhasePending
	c.cancel = c.sched.Schedule(c.delay, func() { c.fire(token, query) })
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// Select applies a manual pick. It wins immediately and suppresses any
// pending timer or in-flight lookup.
func (c *Controller) Select(customer models.Customer) {
	c.mu.Lock()
	c.gen++
	c.cancelPendingLocked()
	picked := customer
	c.selected = &picked
	c.suggestions = nil
	c.query = customer.Name
	c.phase = PhaseResolved
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// Clear resets the controller to idle, dropping selection and suggestions.
func (c *Controller) Clear() {
	c.SetQuery("")
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Selected returns the resolved customer, nil while unresolved.
func (c *Controller) Selected() *models.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return nil
	}
	picked := *c.selected
	return &picked
}

// fire runs when the debounce timer elapses. The token is checked twice:
// before issuing the request, so a superseded timer never hits the backend,
// and again on completion, so a late response never overwrites newer state.
func (c *Controller) fire(token uint64, query string) {
	c.mu.Lock()
	if token != c.gen {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	start := time.Now()
	results, err := c.lookup(c.ctx, query)
	elapsed := time.Since(start)

	c.mu.Lock()
	if token != c.gen {
		c.mu.Unlock()
		c.metrics.IncLookup("stale")
		return
	}

	if err != nil {
		c.suggestions = nil
		if c.selected != nil {
			c.phase = PhaseResolved
		} else {
			c.phase = PhaseIdle
		}
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.metrics.ObserveLookup("error", elapsed)
		if c.logg != nil {
			ctx := c.logg.WithField(c.ctx, "query", query)
			c.logg.Warn(ctx, "customer lookup failed")
		}
		c.notify(snap)
		return
	}

	outcome := "none"
	switch len(results) {
	case 0:
		c.suggestions = nil
		c.phase = PhaseNoMatch
	case 1:
		picked := results[0]
		c.selected = &picked
		c.suggestions = nil
		c.query = picked.Name
		c.phase = PhaseResolved
		outcome = "resolved"
	default:
		c.suggestions = results
		c.phase = PhaseSuggesting
		outcome = "suggestions"
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.metrics.ObserveLookup(outcome, elapsed)
	c.notify(snap)
}

func (c *Controller) cancelPendingLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Query: c.query,
		Phase: c.phase,
	}
	if len(c.suggestions) > 0 {
		snap.Suggestions = make([]models.Customer, len(c.suggestions))
		copy(snap.Suggestions, c.suggestions)
	}
	if c.selected != nil {
		picked := *c.selected
		snap.Selected = &picked
	}
	return snap
}

func (c *Controller) notify(snap Snapshot) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}
