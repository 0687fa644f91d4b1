package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WorkflowMetrics records outcomes for the two asynchronous legs of the desk
// workflow: customer lookups and draft submissions.
type WorkflowMetrics struct {
	lookupDuration *prometheus.HistogramVec
	lookupOutcome  *prometheus.CounterVec
	submitDuration *prometheus.HistogramVec
	submitOutcome  *prometheus.CounterVec
}

// NewWorkflowMetrics registers the workflow metrics on the provided
// registerer. A nil registerer yields a no-op collector.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	lookupDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "customer_lookup_duration_seconds",
		Help:    "Duration of debounced customer lookups in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	lookupOutcome := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "customer_lookup_total",
		Help: "Customer lookups by outcome (resolved, suggestions, none, stale, error).",
	}, []string{"outcome"})
	submitDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "draft_submission_duration_seconds",
		Help:    "Duration of draft submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	submitOutcome := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "draft_submission_total",
		Help: "Draft submissions by kind and outcome.",
	}, []string{"kind", "outcome"})
	reg.MustRegister(lookupDuration, lookupOutcome, submitDuration, submitOutcome)
	return &WorkflowMetrics{
		lookupDuration: lookupDuration,
		lookupOutcome:  lookupOutcome,
		submitDuration: submitDuration,
		submitOutcome:  submitOutcome,
	}
}

// ObserveLookup records one finished lookup with its outcome label.
func (w *WorkflowMetrics) ObserveLookup(outcome string, duration time.Duration) {
	if w == nil || w.lookupOutcome == nil {
		return
	}
	w.lookupOutcome.WithLabelValues(outcome).Inc()
	w.lookupDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// IncLookup counts a lookup event that has no meaningful duration, such as a
// stale response discard.
func (w *WorkflowMetrics) IncLookup(outcome string) {
	if w == nil || w.lookupOutcome == nil {
		return
	}
	w.lookupOutcome.WithLabelValues(outcome).Inc()
}

// ObserveSubmission records one finished submission attempt.
func (w *WorkflowMetrics) ObserveSubmission(kind, outcome string, duration time.Duration) {
	if w == nil || w.submitOutcome == nil {
		return
	}
	w.submitOutcome.WithLabelValues(kind, outcome).Inc()
	w.submitDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
