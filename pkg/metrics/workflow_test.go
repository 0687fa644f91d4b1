package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestWorkflowMetricsExportsCountersAndHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorkflowMetrics(reg)

	m.ObserveLookup("resolved", 120*time.Millisecond)
	m.IncLookup("stale")
	m.ObserveSubmission("sale", "success", 300*time.Millisecond)
	m.ObserveSubmission("sale", "failure", 100*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "customer_lookup_total", map[string]string{"outcome": "resolved"}); err != nil {
		t.Fatalf("fetch resolved lookups: %v", err)
	} else if got != 1 {
		t.Fatalf("expected resolved=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "customer_lookup_total", map[string]string{"outcome": "stale"}); err != nil {
		t.Fatalf("fetch stale lookups: %v", err)
	} else if got != 1 {
		t.Fatalf("expected stale=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "draft_submission_total", map[string]string{"kind": "sale", "outcome": "failure"}); err != nil {
		t.Fatalf("fetch sale failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected sale failures=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "draft_submission_duration_seconds", map[string]string{"kind": "sale"}); err != nil {
		t.Fatalf("fetch submission duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestWorkflowMetricsNilReceiverIsSafe(t *testing.T) {
	var m *WorkflowMetrics
	m.ObserveLookup("resolved", time.Millisecond)
	m.IncLookup("stale")
	m.ObserveSubmission("order", "success", time.Millisecond)

	empty := NewWorkflowMetrics(nil)
	empty.ObserveLookup("resolved", time.Millisecond)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, labels map[string]string) bool {
	for key, want := range labels {
		found := false
		for _, pair := range pairs {
			if pair.GetName() == key && pair.GetValue() == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
