package metrics

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestAuthzMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAuthzMetrics(reg)
	m.Allow("check_access")
	m.Allow("check_access")
	m.Deny("check_access", "NO_ACCESS")
	m.Transition("membership", "approved")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "authz_decisions_total", "outcome", "allow"); err != nil {
		t.Fatalf("fetch allow: %v", err)
	} else if got != 2 {
		t.Fatalf("expected allow=2, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "authz_decisions_total", "outcome", "NO_ACCESS"); err != nil {
		t.Fatalf("fetch deny: %v", err)
	} else if got != 1 {
		t.Fatalf("expected deny=1, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "approval_transitions_total", "to", "approved"); err != nil {
		t.Fatalf("fetch transition: %v", err)
	} else if got != 1 {
		t.Fatalf("expected transition=1, got %f", got)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *AuthzMetrics
	m.Allow("x")
	m.Transition("society", "approved")
	NewAuthzMetrics(nil).Deny("x", "FORBIDDEN")
	var h *HTTPMetrics
	h.Observe(http.MethodGet, "/", http.StatusOK, time.Millisecond)
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHTTPMetrics(reg)
	h.Observe(http.MethodPost, "/api/v1/societies/{societyID}/join", http.StatusCreated, 250*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/api/v1/societies/{societyID}/join"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
