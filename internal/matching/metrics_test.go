package matching

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics() returned nil")
	}
	if m.matchesTotal == nil {
		t.Error("matchesTotal is nil")
	}
	if m.lowResultsTotal == nil {
		t.Error("lowResultsTotal is nil")
	}
	if m.eligibleSuppliers == nil {
		t.Error("eligibleSuppliers is nil")
	}
	if m.matchDuration == nil {
		t.Error("matchDuration is nil")
	}
}

func TestMetrics_Register(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()

	if err := m.Register(reg); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	m.ObserveMatch("tshirt", 12, 10, false, 0.002)
	m.ObserveMatch("cap", 2, 2, true, 0.001)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}

	found := map[string]bool{}
	for _, mf := range metrics {
		found[mf.GetName()] = true
	}
	for _, name := range []string{
		MetricMatchesTotal, MetricLowResultsTotal,
		MetricEligibleSuppliers, MetricMatchDuration,
	} {
		if !found[name] {
			t.Errorf("metric %s not found in registry", name)
		}
	}
}

func TestMetrics_ObserveMatch(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	m.ObserveMatch("tshirt", 12, 10, false, 0.002)
	m.ObserveMatch("tshirt", 1, 1, true, 0.001)
	m.ObserveMatch("cap", 0, 0, true, 0.001)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}

	var matchFamily, lowFamily *dto.MetricFamily
	for _, mf := range metrics {
		switch mf.GetName() {
		case MetricMatchesTotal:
			matchFamily = mf
		case MetricLowResultsTotal:
			lowFamily = mf
		}
	}

	if matchFamily == nil {
		t.Fatalf("metric %s not found", MetricMatchesTotal)
	}
	total := 0.0
	for _, metric := range matchFamily.GetMetric() {
		total += metric.GetCounter().GetValue()
	}
	if total != 3 {
		t.Errorf("expected 3 match observations, got %v", total)
	}

	if lowFamily == nil {
		t.Fatalf("metric %s not found", MetricLowResultsTotal)
	}
	low := 0.0
	for _, metric := range lowFamily.GetMetric() {
		low += metric.GetCounter().GetValue()
	}
	if low != 2 {
		t.Errorf("expected 2 low-result observations, got %v", low)
	}
}
