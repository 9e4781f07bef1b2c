package matching

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricMatchesTotal      = "match_requests_total"
	MetricLowResultsTotal   = "match_low_results_total"
	MetricEligibleSuppliers = "match_eligible_suppliers"
	MetricMatchDuration     = "match_duration_seconds"
)

// Metrics contains Prometheus metrics for the matching pipeline.
// All operations are thread-safe.
type Metrics struct {
	matchesTotal      *prometheus.CounterVec
	lowResultsTotal   *prometheus.CounterVec
	eligibleSuppliers prometheus.Histogram
	matchDuration     prometheus.Histogram
}

// NewMetrics creates and returns a new Metrics instance with all collectors
// initialized. The metrics are not registered; call Register to register
// them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		matchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricMatchesTotal,
				Help: "Total number of match requests by category",
			},
			[]string{"category"},
		),
		lowResultsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricLowResultsTotal,
				Help: "Total number of match requests that returned few enough results to trigger diagnostics",
			},
			[]string{"category"},
		),
		eligibleSuppliers: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricEligibleSuppliers,
				Help:    "Number of suppliers surviving the eligibility filter per request",
				Buckets: []float64{0, 1, 3, 5, 10, 25, 50, 100},
			},
		),
		matchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricMatchDuration,
				Help:    "Match pipeline duration in seconds",
				Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
			},
		),
	}
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.matchesTotal,
		m.lowResultsTotal,
		m.eligibleSuppliers,
		m.matchDuration,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveMatch records one completed pipeline run.
func (m *Metrics) ObserveMatch(category string, eligible, returned int, lowResult bool, seconds float64) {
	m.matchesTotal.WithLabelValues(category).Inc()
	if lowResult {
		m.lowResultsTotal.WithLabelValues(category).Inc()
	}
	m.eligibleSuppliers.Observe(float64(eligible))
	m.matchDuration.Observe(seconds)
}
