package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/match", "/match"},
		{"/suppliers", "/suppliers"},
		{"/suppliers/oem-001", "/suppliers/{id}"},
		{"/suppliers/oem-001/", "/suppliers/oem-001/"},
		{"/suppliers/", "/suppliers/"},
		{"/payments/checkout", "/payments/checkout"},
		{"/payments/session", "/payments/session"},
		{"/translate", "/translate"},
		{"/metrics", "/metrics"},
		{"/unknown/route", "/unknown/route"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := normalizePath(tt.path); got != tt.want {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func gatherFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestHTTPMetrics_RecordsRequest(t *testing.T) {
	metrics := NewMetrics()
	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}

	handler := HTTPMetrics(metrics)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("hello"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/suppliers/oem-001", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	mf := gatherFamily(t, reg, MetricHTTPRequestsTotal)
	if mf == nil {
		t.Fatalf("metric %s not found", MetricHTTPRequestsTotal)
	}

	found := false
	for _, m := range mf.GetMetric() {
		labels := map[string]string{}
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		if labels["method"] == "GET" && labels["path"] == "/suppliers/{id}" && labels["status"] == "200" {
			found = true
			if m.GetCounter().GetValue() != 1 {
				t.Errorf("counter = %v, want 1", m.GetCounter().GetValue())
			}
		}
	}
	if !found {
		t.Error("expected a sample labeled GET /suppliers/{id} 200")
	}
}

func TestHTTPMetrics_SkipsHealthEndpoints(t *testing.T) {
	metrics := NewMetrics()
	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}

	handler := HTTPMetrics(metrics)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/health", "/ready"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if mf := gatherFamily(t, reg, MetricHTTPRequestsTotal); mf != nil && len(mf.GetMetric()) > 0 {
		t.Errorf("expected no samples for health endpoints, got %d", len(mf.GetMetric()))
	}
}

func TestHTTPMetrics_CapturesErrorStatus(t *testing.T) {
	metrics := NewMetrics()
	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}

	handler := HTTPMetrics(metrics)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/match", nil))

	mf := gatherFamily(t, reg, MetricHTTPRequestsTotal)
	if mf == nil {
		t.Fatalf("metric %s not found", MetricHTTPRequestsTotal)
	}
	for _, m := range mf.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "status" && l.GetValue() != "400" {
				t.Errorf("status label = %q, want 400", l.GetValue())
			}
		}
	}
}
