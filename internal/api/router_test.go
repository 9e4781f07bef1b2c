package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oemlink/oemlink/internal/auth"
	"github.com/oemlink/oemlink/internal/translate"
)

func TestNewRouter_RoutesWired(t *testing.T) {
	store := testStore(t)
	mux := NewRouter(RouterConfig{
		Match:     NewMatchHandlers(store, testEngine(), nil),
		Suppliers: NewSupplierHandlers(store, nil),
		Health:    NewHealthHandlers(HealthHandlersConfig{}),
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	})

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodPost, "/match", `{"category":"tshirt","quantity":"100","budget":"200000","region":"either"}`, http.StatusOK},
		{http.MethodGet, "/suppliers", "", http.StatusOK},
		{http.MethodGet, "/suppliers/oem-001", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/ready", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/nonexistent", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		var body *strings.Reader
		if tt.body != "" {
			body = strings.NewReader(tt.body)
		} else {
			body = strings.NewReader("")
		}
		req := httptest.NewRequest(tt.method, tt.path, body)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s %s = %d, want %d (body %s)", tt.method, tt.path, rec.Code, tt.want, rec.Body.String())
		}
	}
}

func TestNewRouter_UnconfiguredRoutesAbsent(t *testing.T) {
	mux := NewRouter(RouterConfig{Health: NewHealthHandlers(HealthHandlersConfig{})})

	req := httptest.NewRequest(http.MethodPost, "/payments/checkout", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unwired /payments/checkout = %d, want 404", rec.Code)
	}
}

func TestNewRouter_TranslateRequiresPremium(t *testing.T) {
	jwtSvc := auth.NewJWTService("router-test-secret")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"translations":[{"detected_source_language":"JA","text":"hello"}]}`))
	}))
	t.Cleanup(srv.Close)
	svc := translate.NewService(translate.NewClient(srv.URL, "test-key"), nil, nil)

	mux := NewRouter(RouterConfig{
		Translate:      NewTranslateHandlers(svc, nil),
		RequirePremium: auth.RequirePremium(jwtSvc),
	})

	req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(`{"text":"こんにちは"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("without token = %d, want 401", rec.Code)
	}

	token, err := jwtSvc.GeneratePremiumToken("cus_123", "cs_test_abc")
	if err != nil {
		t.Fatalf("GeneratePremiumToken: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(`{"text":"こんにちは"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("with token = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
}
