package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsHandler(cfg CORSConfig) http.Handler {
	return CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORS_AllowedOrigin(t *testing.T) {
	handler := corsHandler(DefaultCORSConfig([]string{"https://app.oemlink.example"}))

	req := httptest.NewRequest(http.MethodGet, "/suppliers", nil)
	req.Header.Set("Origin", "https://app.oemlink.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.oemlink.example" {
		t.Errorf("Allow-Origin = %q, want the request origin", got)
	}
}

func TestCORS_UnknownOriginRejected(t *testing.T) {
	handler := corsHandler(DefaultCORSConfig([]string{"https://app.oemlink.example"}))

	req := httptest.NewRequest(http.MethodPost, "/match", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty for rejected origin", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	handler := corsHandler(DefaultCORSConfig([]string{"https://app.oemlink.example"}))

	req := httptest.NewRequest(http.MethodOptions, "/match", nil)
	req.Header.Set("Origin", "https://app.oemlink.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Errorf("Allow-Methods = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Errorf("Max-Age = %q, want 600", got)
	}
}

func TestCORS_SameOriginPassesThrough(t *testing.T) {
	handler := corsHandler(DefaultCORSConfig([]string{"https://app.oemlink.example"}))

	// No Origin header means same-origin; the request proceeds untouched.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty for same-origin", got)
	}
}

func TestCORS_DisabledWhenNoOrigins(t *testing.T) {
	handler := corsHandler(DefaultCORSConfig(nil))

	req := httptest.NewRequest(http.MethodGet, "/suppliers", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when CORS is disabled", rec.Code)
	}
}

func TestCORS_CredentialsHeader(t *testing.T) {
	cfg := DefaultCORSConfig([]string{"https://app.oemlink.example"})
	cfg.AllowCredentials = true
	handler := corsHandler(cfg)

	req := httptest.NewRequest(http.MethodGet, "/suppliers", nil)
	req.Header.Set("Origin", "https://app.oemlink.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want true", got)
	}
}
