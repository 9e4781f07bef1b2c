package api

import "net/http"

// RouterConfig wires handlers into the API surface. Nil optional handlers
// leave their routes unregistered.
type RouterConfig struct {
	Match     *MatchHandlers
	Suppliers *SupplierHandlers
	Payments  *PaymentHandlers
	Webhooks  *WebhookHandlers
	Translate *TranslateHandlers
	Health    *HealthHandlers

	// RequirePremium wraps the translation route; nil leaves it open.
	RequirePremium func(http.Handler) http.Handler

	// Metrics serves GET /metrics (usually promhttp.Handler).
	Metrics http.Handler
}

// NewRouter builds the ServeMux for the API. Method enforcement lives in
// the handlers so unsupported methods get the JSON error envelope.
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	if cfg.Match != nil {
		mux.HandleFunc("/match", cfg.Match.Match)
	}
	if cfg.Suppliers != nil {
		mux.HandleFunc("/suppliers", cfg.Suppliers.List)
		mux.HandleFunc("/suppliers/", cfg.Suppliers.Get)
	}
	if cfg.Payments != nil {
		mux.HandleFunc("/payments/checkout", cfg.Payments.Checkout)
		mux.HandleFunc("/payments/session", cfg.Payments.Session)
	}
	if cfg.Webhooks != nil {
		mux.HandleFunc("/payments/webhook", cfg.Webhooks.HandleWebhook)
	}
	if cfg.Translate != nil {
		var handler http.Handler = http.HandlerFunc(cfg.Translate.Translate)
		if cfg.RequirePremium != nil {
			handler = cfg.RequirePremium(handler)
		}
		mux.Handle("/translate", handler)
	}
	if cfg.Health != nil {
		mux.HandleFunc("/health", cfg.Health.Health)
		mux.HandleFunc("/ready", cfg.Health.Ready)
	}
	if cfg.Metrics != nil {
		mux.Handle("/metrics", cfg.Metrics)
	}

	return mux
}
