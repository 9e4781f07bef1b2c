package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oemlink/oemlink/internal/auth"
	"github.com/oemlink/oemlink/internal/middleware"
	"github.com/oemlink/oemlink/internal/payment"
)

// PaymentHandlers serves the premium unlock checkout flow.
type PaymentHandlers struct {
	payments *payment.Service
	jwt      *auth.JWTService
	logger   *slog.Logger
}

// NewPaymentHandlers creates a new PaymentHandlers instance. A nil payments
// service means Stripe is not configured; endpoints respond 503.
func NewPaymentHandlers(payments *payment.Service, jwt *auth.JWTService, logger *slog.Logger) *PaymentHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentHandlers{payments: payments, jwt: jwt, logger: logger}
}

// CheckoutResponse is the body for a created checkout session.
type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// SessionResponse is the body for a verified checkout session. The token
// grants premium access for the billing period.
type SessionResponse struct {
	Token    string `json:"token"`
	Customer string `json:"customer"`
}

// Checkout handles POST /payments/checkout - starts a premium unlock purchase.
func (h *PaymentHandlers) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
		WriteError(w, ctx, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}
	if h.payments == nil {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodePaymentUnavailable)
		WriteError(w, ctx, http.StatusServiceUnavailable, ErrCodePaymentUnavailable, "Payments are not configured")
		return
	}

	sess, err := h.payments.StartCheckout()
	if err != nil {
		h.logger.Error("checkout creation failed", "error", err)
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeUpstream)
		WriteError(w, ctx, http.StatusBadGateway, ErrCodeUpstream, "Failed to create checkout session")
		return
	}

	response := CheckoutResponse{
		SessionID: sess.ID,
		URL:       sess.URL,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode checkout response", "error", err)
	}
}

// Session handles GET /payments/session?session_id= - verifies a completed
// checkout and mints the premium token.
func (h *PaymentHandlers) Session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
		WriteError(w, ctx, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}
	if h.payments == nil {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodePaymentUnavailable)
		WriteError(w, ctx, http.StatusServiceUnavailable, ErrCodePaymentUnavailable, "Payments are not configured")
		return
	}

	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeValidation)
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "session_id is required")
		return
	}

	customer, err := h.payments.VerifySession(sessionID)
	if err != nil {
		if errors.Is(err, payment.ErrSessionNotPaid) {
			ctx := middleware.SetErrorCode(r.Context(), ErrCodeSessionNotPaid)
			WriteError(w, ctx, http.StatusPaymentRequired, ErrCodeSessionNotPaid, "Checkout session has not been paid")
			return
		}
		h.logger.Error("session verification failed", "session_id", sessionID, "error", err)
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeUpstream)
		WriteError(w, ctx, http.StatusBadGateway, ErrCodeUpstream, "Failed to verify checkout session")
		return
	}

	token, err := h.jwt.GeneratePremiumToken(customer, sessionID)
	if err != nil {
		h.logger.Error("token minting failed", "session_id", sessionID, "error", err)
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeInternal)
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "Failed to issue premium token")
		return
	}

	response := SessionResponse{
		Token:    token,
		Customer: customer,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode session response", "error", err)
	}
}
