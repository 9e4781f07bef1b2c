package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/oemlink/oemlink/internal/middleware"
	"github.com/oemlink/oemlink/internal/payment"
)

// maxWebhookBodyBytes bounds the webhook payload we will read.
const maxWebhookBodyBytes = 65536

// WebhookHandlers processes Stripe webhook deliveries for the premium
// unlock. Signature verification and event idempotency are both enforced
// before any state changes.
type WebhookHandlers struct {
	payments      *payment.Service
	webhookRepo   payment.WebhookRepository
	signingSecret string
	logger        *slog.Logger
}

// NewWebhookHandlers creates a new WebhookHandlers instance.
func NewWebhookHandlers(payments *payment.Service, webhookRepo payment.WebhookRepository, signingSecret string, logger *slog.Logger) *WebhookHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandlers{
		payments:      payments,
		webhookRepo:   webhookRepo,
		signingSecret: signingSecret,
		logger:        logger,
	}
}

// HandleWebhook handles POST /payments/webhook.
// Unhandled event types are acknowledged so Stripe stops retrying them.
func (h *WebhookHandlers) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
		WriteError(w, ctx, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "Failed to read request body")
		return
	}

	event, err := webhook.ConstructEventWithOptions(body, r.Header.Get("Stripe-Signature"), h.signingSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		h.logger.Warn("webhook signature verification failed", "error", err)
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeAuthFailed)
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeAuthFailed, "Invalid webhook signature")
		return
	}

	if err := h.webhookRepo.RecordEvent(event.ID, string(event.Type)); err != nil {
		if errors.Is(err, payment.ErrEventAlreadyProcessed) {
			// Retried delivery; already handled.
			w.WriteHeader(http.StatusOK)
			return
		}
		h.logger.Error("failed to record webhook event", "event_id", event.ID, "error", err)
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeInternal)
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "Failed to record event")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			h.logger.Error("failed to parse checkout session from webhook", "event_id", event.ID, "error", err)
			ctx := middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "Malformed event payload")
			return
		}
		if err := h.payments.MarkSessionCompleted(&sess); err != nil {
			h.logger.Error("failed to resolve payment record", "session_id", sess.ID, "error", err)
			ctx := middleware.SetErrorCode(r.Context(), ErrCodeInternal)
			WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "Failed to process event")
			return
		}
		h.logger.Info("checkout session completed", "session_id", sess.ID)
	default:
		h.logger.Debug("ignoring webhook event", "type", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}
