package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/oemlink/oemlink/internal/middleware"
	"github.com/oemlink/oemlink/internal/translate"
)

// TranslateHandlers serves the premium translation proxy.
type TranslateHandlers struct {
	translator *translate.Service
	logger     *slog.Logger
}

// NewTranslateHandlers creates a new TranslateHandlers instance.
func NewTranslateHandlers(translator *translate.Service, logger *slog.Logger) *TranslateHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &TranslateHandlers{translator: translator, logger: logger}
}

// TranslateRequest is the body of a translation request.
type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

// Translate handles POST /translate - proxies one text through the
// translation API. Routed behind the premium token middleware.
func (h *TranslateHandlers) Translate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
		WriteError(w, ctx, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "Request body must be valid JSON")
		return
	}

	result, err := h.translator.Translate(r.Context(), req.Text, req.TargetLang)
	if err != nil {
		if errors.Is(err, translate.ErrEmptyText) {
			ctx := middleware.SetErrorCode(r.Context(), ErrCodeValidation)
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "text is required")
			return
		}
		h.logger.Error("translation failed", "error", err)
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeUpstream)
		WriteError(w, ctx, http.StatusBadGateway, ErrCodeUpstream, "Translation service unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("failed to encode translation response", "error", err)
	}
}
