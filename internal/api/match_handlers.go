package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/oemlink/oemlink/internal/catalog"
	"github.com/oemlink/oemlink/internal/matching"
	"github.com/oemlink/oemlink/internal/middleware"
	"github.com/oemlink/oemlink/internal/tracing"
)

// MatchHandlers holds dependencies for the matching endpoint.
type MatchHandlers struct {
	store  *catalog.Store
	engine *matching.Engine
	logger *slog.Logger
}

// NewMatchHandlers creates a new MatchHandlers instance.
func NewMatchHandlers(store *catalog.Store, engine *matching.Engine, logger *slog.Logger) *MatchHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchHandlers{store: store, engine: engine, logger: logger}
}

// MatchResponse is the body of a successful match request. Diagnostics is
// present only when the shortlist came back short enough to explain why.
type MatchResponse struct {
	Results     []matching.MatchResult `json:"results"`
	Total       int                    `json:"total"`
	Diagnostics []string               `json:"diagnostics,omitempty"`
}

// Match handles POST /match - runs the supplier matching pipeline.
func (h *MatchHandlers) Match(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
		WriteError(w, ctx, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	var input matching.QueryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "Request body must be valid JSON")
		return
	}

	query, err := matching.NormalizeQuery(input)
	if err != nil {
		if errors.Is(err, matching.ErrInvalidInput) {
			ctx := middleware.SetErrorCode(r.Context(), ErrCodeInvalidInput)
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
			return
		}
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeInternal)
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "Failed to process query")
		return
	}

	ctx, endSpan := tracing.StartSpan(r.Context(), "match_suppliers")
	tracing.SetAttributes(ctx,
		attribute.String("category", query.Category),
		attribute.Int("quantity", query.Quantity),
	)

	suppliers := h.store.All()
	results := h.engine.Match(suppliers, query)

	response := MatchResponse{
		Results: results,
		Total:   len(results),
	}
	if h.engine.ShouldDiagnose(len(results)) {
		response.Diagnostics = h.engine.Diagnose(suppliers, query)
	}
	endSpan(nil)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.ErrorContext(ctx, "failed to encode match response", "error", err)
	}
}
