package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oemlink/oemlink/internal/catalog"
	"github.com/oemlink/oemlink/internal/middleware"
)

// SupplierHandlers serves read access to the supplier catalog.
type SupplierHandlers struct {
	store  *catalog.Store
	logger *slog.Logger
}

// NewSupplierHandlers creates a new SupplierHandlers instance.
func NewSupplierHandlers(store *catalog.Store, logger *slog.Logger) *SupplierHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &SupplierHandlers{store: store, logger: logger}
}

// SupplierListResponse is the body for the catalog listing.
type SupplierListResponse struct {
	Suppliers []catalog.Supplier `json:"suppliers"`
	Count     int                `json:"count"`
}

// List handles GET /suppliers - lists the catalog, optionally filtered by
// ?category=.
func (h *SupplierHandlers) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
		WriteError(w, ctx, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	suppliers := h.store.All()

	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		filtered := make([]catalog.Supplier, 0, len(suppliers))
		for _, s := range suppliers {
			if s.HasCategory(category) {
				filtered = append(filtered, s)
			}
		}
		suppliers = filtered
	}

	response := SupplierListResponse{
		Suppliers: suppliers,
		Count:     len(suppliers),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode supplier list", "error", err)
	}
}

// Get handles GET /suppliers/{id} - returns a single supplier.
func (h *SupplierHandlers) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
		WriteError(w, ctx, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/suppliers/")
	if id == "" || strings.Contains(id, "/") {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeValidation)
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "Supplier id is required")
		return
	}

	supplier, ok := h.store.Get(id)
	if !ok {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeNotFound)
		WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "Supplier not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(supplier); err != nil {
		h.logger.Error("failed to encode supplier", "error", err)
	}
}
