package health

import (
	"context"
	"errors"

	"github.com/oemlink/oemlink/internal/catalog"
)

// ErrCatalogEmpty is returned when the supplier catalog has no entries.
var ErrCatalogEmpty = errors.New("supplier catalog is empty")

// CatalogChecker verifies the in-memory supplier catalog is loaded.
// The engine cannot return matches from an empty catalog, so readiness
// fails until the load succeeds.
type CatalogChecker struct {
	store *catalog.Store
}

// NewCatalogChecker creates a catalog health checker.
func NewCatalogChecker(store *catalog.Store) *CatalogChecker {
	return &CatalogChecker{store: store}
}

// HealthCheck reports whether the catalog holds at least one supplier.
func (c *CatalogChecker) HealthCheck(ctx context.Context) error {
	if c.store == nil || c.store.Len() == 0 {
		return ErrCatalogEmpty
	}
	return nil
}
