package catalog

import (
	"fmt"
)

// Store is the immutable in-memory supplier catalog. It is safe to share
// across concurrent requests without locking: nothing mutates the records
// or the backing slice after construction.
type Store struct {
	suppliers []Supplier
	byID      map[string]*Supplier
}

// NewStore validates every record, resolves capability tags, and builds the
// catalog. Any invalid record fails the whole load. Zero records is a
// valid catalog: matching over it yields empty, successful results, and
// emptiness surfaces through the readiness check instead.
func NewStore(suppliers []Supplier) (*Store, error) {
	byID := make(map[string]*Supplier, len(suppliers))
	for i := range suppliers {
		s := &suppliers[i]
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, exists := byID[s.ID]; exists {
			return nil, fmt.Errorf("record %d: %w: %s", i, ErrDuplicateID, s.ID)
		}
		s.Profile = ResolveCapabilities(s.Capabilities)
		byID[s.ID] = s
	}

	return &Store{suppliers: suppliers, byID: byID}, nil
}

// All returns the catalog in load order. The returned slice is shared and
// must be treated as read-only.
func (s *Store) All() []Supplier {
	return s.suppliers
}

// Len returns the number of suppliers in the catalog.
func (s *Store) Len() int {
	return len(s.suppliers)
}

// Get returns the supplier with the given id, or false if absent.
func (s *Store) Get(id string) (*Supplier, bool) {
	sup, ok := s.byID[id]
	return sup, ok
}
