package matching

import (
	"testing"

	"github.com/oemlink/oemlink/internal/catalog"
)

// tshirtSupplier returns a mid-sized Japanese apparel maker used across the
// pipeline tests.
func tshirtSupplier() catalog.Supplier {
	s := catalog.Supplier{
		ID:           "oem-001",
		Name:         "Tokyo Street Apparel",
		Country:      "Japan",
		Region:       "Kanto",
		Categories:   []string{"tshirt", "hoodie"},
		MOQMin:       50,
		PriceRange:   catalog.PriceRange{Min: 800, Max: 1500},
		LeadTimeDays: catalog.LeadTimeRange{Min: 10, Max: 20},
		Features:     catalog.Features{SmallLot: true, StreetFocused: true},
		Capabilities: []string{"embroidery", "silk-screen print"},
		Languages:    []string{"ja", "en"},
		YearsActive:  8,
		TrustScore:   4.2,
	}
	s.Profile = catalog.ResolveCapabilities(s.Capabilities)
	return s
}

// capSupplier returns an overseas headwear factory.
func capSupplier() catalog.Supplier {
	s := catalog.Supplier{
		ID:           "oem-002",
		Name:         "Guangzhou Headwear Factory",
		Country:      "China",
		Region:       "Guangdong",
		Categories:   []string{"cap"},
		MOQMin:       100,
		PriceRange:   catalog.PriceRange{Min: 300, Max: 600},
		LeadTimeDays: catalog.LeadTimeRange{Min: 15, Max: 30},
		Capabilities: []string{"3D embroidery", "熱転写", "custom logo"},
		Languages:    []string{"zh", "en"},
		YearsActive:  12,
		TrustScore:   3.8,
	}
	s.Profile = catalog.ResolveCapabilities(s.Capabilities)
	return s
}

// mustQuery normalizes input and fails the test on error.
func mustQuery(t *testing.T, in QueryInput) Query {
	t.Helper()
	q, err := NormalizeQuery(in)
	if err != nil {
		t.Fatalf("NormalizeQuery(%+v) failed: %v", in, err)
	}
	return q
}

func testEngine() *Engine {
	return NewEngine("Japan", nil, nil)
}
