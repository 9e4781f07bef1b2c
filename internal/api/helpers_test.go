package api

import (
	"testing"

	"github.com/oemlink/oemlink/internal/catalog"
	"github.com/oemlink/oemlink/internal/matching"
)

// testStore builds a small catalog covering both scoring strategies.
func testStore(t *testing.T) *catalog.Store {
	t.Helper()

	store, err := catalog.NewStore([]catalog.Supplier{
		{
			ID:           "oem-001",
			Name:         "Tokyo Street Apparel",
			Country:      "Japan",
			Region:       "Kanto",
			Categories:   []string{"tshirt", "hoodie"},
			MOQMin:       50,
			PriceRange:   catalog.PriceRange{Min: 800, Max: 1500},
			LeadTimeDays: catalog.LeadTimeRange{Min: 10, Max: 20},
			Features:     catalog.Features{SmallLot: true, Vintage: true},
			Capabilities: []string{"embroidery", "print"},
			Languages:    []string{"ja", "en"},
			YearsActive:  8,
			TrustScore:   4.2,
		},
		{
			ID:           "oem-002",
			Name:         "Guangzhou Headwear Works",
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
		},
		{
			ID:           "oem-003",
			Name:         "Osaka Knitworks",
			Country:      "Japan",
			Region:       "Kansai",
			Categories:   []string{"tshirt"},
			MOQMin:       30,
			PriceRange:   catalog.PriceRange{Min: 1000, Max: 1800},
			LeadTimeDays: catalog.LeadTimeRange{Min: 7, Max: 14},
			Features:     catalog.Features{SmallLot: true},
			Capabilities: []string{"print"},
			Languages:    []string{"ja"},
			YearsActive:  3,
			TrustScore:   4.8,
		},
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func testEngine() *matching.Engine {
	return matching.NewEngine("Japan", nil, nil)
}
