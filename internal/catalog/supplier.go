// Package catalog provides the immutable in-memory supplier catalog and its
// load-time validation. Records are loaded once at startup from a JSON file,
// an S3-compatible object store, or Postgres, and shared read-only across
// concurrent match requests.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Validation errors for supplier records.
var (
	ErrMalformedRecord = errors.New("malformed supplier record")
	ErrDuplicateID     = errors.New("duplicate supplier id")
)

// PriceRange is a per-unit price band in currency units at MOQ.
// It is serialized as a two-element JSON array [min, max].
type PriceRange struct {
	Min float64
	Max float64
}

// UnmarshalJSON decodes a [min, max] array.
func (p *PriceRange) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("price_range must be a [min, max] array: %w", err)
	}
	p.Min, p.Max = pair[0], pair[1]
	return nil
}

// MarshalJSON encodes the range back to a [min, max] array.
func (p PriceRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Min, p.Max})
}

// Average returns the midpoint of the price band.
func (p PriceRange) Average() float64 {
	return (p.Min + p.Max) / 2
}

// LeadTimeRange is a production lead time band in days.
// It is serialized as a two-element JSON array [min, max].
type LeadTimeRange struct {
	Min int
	Max int
}

// UnmarshalJSON decodes a [min, max] array.
func (l *LeadTimeRange) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("lead_time_days must be a [min, max] array: %w", err)
	}
	l.Min, l.Max = pair[0], pair[1]
	return nil
}

// MarshalJSON encodes the range back to a [min, max] array.
func (l LeadTimeRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{l.Min, l.Max})
}

// AverageDays returns the midpoint of the lead time band.
func (l LeadTimeRange) AverageDays() float64 {
	return float64(l.Min+l.Max) / 2
}

// Features holds optional boolean production traits. An absent feature is
// false, never an error.
type Features struct {
	Vintage        bool `json:"vintage,omitempty"`
	Heavyweight    bool `json:"heavyweight,omitempty"`
	Oversize       bool `json:"oversize,omitempty"`
	Distressed     bool `json:"distressed,omitempty"`
	SmallLot       bool `json:"small_lot,omitempty"`
	MassProduction bool `json:"mass_production,omitempty"`
	StreetFocused  bool `json:"street_focused,omitempty"`
}

// Count returns the number of features set to true.
func (f Features) Count() int {
	n := 0
	for _, set := range []bool{
		f.Vintage, f.Heavyweight, f.Oversize, f.Distressed,
		f.SmallLot, f.MassProduction, f.StreetFocused,
	} {
		if set {
			n++
		}
	}
	return n
}

// Supplier is one OEM supplier record. Instances are immutable after load;
// the matching engine only reads them.
type Supplier struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Country      string        `json:"country"`
	Region       string        `json:"region"`
	Categories   []string      `json:"categories"`
	MOQMin       int           `json:"moq_min"`
	PriceRange   PriceRange    `json:"price_range"`
	LeadTimeDays LeadTimeRange `json:"lead_time_days"`
	Features     Features      `json:"features,omitempty"`
	Capabilities []string      `json:"capabilities"`
	Languages    []string      `json:"languages"`
	YearsActive  int           `json:"years_active"`
	TrustScore   float64       `json:"trust_score"`

	// External profile links are display-only and never scored.
	AlibabaURL     string `json:"alibaba_company_url,omitempty"`
	MadeInChinaURL string `json:"made_in_china_company_url,omitempty"`

	// Profile holds the canonical capability tags resolved at load time.
	// It is derived from Capabilities and not part of the wire format.
	Profile CapabilityProfile `json:"-"`
}

// HasCategory reports whether the supplier explicitly lists the category.
func (s *Supplier) HasCategory(category string) bool {
	for _, c := range s.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// HasCapability reports whether the supplier lists the exact capability tag.
func (s *Supplier) HasCapability(capability string) bool {
	for _, c := range s.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Validate checks the load-time invariants for a supplier record.
// A violation means the whole catalog load should fail rather than
// silently skipping the record, since partially loaded catalogs would
// produce misleading low-result diagnostics.
func (s *Supplier) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: missing id", ErrMalformedRecord)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: supplier %s missing name", ErrMalformedRecord, s.ID)
	}
	if len(s.Categories) == 0 {
		return fmt.Errorf("%w: supplier %s has no categories", ErrMalformedRecord, s.ID)
	}
	if s.MOQMin < 0 {
		return fmt.Errorf("%w: supplier %s moq_min must be >= 0 (got %d)", ErrMalformedRecord, s.ID, s.MOQMin)
	}
	if s.PriceRange.Min < 0 || s.PriceRange.Max < 0 {
		return fmt.Errorf("%w: supplier %s price_range must be >= 0", ErrMalformedRecord, s.ID)
	}
	if s.PriceRange.Min > s.PriceRange.Max {
		return fmt.Errorf("%w: supplier %s price_range min > max", ErrMalformedRecord, s.ID)
	}
	if s.LeadTimeDays.Min > s.LeadTimeDays.Max {
		return fmt.Errorf("%w: supplier %s lead_time_days min > max", ErrMalformedRecord, s.ID)
	}
	if s.YearsActive < 0 {
		return fmt.Errorf("%w: supplier %s years_active must be >= 0 (got %d)", ErrMalformedRecord, s.ID, s.YearsActive)
	}
	if s.TrustScore < 0 || s.TrustScore > 5 {
		return fmt.Errorf("%w: supplier %s trust_score must be in [0, 5] (got %g)", ErrMalformedRecord, s.ID, s.TrustScore)
	}
	return nil
}
