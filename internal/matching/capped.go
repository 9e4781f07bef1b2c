package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/oemlink/oemlink/internal/catalog"
)

// Capped (headwear) rule set weights. The pre-jitter total never
// exceeds 102.
const (
	cappedMOQMax           = 15
	cappedSpreadMax        = 10
	cappedCustomizationMax = 12
	cappedClarityMax       = 15
	cappedOriginalityMax   = 10
	cappedTrustMax         = 20
	cappedTransparencyMax  = 10
)

// CappedScorer is the rule set for the cap category. Headwear sourcing is
// dominated by MOQ granularity and decoration options rather than bulk
// landed cost, so the weight table rewards low minimums, price scaling, and
// customization depth.
type CappedScorer struct{}

// Score evaluates the capped rule set. Rules run in a fixed order; trust
// and transparency always report so a shortlist entry is never reason-free.
func (c CappedScorer) Score(s *catalog.Supplier, q Query) Breakdown {
	var b Breakdown

	c.scoreMOQ(s, &b)
	c.scoreSpread(s, &b)
	c.scoreCustomization(s, &b)
	c.scoreClarity(s, &b)
	c.scoreOriginality(s, &b)
	c.scoreTrust(s, &b)
	c.scoreTransparency(s, &b)

	return b
}

func (c CappedScorer) scoreMOQ(s *catalog.Supplier, b *Breakdown) {
	switch {
	case s.MOQMin <= 3:
		b.add(15, "very low MOQ (3 units or fewer)")
	case s.MOQMin <= 10:
		b.add(12, "low MOQ (10 units or fewer)")
	case s.MOQMin <= 30:
		b.add(8, "moderate MOQ (30 units or fewer)")
	default:
		b.add(5, fmt.Sprintf("MOQ %d units", s.MOQMin))
	}
}

// scoreSpread rewards a wide price band, read as room for volume pricing.
func (c CappedScorer) scoreSpread(s *catalog.Supplier, b *Breakdown) {
	var ratio float64
	switch {
	case s.PriceRange.Min > 0:
		ratio = (s.PriceRange.Max - s.PriceRange.Min) / s.PriceRange.Min
	case s.PriceRange.Max > 0:
		ratio = math.Inf(1)
	}

	switch {
	case ratio >= 0.5:
		b.add(10, "large price drop at volume")
	case ratio >= 0.3:
		b.add(7, "moderate price drop at volume")
	case ratio >= 0.1:
		b.add(4, "some price drop at volume")
	default:
		b.add(2, "flat pricing")
	}
}

func (c CappedScorer) scoreCustomization(s *catalog.Supplier, b *Breakdown) {
	var pts float64
	var matched []string

	if s.Profile.Has(catalog.TagEmbroidery) {
		pts += 3
		matched = append(matched, "embroidery")
	}
	if s.Profile.Has(catalog.TagEmbroidery3D) {
		pts += 2
		matched = append(matched, "3D embroidery")
	}
	if s.Profile.Has(catalog.TagHeatTransfer) {
		pts += 2
		matched = append(matched, "heat transfer")
	}
	if s.Profile.Has(catalog.TagPrint) {
		pts += 2
		matched = append(matched, "printing")
	}
	if s.Profile.Has(catalog.TagCustomLogo) {
		pts += 2
		matched = append(matched, "custom logos")
	}
	if s.Profile.Unclassified > 0 {
		pts++
		matched = append(matched, "other options")
	}

	if len(matched) > 0 {
		b.add(math.Min(cappedCustomizationMax, pts), "customization: "+strings.Join(matched, ", "))
	}
}

func (c CappedScorer) scoreClarity(s *catalog.Supplier, b *Breakdown) {
	var pts float64
	var parts []string

	if len(s.Capabilities) >= 3 {
		pts += 8
		parts = append(parts, "options documented in detail")
	}
	switch {
	case s.Features.Count() >= 3:
		pts += 7
		parts = append(parts, "production traits documented in detail")
	case s.Features.Count() >= 1:
		pts += 4
		parts = append(parts, "some production traits documented")
	}

	if len(parts) > 0 {
		b.add(math.Min(cappedClarityMax, pts), "specification clarity: "+strings.Join(parts, ", "))
	}
}

func (c CappedScorer) scoreOriginality(s *catalog.Supplier, b *Breakdown) {
	var pts float64
	var parts []string

	if s.Features.StreetFocused {
		pts += 4
		parts = append(parts, "street fashion focus")
	}
	if s.Features.SmallLot {
		pts += 3
		parts = append(parts, "small-lot friendly")
	}
	if s.Features.Vintage {
		pts += 3
		parts = append(parts, "vintage finishing")
	}
	if s.HasCategory(CategoryCap) {
		pts += 2
		parts = append(parts, "cap specialist")
	}

	if len(parts) > 0 {
		b.add(math.Min(cappedOriginalityMax, pts), "originality: "+strings.Join(parts, ", "))
	}
}

func (c CappedScorer) scoreTrust(s *catalog.Supplier, b *Breakdown) {
	pts := math.Min(4, s.TrustScore*0.8)
	switch {
	case s.YearsActive >= 6:
		pts += 10
	case s.YearsActive >= 5:
		pts += 6
	case s.YearsActive >= 3:
		pts += 3
	case s.YearsActive >= 1:
		pts += 1.3
	}
	b.add(math.Min(cappedTrustMax, pts),
		fmt.Sprintf("trust signals: score %.1f/5, %d years in business", s.TrustScore, s.YearsActive))
}

func (c CappedScorer) scoreTransparency(s *catalog.Supplier, b *Breakdown) {
	switch {
	case len(s.Capabilities) >= 4:
		b.add(10, "highly transparent option listing")
	case len(s.Capabilities) >= 2:
		b.add(6, "reasonably transparent option listing")
	default:
		b.add(3, "sparse option listing")
	}
}
