package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/oemlink/oemlink/internal/catalog"
)

// General rule set weights. Sub-scores are clamped to their maxima before
// summation; the pre-jitter total never exceeds 130.
const (
	generalCostMax       = 40
	generalRegionBonus   = 25
	generalBreadthMax    = 15
	generalTrustMax      = 20
	generalExperienceMax = 10
	generalFeatureMax    = 30
	generalSpecialty     = 5
	generalLeadTimeMax   = 10
)

// Requested-quantity thresholds for the feature fit rule.
const (
	smallLotQuantity = 100
	largeLotQuantity = 1000
)

// GeneralScorer is the rule set for apparel categories (T-shirts, hoodies).
// It weighs total landed cost over the requested quantity, regional
// preference, and bulk-production feature fit.
type GeneralScorer struct {
	HomeCountry string
}

// Score evaluates the general rule set. Rules run in a fixed order and each
// contributing rule appends one reason; trust and experience always report
// even at zero points so a shortlist entry is never reason-free.
func (g GeneralScorer) Score(s *catalog.Supplier, q Query) Breakdown {
	var b Breakdown

	g.scoreCostFit(s, q, &b)
	g.scoreRegion(s, q, &b)
	g.scoreBreadth(s, &b)
	g.scoreTrust(s, &b)
	g.scoreExperience(s, &b)
	g.scoreFeatures(s, q, &b)
	g.scoreSpecialization(s, q, &b)
	g.scoreLeadTime(s, &b)

	return b
}

// scoreCostFit prices the requested quantity against the budget. Unlike the
// eligibility gate, which only asks whether the minimum order is
// affordable, this rule asks how well the actual order fits.
func (g GeneralScorer) scoreCostFit(s *catalog.Supplier, q Query, b *Breakdown) {
	quantity := float64(q.Quantity)
	budget := float64(q.Budget)

	minTotal := s.PriceRange.Min * quantity
	maxTotal := s.PriceRange.Max * quantity
	avgTotal := (minTotal + maxTotal) / 2
	band := fmt.Sprintf("¥%s - ¥%s", formatAmount(minTotal), formatAmount(maxTotal))

	switch {
	case maxTotal <= budget:
		// Scales from 40 down toward 20 as the average cost approaches
		// the full budget.
		costRatio := avgTotal / budget
		pts := math.Round(generalCostMax * (1 - costRatio*0.5))
		b.add(pts, fmt.Sprintf("within budget (estimated total %s)", band))
	case minTotal <= budget:
		b.add(20, fmt.Sprintf("possibly within budget (estimated total %s)", band))
	default:
		b.add(5, fmt.Sprintf("over budget (estimated total %s)", band))
	}
}

func (g GeneralScorer) scoreRegion(s *catalog.Supplier, q Query, b *Breakdown) {
	matched := (q.Region == RegionDomestic && s.Country == g.HomeCountry) ||
		(q.Region == RegionInternational && s.Country != g.HomeCountry)
	if matched {
		b.add(generalRegionBonus, fmt.Sprintf("matches preferred region (%s)", q.Region))
	}
}

func (g GeneralScorer) scoreBreadth(s *catalog.Supplier, b *Breakdown) {
	pts := math.Min(generalBreadthMax, float64(len(s.Capabilities))*3)
	if pts > 0 {
		b.add(pts, fmt.Sprintf("supported options: %d", len(s.Capabilities)))
	}
}

func (g GeneralScorer) scoreTrust(s *catalog.Supplier, b *Breakdown) {
	pts := math.Min(generalTrustMax, s.TrustScore*4)
	b.add(pts, fmt.Sprintf("trust score %.1f/5", s.TrustScore))
}

func (g GeneralScorer) scoreExperience(s *catalog.Supplier, b *Breakdown) {
	var pts float64
	switch {
	case s.YearsActive >= 10:
		pts = 10
	case s.YearsActive >= 8:
		pts = 8
	case s.YearsActive >= 3:
		pts = 5
	case s.YearsActive >= 1:
		pts = 2
	}
	b.add(pts, fmt.Sprintf("%d years in business", s.YearsActive))
}

func (g GeneralScorer) scoreFeatures(s *catalog.Supplier, q Query, b *Breakdown) {
	var pts float64
	var matched []string

	if q.Quantity < smallLotQuantity && s.Features.SmallLot {
		pts += 10
		matched = append(matched, "small-lot friendly")
	}
	if q.Quantity >= largeLotQuantity && s.Features.MassProduction {
		pts += 10
		matched = append(matched, "mass production")
	}
	if s.Features.Vintage {
		pts += 5
		matched = append(matched, "vintage finishing")
	}
	if s.Features.Heavyweight {
		pts += 5
		matched = append(matched, "heavyweight fabrics")
	}
	if s.Features.Oversize {
		pts += 3
		matched = append(matched, "oversize fits")
	}
	if s.Features.Distressed {
		pts += 2
		matched = append(matched, "distressed finishing")
	}
	if s.Features.StreetFocused {
		pts += 3
		matched = append(matched, "street fashion focus")
	}

	if len(matched) > 0 {
		b.add(math.Min(generalFeatureMax, pts), "features: "+strings.Join(matched, ", "))
	}
}

func (g GeneralScorer) scoreSpecialization(s *catalog.Supplier, q Query, b *Breakdown) {
	if s.HasCategory(q.Category) {
		b.add(generalSpecialty, fmt.Sprintf("%s specialist", categoryNames[q.Category]))
	}
}

func (g GeneralScorer) scoreLeadTime(s *catalog.Supplier, b *Breakdown) {
	avg := s.LeadTimeDays.AverageDays()
	switch {
	case avg <= 10:
		b.add(10, fmt.Sprintf("short lead time (about %d days)", int(avg)))
	case avg <= 15:
		b.add(7, fmt.Sprintf("fairly short lead time (about %d days)", int(avg)))
	case avg <= 20:
		b.add(5, fmt.Sprintf("lead time about %d days", int(avg)))
	}
}

// add accumulates a sub-score and its reason.
func (b *Breakdown) add(pts float64, reason string) {
	b.Score += pts
	b.Reasons = append(b.Reasons, reason)
}
