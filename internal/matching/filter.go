package matching

import "github.com/oemlink/oemlink/internal/catalog"

// Eligible reports whether a supplier passes every hard constraint of the
// query. Clauses are checked in a fixed order and short-circuit on the
// first failure:
//
//  1. category listed
//  2. requested quantity covers the supplier's MOQ
//  3. minimum order cost (average unit price x MOQ) fits the budget
//  4. country matches the region preference
//  5. every required capability is listed verbatim
//  6. years active meets the floor, when one is set
//
// The affordability clause deliberately prices the supplier's minimum
// order, not the requested quantity: a supplier you could not even place a
// minimum order with is useless regardless of how the full order would
// price out.
func (e *Engine) Eligible(s *catalog.Supplier, q Query) bool {
	if !s.HasCategory(q.Category) {
		return false
	}
	if q.Quantity < s.MOQMin {
		return false
	}
	if s.PriceRange.Average()*float64(s.MOQMin) > float64(q.Budget) {
		return false
	}
	switch q.Region {
	case RegionDomestic:
		if s.Country != e.homeCountry {
			return false
		}
	case RegionInternational:
		if s.Country == e.homeCountry {
			return false
		}
	}
	for _, capability := range q.RequiredCapabilities {
		if !s.HasCapability(capability) {
			return false
		}
	}
	if q.MinYearsActive > 0 && s.YearsActive < q.MinYearsActive {
		return false
	}
	return true
}

// FilterEligible returns the eligible suppliers in catalog order.
func (e *Engine) FilterEligible(suppliers []catalog.Supplier, q Query) []*catalog.Supplier {
	var eligible []*catalog.Supplier
	for i := range suppliers {
		if e.Eligible(&suppliers[i], q) {
			eligible = append(eligible, &suppliers[i])
		}
	}
	return eligible
}
