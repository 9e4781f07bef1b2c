package matching

import (
	"fmt"
	"strings"

	"github.com/oemlink/oemlink/internal/catalog"
)

// ShouldDiagnose reports whether a result set is small enough that the
// caller should attach low-result diagnostics.
func (e *Engine) ShouldDiagnose(matched int) bool {
	return matched <= e.cal.DisplayThreshold
}

// Diagnose explains a thin result set. It never looks at the matched
// results themselves: it re-examines the full catalog against the query,
// testing each constraint independently over the category subset and
// reporting any constraint that fewer than the calibrated share of
// suppliers would survive. If no supplier lists the category at all, that
// single terminal reason is returned and no further checks run. An empty
// return means no single constraint is to blame.
func (e *Engine) Diagnose(suppliers []catalog.Supplier, q Query) []string {
	var inCategory []*catalog.Supplier
	for i := range suppliers {
		if suppliers[i].HasCategory(q.Category) {
			inCategory = append(inCategory, &suppliers[i])
		}
	}
	if len(inCategory) == 0 {
		return []string{fmt.Sprintf("no registered suppliers handle the %s category",
			categoryNames[q.Category])}
	}

	total := len(inCategory)
	threshold := float64(total) * e.cal.SurvivalRatio
	var reasons []string

	if q.MinYearsActive > 0 {
		n := 0
		for _, s := range inCategory {
			if s.YearsActive >= q.MinYearsActive {
				n++
			}
		}
		if float64(n) < threshold {
			reasons = append(reasons, fmt.Sprintf(
				"the minimum years in business requirement (%d+) may be too strict (%d of %d category suppliers qualify)",
				q.MinYearsActive, n, total))
		}
	}

	n := 0
	var moqSum int
	for _, s := range inCategory {
		moqSum += s.MOQMin
		if q.Quantity >= s.MOQMin {
			n++
		}
	}
	if float64(n) < threshold {
		avgMOQ := float64(moqSum) / float64(total)
		reasons = append(reasons, fmt.Sprintf(
			"the requested quantity (%s units) may be below most minimums (average MOQ %s units)",
			formatAmount(float64(q.Quantity)), formatAmount(avgMOQ)))
	}

	n = 0
	var costSum float64
	for _, s := range inCategory {
		minCost := s.PriceRange.Average() * float64(s.MOQMin)
		costSum += minCost
		if minCost <= float64(q.Budget) {
			n++
		}
	}
	if float64(n) < threshold {
		avgCost := costSum / float64(total)
		reasons = append(reasons, fmt.Sprintf(
			"the budget (¥%s) may be too low (average minimum order cost ¥%s)",
			formatAmount(float64(q.Budget)), formatAmount(avgCost)))
	}

	if len(q.RequiredCapabilities) > 0 {
		n = 0
		for _, s := range inCategory {
			ok := true
			for _, capability := range q.RequiredCapabilities {
				if !s.HasCapability(capability) {
					ok = false
					break
				}
			}
			if ok {
				n++
			}
		}
		if float64(n) < threshold {
			reasons = append(reasons, fmt.Sprintf(
				"the required capabilities (%s) may be too strict (%d of %d category suppliers qualify)",
				strings.Join(q.RequiredCapabilities, ", "), n, total))
		}
	}

	return reasons
}
