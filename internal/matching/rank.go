package matching

import (
	"math"
	"sort"
	"time"

	"github.com/oemlink/oemlink/internal/catalog"
)

// DefaultHomeCountry anchors the domestic/international region preference.
const DefaultHomeCountry = "Japan"

// MatchResult is one ranked shortlist entry. Supplier points into the
// shared catalog; Score is the final jittered score rounded to one decimal;
// Reasons lists the scoring contributions in evaluation order.
type MatchResult struct {
	Supplier *catalog.Supplier `json:"supplier"`
	Score    float64           `json:"score"`
	Reasons  []string          `json:"reasons"`
}

// Engine runs the matching pipeline. It holds only immutable configuration,
// so a single instance is safe for concurrent use.
type Engine struct {
	homeCountry string
	cal         *Calibration
	metrics     *Metrics
}

// NewEngine builds an engine. A blank home country falls back to
// DefaultHomeCountry, a nil calibration to DefaultCalibration, and a nil
// metrics handle disables instrumentation.
func NewEngine(homeCountry string, cal *Calibration, metrics *Metrics) *Engine {
	if homeCountry == "" {
		homeCountry = DefaultHomeCountry
	}
	if cal == nil {
		cal = DefaultCalibration()
	}
	return &Engine{homeCountry: homeCountry, cal: cal, metrics: metrics}
}

// HomeCountry returns the country treated as domestic.
func (e *Engine) HomeCountry() string {
	return e.homeCountry
}

// Match runs the full pipeline over the catalog: filter, score with the
// category's strategy, perturb, rank descending, truncate to the top N.
// Ties resolve in catalog order. An empty eligible set yields an empty,
// successful result.
func (e *Engine) Match(suppliers []catalog.Supplier, q Query) []MatchResult {
	start := time.Now()

	eligible := e.FilterEligible(suppliers, q)
	scorer := e.scorerFor(q.Category)

	results := make([]MatchResult, 0, len(eligible))
	for _, s := range eligible {
		breakdown := scorer.Score(s, q)
		adjusted := DiversityAdjust(breakdown.Score, s.ID, e.cal.JitterPct)
		if adjusted < 0 {
			adjusted = 0
		}
		results = append(results, MatchResult{
			Supplier: s,
			Score:    math.Round(adjusted*10) / 10,
			Reasons:  breakdown.Reasons,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > e.cal.TopN {
		results = results[:e.cal.TopN]
	}

	if e.metrics != nil {
		e.metrics.ObserveMatch(q.Category, len(eligible), len(results),
			e.ShouldDiagnose(len(results)), time.Since(start).Seconds())
	}
	return results
}
