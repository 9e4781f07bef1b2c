package matching

import (
	"math"
	"strconv"

	"github.com/oemlink/oemlink/internal/catalog"
)

// Breakdown is the output of a scoring strategy for one supplier: the raw
// base score (before diversity adjustment) and the human-readable reasons
// for every rule that awarded points.
type Breakdown struct {
	Score   float64
	Reasons []string
}

// Scorer scores an eligible supplier against a query. Implementations must
// be pure: no supplier or query mutation, no shared state. Every rule that
// contributes points appends a reason, so an empty Reasons slice implies a
// zero score.
type Scorer interface {
	Score(s *catalog.Supplier, q Query) Breakdown
}

// scorerFor selects the scoring strategy for a category. Caps get their own
// rule set tuned for low-MOQ accessory sourcing; every other category uses
// the general apparel rules.
func (e *Engine) scorerFor(category string) Scorer {
	if category == CategoryCap {
		return CappedScorer{}
	}
	return GeneralScorer{HomeCountry: e.homeCountry}
}

// formatAmount renders a currency amount with thousands separators, e.g.
// 1234567 -> "1,234,567". Amounts are rounded to whole currency units.
func formatAmount(v float64) string {
	s := strconv.FormatInt(int64(math.Round(v)), 10)

	negative := false
	if s[0] == '-' {
		negative = true
		s = s[1:]
	}

	if len(s) > 3 {
		var out []byte
		first := len(s) % 3
		if first > 0 {
			out = append(out, s[:first]...)
		}
		for i := first; i < len(s); i += 3 {
			if len(out) > 0 {
				out = append(out, ',')
			}
			out = append(out, s[i:i+3]...)
		}
		s = string(out)
	}

	if negative {
		return "-" + s
	}
	return s
}
