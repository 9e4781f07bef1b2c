package matching

import "testing"

// TestScorerSelection verifies the category-to-strategy switch.
func TestScorerSelection(t *testing.T) {
	engine := testEngine()

	if _, ok := engine.scorerFor("cap").(CappedScorer); !ok {
		t.Error("expected the capped strategy for caps")
	}
	if _, ok := engine.scorerFor("tshirt").(GeneralScorer); !ok {
		t.Error("expected the general strategy for tshirts")
	}
	if _, ok := engine.scorerFor("hoodie").(GeneralScorer); !ok {
		t.Error("expected the general strategy for hoodies")
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: 999, want: "999"},
		{in: 1000, want: "1,000"},
		{in: 57500, want: "57,500"},
		{in: 1234567, want: "1,234,567"},
		{in: 500000.4, want: "500,000"},
		{in: 500000.5, want: "500,001"},
		{in: -42000, want: "-42,000"},
	}

	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
