// Package matching implements the supplier matching and ranking engine:
// a deterministic filter-then-score pipeline with a bounded, reproducible
// diversity perturbation.
//
// Basic Usage:
//
//	// Build the engine (typically at startup)
//	cal, err := matching.LoadCalibration("configs/matching.calibration.json")
//	if err != nil {
//		slog.Warn("using default calibration", "error", err)
//	}
//	engine := matching.NewEngine("Japan", cal, nil)
//
//	// Normalize raw form input into a Query
//	query, err := matching.NormalizeQuery(matching.QueryInput{
//		Category: "tshirt",
//		Quantity: "500",
//		Budget:   "500000",
//		Region:   "international",
//	})
//
//	// Run the pipeline over the catalog
//	results := engine.Match(store.All(), query)
//
//	// Explain thin result sets
//	if engine.ShouldDiagnose(len(results)) {
//		hints := engine.Diagnose(store.All(), query)
//	}
//
// Pipeline:
//
// A query flows through the eligibility filter (six ordered, short-circuit
// clauses), the category-selected scoring strategy, the diversity
// perturbation, and the ranker. Every stage is a pure function over the
// immutable catalog, so the engine is reentrant and needs no locking under
// concurrent requests.
//
// Calibration:
//
// Pipeline knobs (top-N, low-result display threshold, diagnostic survival
// ratio, jitter amplitude) can be tuned at deploy time via a JSON
// calibration file loaded at startup. The scoring weight tables themselves
// are fixed in code so that every score stays traceable to its reasons.
package matching
