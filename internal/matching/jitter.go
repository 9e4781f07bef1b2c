package matching

// DiversityAdjust applies a bounded, reproducible perturbation to a base
// score so near-tied suppliers do not always surface in the same order
// across near-duplicate queries. The adjustment is derived purely from the
// supplier id, so identical (score, id) pairs always yield identical
// output. amplitudePct is the maximum absolute adjustment in percent.
func DiversityAdjust(baseScore float64, supplierID string, amplitudePct float64) float64 {
	// Eleven buckets mapped symmetrically onto [-amplitude, +amplitude].
	step := float64(hashBucket(supplierID, 11)) - 5
	pct := step / 5 * amplitudePct
	return baseScore * (1 + pct/100)
}

// hashBucket folds a rolling 32-bit hash of the id into [0, buckets). The
// hash wraps like a 32-bit signed integer; the double-mod keeps the bucket
// non-negative when the hash went negative.
func hashBucket(id string, buckets int32) int32 {
	var h int32
	for _, r := range id {
		h = h*31 + int32(r)
	}
	return ((h % buckets) + buckets) % buckets
}
