// Package partition divides the candidate range of a sieve run into
// disjoint, contiguous per-worker segments.
package partition

// Range is an inclusive interval of candidate numbers assigned to one
// worker. A range with Low > High is empty and contributes nothing.
type Range struct {
	Low  uint64
	High uint64
}

// Empty reports whether the range contains no values.
func (r Range) Empty() bool {
	return r.Low > r.High
}

// Size returns the number of values in the range.
func (r Range) Size() uint64 {
	if r.Empty() {
		return 0
	}
	return r.High - r.Low + 1
}

// Plan divides [basePrimeLimit+1, limit] into workers contiguous ranges of
// equal size (the last may be shorter). Workers whose computed low exceeds
// the limit receive an empty range; that happens when workers outnumber the
// remaining values. Plan never reorders or merges ranges — the slice index
// is the worker id.
func Plan(limit, basePrimeLimit uint64, workers int) []Range {
	if workers < 1 {
		workers = 1
	}
	ranges := make([]Range, workers)

	if basePrimeLimit >= limit {
		// Base primes already cover the whole range.
		for i := range ranges {
			ranges[i] = Range{Low: 1, High: 0}
		}
		return ranges
	}

	rangeStart := basePrimeLimit + 1
	rangeSize := limit - basePrimeLimit
	segmentSize := (rangeSize + uint64(workers) - 1) / uint64(workers)

	for i := range ranges {
		low := rangeStart + uint64(i)*segmentSize
		high := low + segmentSize - 1
		if high > limit {
			high = limit
		}
		ranges[i] = Range{Low: low, High: high}
	}
	return ranges
}
