package textstats

import (
	"math"
	"sort"
	"strings"
)

// ApplyIgnoreList removes ignored terms from the table. Comparison is
// case-insensitive on both sides.
func ApplyIgnoreList(counts map[string]int, ignore []string) map[string]int {
	if len(ignore) == 0 {
		return counts
	}

	ignoreSet := make(map[string]struct{}, len(ignore))
	for _, word := range ignore {
		ignoreSet[strings.ToLower(word)] = struct{}{}
	}

	kept := make(map[string]int, len(counts))
	for term, count := range counts {
		if _, skip := ignoreSet[strings.ToLower(term)]; skip {
			continue
		}
		kept[term] = count
	}
	return kept
}

// ApplyPercentile keeps terms whose count is at or above the percentile
// cutoff of the count distribution. Ties at the cutoff are kept, so
// percentile 0 keeps everything.
func ApplyPercentile(counts map[string]int, percentile float64) map[string]int {
	if len(counts) == 0 {
		return counts
	}

	values := make([]float64, 0, len(counts))
	for _, count := range counts {
		values = append(values, float64(count))
	}
	cutoff := percentileValue(values, percentile)

	kept := make(map[string]int, len(counts))
	for term, count := range counts {
		if float64(count) >= cutoff {
			kept[term] = count
		}
	}
	return kept
}

// percentileValue computes the p-th percentile of values with linear
// interpolation between closest ranks. values must be non-empty; it is
// sorted in place.
func percentileValue(values []float64, p float64) float64 {
	sort.Float64s(values)
	if p <= 0 {
		return values[0]
	}
	if p >= 100 {
		return values[len(values)-1]
	}

	rank := p / 100 * float64(len(values)-1)
	lo := math.Floor(rank)
	hi := math.Ceil(rank)
	if lo == hi {
		return values[int(rank)]
	}
	return values[int(lo)]*(hi-rank) + values[int(hi)]*(rank-lo)
}
