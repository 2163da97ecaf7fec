package textstats

import (
	"fmt"
	"sort"
)

// WordStat is the presented statistic for one term.
type WordStat struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Table maps each term to its count and its share of the presented total.
type Table map[string]WordStat

// Present drops zero-count terms and computes each remaining term's
// percentage of the total count across the presented set. An empty set
// presents as an empty table; the total is treated as 1 so no division by
// zero can occur.
func Present(counts map[string]int) Table {
	total := 0
	for _, count := range counts {
		if count > 0 {
			total += count
		}
	}
	if total == 0 {
		total = 1
	}

	table := make(Table, len(counts))
	for term, count := range counts {
		if count <= 0 {
			continue
		}
		table[term] = WordStat{
			Count:   count,
			Percent: float64(count) / float64(total) * 100,
		}
	}
	return table
}

// RankedTerms returns the table's terms ordered by descending count, ties
// broken alphabetically.
func RankedTerms(counts map[string]int) []string {
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	return terms
}

// TopKeywords returns the n highest-count terms formatted as "term:count".
func TopKeywords(counts map[string]int, n int) []string {
	ranked := RankedTerms(counts)
	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	keywords := make([]string, len(ranked))
	for i, term := range ranked {
		keywords[i] = fmt.Sprintf("%s:%d", term, counts[term])
	}
	return keywords
}
