// Package textstats turns crawled page text into word-frequency tables and
// applies ignore-list and percentile filtering to them.
package textstats

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize lower-cases text and splits it into terms: maximal runs of
// letters and digits, at least two runes long, minus stop words. The rules
// are a compatibility boundary; downstream counts change if they do.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) < 2 {
			continue
		}
		if IsStopword(field) {
			continue
		}
		terms = append(terms, field)
	}
	return terms
}

// WordFrequency counts term occurrences in a single document.
func WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, term := range Tokenize(text) {
		frequencies[term]++
	}
	return frequencies
}

// Reduce merges per-document frequency maps into one table.
func Reduce(intermediate []map[string]int) map[string]int {
	final := make(map[string]int)
	for _, counts := range intermediate {
		for term, count := range counts {
			final[term] += count
		}
	}
	return final
}

// Aggregate computes the combined term table for a set of documents, with
// counts summed across all of them. An empty input yields an empty table.
func Aggregate(texts []string) map[string]int {
	intermediate := make([]map[string]int, 0, len(texts))
	for _, text := range texts {
		intermediate = append(intermediate, WordFrequency(text))
	}
	return Reduce(intermediate)
}
