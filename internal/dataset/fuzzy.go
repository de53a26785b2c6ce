package dataset

import (
	"sort"
	"strings"
)

// suggest scans every candidate name, scores it against the queried
// name with the configured metric, and returns the best matches,
// highest score first with ties broken lexicographically. Scoring is
// case-insensitive so a wrong-case query still finds its target.
func suggest(name string, candidates []string, cfg SuggestConfig) []string {
	type scored struct {
		name  string
		score float64
	}
	query := strings.ToLower(name)

	var matches []scored
	for _, candidate := range candidates {
		folded := strings.ToLower(candidate)
		var score float64
		switch cfg.Metric {
		case MetricLevenshtein:
			dist := levenshtein(query, folded)
			if dist > cfg.MaxDistance {
				continue
			}
			score = 1.0 / float64(1+dist)
		default:
			score = positionalRatio(query, folded)
			if score <= cfg.Threshold {
				continue
			}
		}
		matches = append(matches, scored{name: candidate, score: score})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].name < matches[j].name
	})

	limit := cfg.Limit
	if limit <= 0 || limit > len(matches) {
		limit = len(matches)
	}
	out := make([]string, 0, limit)
	for _, m := range matches[:limit] {
		out = append(out, m.name)
	}
	return out
}

// positionalRatio is the fraction of character positions that match,
// counted up to the shorter string's length and divided by the longer
// string's length. Transpositions score poorly; it favors names that
// share a prefix or differ by a few characters in place.
func positionalRatio(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shorter, longer := len(a), len(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	matches := 0
	for i := 0; i < shorter; i++ {
		if a[i] == b[i] {
			matches++
		}
	}
	return float64(matches) / float64(longer)
}

// levenshtein computes the classic edit distance between two strings
// using the two-row dynamic programming form.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
