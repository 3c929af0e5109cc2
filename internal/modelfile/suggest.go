package modelfile

import (
	"sort"
	"strings"
	"unicode"
)

// suggestionThreshold is the lowest similarity offered as a suggestion.
const suggestionThreshold = 0.5

// maxSuggestions caps how many alternatives a diagnostic lists.
const maxSuggestions = 3

// levenshtein computes the edit distance between two strings.
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

	// Keep a the shorter string; two rows of len(a)+1 suffice.
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// normalize case-folds s and strips separators, so "X_MAX", "xMax" and
// "x-max" compare equal.
func normalize(s string) string {
	var b strings.Builder

	for _, r := range s {
		if r == '_' || r == '-' || r == '.' || unicode.IsSpace(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// similarity is 1 for identical names and 0 for unrelated ones.
func similarity(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	return 1 - float64(levenshtein(a, b))/float64(max(len(a), len(b)))
}

// suggest returns the candidates closest to name, best first.
func suggest(name string, candidates []string) []string {
	type scored struct {
		name  string
		score float64
	}

	var hits []scored

	for _, c := range candidates {
		if s := similarity(name, c); s >= suggestionThreshold {
			hits = append(hits, scored{c, s})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}

		return hits[i].name < hits[j].name
	})

	out := make([]string, 0, maxSuggestions)
	for i := 0; i < len(hits) && i < maxSuggestions; i++ {
		out = append(out, hits[i].name)
	}

	return out
}
