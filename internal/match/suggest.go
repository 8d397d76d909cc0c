package match

import "strings"

// DefaultSuggestionScore is the minimum similarity for offering a
// candidate as a "did you mean" suggestion.
const DefaultSuggestionScore = 0.5

// Closest returns the candidate most similar to name, or false when no
// candidate reaches minScore. Comparison is case-insensitive and ignores
// underscores, so "read_view" still suggests "ReadView".
func Closest(name string, candidates []string, minScore float64) (string, bool) {
	best := ""
	bestScore := 0.0

	for _, c := range candidates {
		score := Similarity(fold(name), fold(c))
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < minScore {
		return "", false
	}

	return best, true
}

func fold(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}
