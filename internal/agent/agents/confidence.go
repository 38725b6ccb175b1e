package agents

import "strings"

// keywordScore computes the deterministic confidence proxy shared by all
// responders: matched domain keywords (case-insensitive substring) divided by
// the keyword-set size, clamped to [0,1]. When any bonus phrase is present,
// the raw count gets a one-time bonus before the division. This is an
// explainable heuristic, not a calibrated probability.
func keywordScore(message string, keywords []string, bonusPhrases []string, bonus int) float64 {
	lower := strings.ToLower(message)

	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}

	for _, phrase := range bonusPhrases {
		if strings.Contains(lower, phrase) {
			hits += bonus
			break
		}
	}

	score := float64(hits) / float64(len(keywords))
	if score > 1.0 {
		return 1.0
	}
	return score
}

// containsAny reports whether any of the needles occurs in the lowercased
// haystack.
func containsAny(lowerHaystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lowerHaystack, n) {
			return true
		}
	}
	return false
}
