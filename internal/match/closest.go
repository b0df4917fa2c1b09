package match

// DefaultThreshold is the minimum similarity for a suggestion.
const DefaultThreshold = 0.6

// Closest returns the candidate most similar to name, if any reaches
// threshold. Ties keep the earlier candidate.
func Closest(name string, candidates []string, threshold float64) (string, bool) {
	best, bestScore := "", threshold

	found := false

	for _, c := range candidates {
		score := Similarity(name, c)
		if score > bestScore || (!found && score == bestScore) {
			best, bestScore, found = c, score, true
		}
	}

	return best, found
}

// Hint formats a "did you mean" suffix for error messages, or "" when no
// candidate is close enough.
func Hint(name string, candidates []string) string {
	if c, ok := Closest(name, candidates, DefaultThreshold); ok {
		return "; did you mean " + `"` + c + `"?`
	}

	return ""
}
