package domain

// Prediction is the outcome of classifying one article: the highest-probability
// label and the full class-to-probability mapping over the trained label set.
type Prediction struct {
	Label  string             `json:"label"`
	Scores map[string]float64 `json:"scores"`
}

// Top returns the label with the highest score in the mapping. Ties break
// toward the lexicographically smaller label so the result is deterministic.
func Top(scores map[string]float64) string {
	best := ""
	bestScore := -1.0
	for label, score := range scores {
		if score > bestScore || (score == bestScore && label < best) {
			best = label
			bestScore = score
		}
	}
	return best
}
