package retriever

import "github.com/ragops/server/internal/storage"

// confidence blends the best hit with the mean of the rest, so one
// strong match among weak ones reads lower than a dense cluster
const (
	topWeight  = 0.7
	meanWeight = 0.3

	highThreshold   = 0.75
	mediumThreshold = 0.45
)

// estimates how well the retrieved set supports an answer.
// the score is monotonic in the top similarity and labeled
// high, medium, or low for display.
func EstimateConfidence(results []storage.SearchResult) (float64, string) {
	if len(results) == 0 {
		return 0.0, "low"
	}

	top := results[0].Similarity
	sum := 0.0

	for _, result := range results {
		if result.Similarity > top {
			top = result.Similarity
		}
		sum += result.Similarity
	}

	mean := sum / float64(len(results))

	score := topWeight*top + meanWeight*mean
	score = min(max(score, 0.0), 1.0)

	return score, confidenceLabel(score)
}

func confidenceLabel(score float64) string {
	switch {
	case score >= highThreshold:
		return "high"
	case score >= mediumThreshold:
		return "medium"
	default:
		return "low"
	}
}
