package retriever

import (
	"testing"

	"github.com/ragops/server/internal/storage"
)

func results(similarities ...float64) []storage.SearchResult {
	out := make([]storage.SearchResult, len(similarities))
	for i, s := range similarities {
		out[i] = storage.SearchResult{ChunkID: int64(i + 1), Similarity: s}
	}
	return out
}

func TestConfidenceHighForStrongDenseHits(t *testing.T) {
	score, label := EstimateConfidence(results(0.92, 0.92, 0.92, 0.92, 0.92))

	if score < 0.75 {
		t.Errorf("expected score >= 0.75, got %f", score)
	}
	if label != "high" {
		t.Errorf("expected label high, got %s", label)
	}
}

func TestConfidenceLowWhenNoHits(t *testing.T) {
	score, label := EstimateConfidence(nil)

	if score != 0.0 {
		t.Errorf("expected score 0.0, got %f", score)
	}
	if label != "low" {
		t.Errorf("expected label low, got %s", label)
	}
}

func TestConfidenceMonotonicInTopSimilarity(t *testing.T) {
	weak, _ := EstimateConfidence(results(0.4, 0.3))
	strong, _ := EstimateConfidence(results(0.8, 0.3))

	if strong <= weak {
		t.Errorf("expected stronger top hit to raise score: weak=%f strong=%f", weak, strong)
	}
}

func TestConfidenceDenseClusterBeatsLoneHit(t *testing.T) {
	lone, _ := EstimateConfidence(results(0.85, 0.2, 0.2))
	dense, _ := EstimateConfidence(results(0.85, 0.8, 0.8))

	if dense <= lone {
		t.Errorf("expected dense cluster to score higher: lone=%f dense=%f", lone, dense)
	}
}

func TestConfidenceLabels(t *testing.T) {
	tests := []struct {
		name         string
		similarities []float64
		want         string
	}{
		{"strong", []float64{0.95, 0.9}, "high"},
		{"middling", []float64{0.55, 0.5}, "medium"},
		{"weak", []float64{0.2, 0.1}, "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, label := EstimateConfidence(results(tt.similarities...))
			if label != tt.want {
				t.Errorf("expected %s, got %s", tt.want, label)
			}
		})
	}
}
