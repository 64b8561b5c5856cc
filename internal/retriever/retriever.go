package retriever

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ragops/server/internal/errors"
	"github.com/ragops/server/internal/llm"
	"github.com/ragops/server/internal/logger"
	"github.com/ragops/server/internal/storage"
)

const ragPromptTemplate = `Answer the following question based ONLY on the provided context.
If the context does not contain enough information, say so.
Include citations referencing the source file and line numbers when possible.

Context:
%s

Question: %s

Answer:`

const noResultsAnswer = "No relevant documents found."

// the subset of storage used for retrieval
type SearchStore interface {
	SearchChunks(ctx context.Context, embedding []float32, collection string, topK int) ([]storage.SearchResult, error)
}

type Retriever struct {
	store     SearchStore
	embedder  llm.Embedder
	generator llm.TextGenerator // nil means retrieval-only mode
	topK      int
}

func New(store SearchStore, embedder llm.Embedder, generator llm.TextGenerator, topK int) *Retriever {
	if topK <= 0 {
		topK = 5
	}

	return &Retriever{
		store:     store,
		embedder:  embedder,
		generator: generator,
		topK:      topK,
	}
}

// checks request bounds before any provider call is made
func ValidateRequest(req QueryRequest) error {
	if strings.TrimSpace(req.Question) == "" {
		return errors.NewValidationError("field 'question' is required")
	}

	if len(req.Question) > MaxQuestionLength {
		return errors.NewValidationError(fmt.Sprintf("question exceeds %d character limit", MaxQuestionLength))
	}

	if req.TopK < 0 || req.TopK > MaxTopK {
		return errors.NewValidationError(fmt.Sprintf("field 'top_k' must be between 1 and %d", MaxTopK))
	}

	return nil
}

// embeds the question and returns the top-K most similar chunks
// after source-aware reranking
func (r *Retriever) Retrieve(ctx context.Context, req QueryRequest) ([]storage.SearchResult, error) {
	embedding, err := r.embedder.GenerateEmbedding(ctx, req.Question)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	topK := req.TopK
	if topK == 0 {
		topK = r.topK
	}

	// overfetch so the reranker has room to demote and diversify
	results, err := r.store.SearchChunks(ctx, embedding, req.Collection, topK*2)
	if err != nil {
		return nil, err
	}

	return RerankChunks(req.Question, results, topK), nil
}

// full pipeline: retrieve chunks, estimate confidence, and answer.
// citations always come from the retrieved set, never from the model.
func (r *Retriever) Query(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	start := time.Now()

	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	if req.Collection == "" {
		req.Collection = "default"
	}

	results, err := r.Retrieve(ctx, req)
	if err != nil {
		return nil, err
	}

	confidence, label := EstimateConfidence(results)

	result := &QueryResult{
		Citations:       BuildCitations(results),
		Retrieved:       len(results),
		Confidence:      confidence,
		ConfidenceLabel: label,
	}

	switch {
	case r.generator != nil && len(results) > 0:
		answer, genErr := r.generate(ctx, req.Question, results)
		if genErr != nil {
			// degrade to retrieval mode rather than failing the request
			logger.Warn("generation failed, falling back to retrieval", "error", genErr)
			result.Answer = results[0].Content
			result.Mode = ModeRetrieval
		} else {
			result.Answer = answer
			result.Mode = ModeRAG
		}
	case len(results) > 0:
		result.Answer = results[0].Content
		result.Mode = ModeRetrieval
	default:
		result.Answer = noResultsAnswer
		result.Mode = ModeRetrieval
	}

	result.LatencyMS = float64(time.Since(start).Microseconds()) / 1000

	return result, nil
}

func (r *Retriever) generate(ctx context.Context, question string, results []storage.SearchResult) (string, error) {
	parts := make([]string, 0, len(results))
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("[%d] (%s L%d-L%d):\n%s",
			i+1, result.SourceFile, result.LineStart, result.LineEnd, result.Content))
	}

	prompt := fmt.Sprintf(ragPromptTemplate, strings.Join(parts, "\n\n"), question)

	resp, err := r.generator.GenerateText(ctx, llm.TextGenerationRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.Text), nil
}

func BuildCitations(results []storage.SearchResult) []Citation {
	citations := make([]Citation, 0, len(results))

	for _, result := range results {
		citations = append(citations, Citation{
			Source:     result.SourceFile,
			LineStart:  result.LineStart,
			LineEnd:    result.LineEnd,
			Similarity: roundSimilarity(result.Similarity),
		})
	}

	return citations
}

func roundSimilarity(similarity float64) float64 {
	return math.Round(similarity*10000) / 10000
}
