package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ragops/server/internal/llm"
	"github.com/ragops/server/internal/logger"
	"github.com/ragops/server/internal/retriever"
	"github.com/ragops/server/internal/storage"
)

const chatPromptTemplate = `You are an internal codebase onboarding assistant.
Answer ONLY from the provided context snippets and conversation history.
If the answer is not in the context, reply exactly:
I don't know based on indexed project context.

Mode instruction:
%s

Answer style instruction:
%s

Output rules:
- Start with a direct summary.
- Cite the most relevant files/lines.
- Do NOT paste large raw config/file blocks unless the user explicitly asks.
- If uncertain, say you are uncertain based on indexed context.

Conversation history:
%s

Retrieved context:
%s

User question:
%s

Answer:
`

// the subset of storage used by the chat engine
type Store interface {
	UpsertSession(ctx context.Context, session storage.Session) error
	InsertMessage(ctx context.Context, sessionID, role, content string, citations json.RawMessage) (int64, error)
	ListRecentMessages(ctx context.Context, sessionID string, limit int) ([]storage.Message, error)
	CountTurns(ctx context.Context, sessionID string) (int, error)
	SearchChunks(ctx context.Context, embedding []float32, collection string, topK int) ([]storage.SearchResult, error)
}

type Engine struct {
	store        Store
	embedder     llm.Embedder
	generator    llm.TextGenerator // nil means retrieval-only answers
	topK         int
	historyTurns int
}

func NewEngine(store Store, embedder llm.Embedder, generator llm.TextGenerator, topK, historyTurns int) *Engine {
	if topK <= 0 {
		topK = 5
	}

	if historyTurns <= 0 {
		historyTurns = 6
	}

	return &Engine{
		store:        store,
		embedder:     embedder,
		generator:    generator,
		topK:         topK,
		historyTurns: historyTurns,
	}
}

// Chat runs one conversational turn: load history, persist the user
// message, retrieve and rerank context, answer, persist the reply.
// Both sides of the turn are stored even when generation falls back.
func (e *Engine) Chat(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	if err := retriever.ValidateRequest(retriever.QueryRequest{
		Question: req.Question,
		TopK:     req.TopK,
	}); err != nil {
		return nil, err
	}

	mode, err := NormalizeMode(req.Mode)
	if err != nil {
		return nil, err
	}

	style, err := NormalizeStyle(req.Style)
	if err != nil {
		return nil, err
	}

	collection := req.Collection
	if collection == "" {
		collection = "default"
	}

	topK := req.TopK
	if topK == 0 {
		topK = e.topK
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	err = e.store.UpsertSession(ctx, storage.Session{
		ID:         sessionID,
		Collection: collection,
		Mode:       mode,
		Style:      style,
	})
	if err != nil {
		return nil, err
	}

	// history window covers both sides of each prior turn
	history, err := e.store.ListRecentMessages(ctx, sessionID, max(1, e.historyTurns*2))
	if err != nil {
		return nil, err
	}

	if _, err := e.store.InsertMessage(ctx, sessionID, "user", req.Question, nil); err != nil {
		return nil, err
	}

	embedding, err := e.embedder.GenerateEmbedding(ctx, req.Question)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	// overfetch so the reranker has room to demote and diversify
	raw, err := e.store.SearchChunks(ctx, embedding, collection, topK*2)
	if err != nil {
		return nil, err
	}

	chunks := retriever.RerankChunks(req.Question, raw, topK)

	answer := e.answer(ctx, req.Question, history, chunks, mode, style)

	citations := retriever.BuildCitations(chunks)

	if _, err := e.store.InsertMessage(ctx, sessionID, "assistant", answer, marshalCitations(citations)); err != nil {
		return nil, err
	}

	turnIndex, err := e.store.CountTurns(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := &Result{
		SessionID:   sessionID,
		Answer:      answer,
		Citations:   citations,
		Retrieved:   len(chunks),
		LatencyMS:   float64(time.Since(start).Microseconds()) / 1000,
		Mode:        mode,
		TurnIndex:   turnIndex,
		AnswerStyle: style,
	}

	if req.IncludeContext {
		result.ContextSnippets = buildContextSnippets(chunks, min(max(topK, 1), 8))
	}

	return result, nil
}

func marshalCitations(citations []retriever.Citation) json.RawMessage {
	if len(citations) == 0 {
		return nil
	}

	raw, err := json.Marshal(citations)
	if err != nil {
		return nil
	}

	return raw
}

func (e *Engine) answer(ctx context.Context, question string, history []storage.Message, chunks []storage.SearchResult, mode, style string) string {
	if e.generator == nil || len(chunks) == 0 {
		return buildRetrievalFallback(chunks, mode, style)
	}

	prompt := fmt.Sprintf(chatPromptTemplate,
		modeInstruction(mode),
		styleInstruction(style),
		RenderHistory(history),
		buildPromptContext(chunks, question, style),
		question,
	)

	resp, err := e.generator.GenerateText(ctx, llm.TextGenerationRequest{Prompt: prompt})
	if err != nil {
		logger.Warn("generation failed, falling back to retrieval", "error", err)
		return buildRetrievalFallback(chunks, mode, style)
	}

	return finalizeAnswer(strings.TrimSpace(resp.Text), chunks, mode, style)
}
