package chat

import (
	"fmt"
	"strings"

	"github.com/ragops/server/internal/retriever"
	"github.com/ragops/server/internal/storage"
)

const (
	snippetExcerptChars = 420
	unknownAnswer       = "I don't know based on indexed project context."
)

func buildContextSnippets(results []storage.SearchResult, limit int) []ContextSnippet {
	snippets := make([]ContextSnippet, 0, min(limit, len(results)))

	for _, result := range results[:min(limit, len(results))] {
		content := strings.TrimSpace(result.Content)
		if len(content) > snippetExcerptChars {
			content = content[:snippetExcerptChars] + "..."
		}

		snippets = append(snippets, ContextSnippet{
			Source:     result.SourceFile,
			LineStart:  result.LineStart,
			LineEnd:    result.LineEnd,
			Similarity: result.Similarity,
			Content:    content,
		})
	}

	return snippets
}

func trimContextContent(content string, limit int) string {
	text := strings.TrimSpace(content)
	if len(text) <= limit {
		return text
	}

	return strings.TrimRight(text[:limit], " \t\n") + "\n..."
}

// formats retrieved chunks for the model prompt. code chunks get a
// tighter budget on broad questions to discourage answer dumping.
func buildPromptContext(results []storage.SearchResult, question, style string) string {
	broad := retriever.IsBroadQuestion(question)

	defaultLimit := 1000
	codeLimit := 550
	if style == StyleDetailed {
		defaultLimit = 1600
		codeLimit = 900
	}

	parts := make([]string, 0, len(results))

	for i, result := range results {
		limit := defaultLimit
		if broad && !retriever.IsHighLevelSource(result.SourceFile) {
			limit = codeLimit
		}

		parts = append(parts, fmt.Sprintf("[%d] (%s L%d-L%d):\n%s",
			i+1, result.SourceFile, result.LineStart, result.LineEnd,
			trimContextContent(result.Content, limit)))
	}

	return strings.Join(parts, "\n\n")
}

// builds a compact answer from retrieval evidence alone. used when no
// generator is configured, generation fails, or its output is rejected.
func buildRetrievalFallback(results []storage.SearchResult, mode, style string) string {
	if len(results) == 0 {
		return unknownAnswer
	}

	limit := 3
	if style == StyleDetailed {
		limit = 5
	}

	snippets := buildContextSnippets(results, limit)

	var lines []string

	if mode == ModeStepByStep {
		lines = append(lines, "1. Relevant indexed evidence for your question:")
		for i, snip := range snippets {
			lines = append(lines, fmt.Sprintf("%d. `%s` (L%d-L%d)", i+2, snip.Source, snip.LineStart, snip.LineEnd))
		}
	} else {
		lines = append(lines, "Summary: I found relevant project context in these sources.")
		for _, snip := range snippets {
			lines = append(lines, fmt.Sprintf("- `%s` (L%d-L%d)", snip.Source, snip.LineStart, snip.LineEnd))
		}
	}

	lines = append(lines, "")

	if style == StyleDetailed {
		lines = append(lines, "Key extracted lines:")
		for _, snip := range snippets[:min(3, len(snippets))] {
			preview := strings.ReplaceAll(snip.Content, "\n", " ")
			lines = append(lines, "- "+preview)
		}
	} else {
		lines = append(lines, "Ask a follow-up like: 'summarize this in plain English'.")
	}

	return strings.Join(lines, "\n")
}

// downgrades a generated answer to the retrieval fallback when empty
// or when it is mostly raw code
func finalizeAnswer(generated string, results []storage.SearchResult, mode, style string) string {
	cleaned := strings.TrimSpace(generated)

	if cleaned == "" || LooksLikeCodeDump(cleaned) {
		return buildRetrievalFallback(results, mode, style)
	}

	return cleaned
}
