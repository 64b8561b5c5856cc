package retriever

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ragops/server/internal/storage"
)

var broadQuestionTerms = []string{
	"overview",
	"start",
	"begin",
	"onboard",
	"onboarding",
	"architecture",
	"arquitecture",
	"project",
	"codebase",
	"how does this work",
	"what is this",
}

var priorityPathHints = []string{
	"readme",
	"architecture.md",
	"docs/",
	"user-guide",
	"runbooks",
}

var highLevelPathHints = []string{
	"readme",
	"docs/",
	"manual",
	"user-guide",
	"runbooks",
	"architecture",
	".md",
}

var lowValuePathHints = []string{
	".egg-info/",
	"build/package/",
	"__pycache__/",
	".pytest_cache/",
	"node_modules/",
	"vendor/",
}

var codeSuffixes = []string{".py", ".ts", ".tsx", ".js", ".java", ".go", ".rs"}

var docSuffixes = []string{".md", ".txt", ".rst", ".adoc"}

const (
	fileHintBonus   = 0.25
	lowValuePenalty = 0.30
	priorityBonus   = 0.12
	highLevelBonus  = 0.10
)

var fileHintPattern = regexp.MustCompile(`[a-zA-Z0-9_.-]+\.[a-zA-Z0-9_-]+`)

// pulls explicit filename mentions out of a question, e.g. "main.go"
func ExtractFileHints(question string) []string {
	matches := fileHintPattern.FindAllString(strings.ToLower(question), -1)

	var hints []string
	for _, m := range matches {
		if len(m) >= 4 {
			hints = append(hints, m)
		}
	}

	return hints
}

// broad onboarding prompts get docs and READMEs prioritized over code
func IsBroadQuestion(question string) bool {
	text := strings.ToLower(question)
	for _, term := range broadQuestionTerms {
		if strings.Contains(text, term) {
			return true
		}
	}

	return false
}

// generated and cache paths that should never headline an answer
func IsLowValueSource(source string) bool {
	src := strings.ToLower(source)
	for _, hint := range lowValuePathHints {
		if strings.Contains(src, hint) {
			return true
		}
	}

	return false
}

// docs, manuals, and README style sources suitable for summaries
func IsHighLevelSource(source string) bool {
	src := strings.ToLower(source)

	for _, suffix := range codeSuffixes {
		if strings.HasSuffix(src, suffix) {
			return false
		}
	}

	for _, suffix := range docSuffixes {
		if strings.HasSuffix(src, suffix) {
			return true
		}
	}

	for _, hint := range highLevelPathHints {
		if strings.Contains(src, hint) {
			return true
		}
	}

	return false
}

func sourceBonus(source string, broad bool, fileHints []string) float64 {
	src := strings.ToLower(source)
	bonus := 0.0

	for _, hint := range fileHints {
		if strings.Contains(src, hint) {
			bonus += fileHintBonus
			break
		}
	}

	if IsLowValueSource(src) {
		bonus -= lowValuePenalty
	}

	if broad {
		for _, hint := range priorityPathHints {
			if strings.Contains(src, hint) {
				bonus += priorityBonus
				break
			}
		}

		if IsHighLevelSource(src) {
			bonus += highLevelBonus
		}
	}

	return bonus
}

// RerankChunks reorders raw vector results with lightweight source
// priors: filename mentions in the question get a boost, generated
// paths get demoted, CODEOWNERS owner/area matches get promoted, and
// broad onboarding questions prefer docs over code. The selection
// also de-duplicates sources for diversity.
func RerankChunks(question string, results []storage.SearchResult, topK int) []storage.SearchResult {
	if topK <= 0 || len(results) == 0 {
		return nil
	}

	broad := IsBroadQuestion(question)
	fileHints := ExtractFileHints(question)
	questionTokens := TokenizeQuestion(question)

	type scored struct {
		score  float64
		result storage.SearchResult
	}

	ranked := make([]scored, 0, len(results))
	for _, result := range results {
		score := result.Similarity +
			sourceBonus(result.SourceFile, broad, fileHints) +
			OwnershipBonus(result.SourceFile, questionTokens)

		ranked = append(ranked, scored{score: score, result: result})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	// drop low-value sources entirely when enough remains
	var preferred []storage.SearchResult
	for _, s := range ranked {
		if !IsLowValueSource(s.result.SourceFile) {
			preferred = append(preferred, s.result)
		}
	}

	pool := preferred
	if len(preferred) < topK {
		pool = make([]storage.SearchResult, 0, len(ranked))
		for _, s := range ranked {
			pool = append(pool, s.result)
		}
	}

	if !broad {
		return selectDiverse(pool, topK)
	}

	var highLevel, codeLevel []storage.SearchResult
	for _, result := range pool {
		if IsHighLevelSource(result.SourceFile) {
			highLevel = append(highLevel, result)
		} else {
			codeLevel = append(codeLevel, result)
		}
	}

	minimumDocs := max(2, min(topK, 3))
	if len(highLevel) >= minimumDocs {
		return selectDiverse(highLevel, topK)
	}

	return selectDiverse(append(highLevel, codeLevel...), topK)
}

// boosts chunks whose source file is named in the question.
// with no hints the input order is preserved.
func RerankByFileHints(question string, results []storage.SearchResult) []storage.SearchResult {
	hints := ExtractFileHints(question)
	if len(hints) == 0 {
		return results
	}

	type scored struct {
		score  float64
		result storage.SearchResult
	}

	ranked := make([]scored, 0, len(results))

	for _, result := range results {
		score := result.Similarity
		source := strings.ToLower(result.SourceFile)

		for _, hint := range hints {
			if strings.Contains(source, hint) {
				score += fileHintBonus
				break
			}
		}

		ranked = append(ranked, scored{score, result})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	reordered := make([]storage.SearchResult, 0, len(ranked))
	for _, s := range ranked {
		reordered = append(reordered, s.result)
	}

	return reordered
}

// picks up to limit results, one per source file first, then fills
// remaining slots with distinct chunks
func selectDiverse(candidates []storage.SearchResult, limit int) []storage.SearchResult {
	var selected []storage.SearchResult

	seenSources := make(map[string]bool)
	seenChunks := make(map[int64]bool)

	for _, candidate := range candidates {
		source := strings.ToLower(candidate.SourceFile)
		if seenSources[source] || seenChunks[candidate.ChunkID] {
			continue
		}

		selected = append(selected, candidate)
		seenSources[source] = true
		seenChunks[candidate.ChunkID] = true

		if len(selected) >= limit {
			return selected
		}
	}

	for _, candidate := range candidates {
		if seenChunks[candidate.ChunkID] {
			continue
		}

		selected = append(selected, candidate)
		seenChunks[candidate.ChunkID] = true

		if len(selected) >= limit {
			break
		}
	}

	return selected
}
