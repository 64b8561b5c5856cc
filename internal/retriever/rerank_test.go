package retriever

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragops/server/internal/storage"
)

func chunk(id int64, source string, similarity float64) storage.SearchResult {
	return storage.SearchResult{ChunkID: id, SourceFile: source, Similarity: similarity, Content: "content"}
}

func sources(results []storage.SearchResult) []string {
	var out []string
	for _, r := range results {
		out = append(out, r.SourceFile)
	}
	return out
}

func TestExtractFileHints(t *testing.T) {
	hints := ExtractFileHints("Where is main.go and how does config.yaml get loaded?")
	assert.ElementsMatch(t, []string{"main.go", "config.yaml"}, hints)
}

func TestExtractFileHintsIgnoresShortMatches(t *testing.T) {
	hints := ExtractFileHints("what is a.b here?")
	assert.Empty(t, hints)
}

func TestIsBroadQuestionDetectsArchitectureAndTypo(t *testing.T) {
	assert.True(t, IsBroadQuestion("Tell me the architecture"))
	assert.True(t, IsBroadQuestion("can yo tell me about the arquitecture?"))
	assert.False(t, IsBroadQuestion("where is the retry loop?"))
}

func TestIsLowValueSourceDetectsGeneratedPaths(t *testing.T) {
	assert.True(t, IsLowValueSource("ragops.egg-info/SOURCES.txt"))
	assert.True(t, IsLowValueSource("build/package/services/api/app.py"))
	assert.False(t, IsLowValueSource("docs/architecture.md"))
}

func TestRerankChunksPrioritizesDocsForBroadQuery(t *testing.T) {
	ranked := RerankChunks("can you explain the architecture?", []storage.SearchResult{
		chunk(1, "services/cli/main.py", 0.92),
		chunk(2, "docs/architecture.md", 0.86),
	}, 1)

	require.Len(t, ranked, 1)
	assert.Equal(t, "docs/architecture.md", ranked[0].SourceFile)
}

func TestRerankChunksDiversifiesSources(t *testing.T) {
	ranked := RerankChunks("what is this project overview?", []storage.SearchResult{
		chunk(1, "services/cli/main.py", 0.91),
		chunk(2, "services/cli/main.py", 0.90),
		chunk(3, "docs/user-guide.md", 0.89),
	}, 2)

	require.Len(t, ranked, 2)
	assert.Contains(t, sources(ranked), "services/cli/main.py")
	assert.Contains(t, sources(ranked), "docs/user-guide.md")
}

func TestRerankChunksDemotesLowValueSources(t *testing.T) {
	ranked := RerankChunks("explain project architecture", []storage.SearchResult{
		chunk(1, "ragops.egg-info/SOURCES.txt", 0.95),
		chunk(2, "docs/architecture.md", 0.82),
	}, 1)

	require.Len(t, ranked, 1)
	assert.Equal(t, "docs/architecture.md", ranked[0].SourceFile)
}

func TestRerankChunksPrefersExplicitFilenameHint(t *testing.T) {
	ranked := RerankChunks("tell me about CODEBASE_MANUAL.md", []storage.SearchResult{
		chunk(1, "services/cli/main.py", 0.90),
		chunk(2, "manuals/CODEBASE_MANUAL.md", 0.76),
	}, 1)

	require.Len(t, ranked, 1)
	assert.Equal(t, "manuals/CODEBASE_MANUAL.md", ranked[0].SourceFile)
}

func TestRerankChunksPrefersManualsBeforeCodeForBroadQuery(t *testing.T) {
	ranked := RerankChunks("give me an architecture overview of this project", []storage.SearchResult{
		chunk(1, "services/api/app/handler.py", 0.95),
		chunk(2, "manuals/PROJECT_OVERVIEW.md", 0.80),
		chunk(3, "docs/architecture.md", 0.84),
	}, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "docs/architecture.md", ranked[0].SourceFile)
	for _, source := range sources(ranked) {
		assert.True(t, IsHighLevelSource(source), "expected doc source, got %s", source)
	}
}

func TestRerankChunksUsesCodeownersAreaBoost(t *testing.T) {
	root := filepath.Join(t.TempDir(), "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "services", "api", "app"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "services", "cli"), 0o755))

	codeowners := "/services/api/ @platform-team\n/services/cli/ @cli-team\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "CODEOWNERS"), []byte(codeowners), 0o644))

	apiFile := filepath.Join(root, "services", "api", "app", "handler.py")
	cliFile := filepath.Join(root, "services", "cli", "main.py")
	require.NoError(t, os.WriteFile(apiFile, []byte("def handler():\n    return 200\n"), 0o644))
	require.NoError(t, os.WriteFile(cliFile, []byte("def main():\n    return 0\n"), 0o644))

	ranked := RerankChunks("how does platform api work?", []storage.SearchResult{
		chunk(1, cliFile, 0.91),
		chunk(2, apiFile, 0.80),
	}, 1)

	require.Len(t, ranked, 1)
	assert.Equal(t, apiFile, ranked[0].SourceFile)
}

func TestRerankChunksFillsFromDuplicateSourcesWhenNeeded(t *testing.T) {
	ranked := RerankChunks("how is retry handled?", []storage.SearchResult{
		chunk(1, "internal/retry.go", 0.92),
		chunk(2, "internal/retry.go", 0.91),
	}, 2)

	assert.Len(t, ranked, 2)
}

func TestRerankChunksEmptyInput(t *testing.T) {
	assert.Empty(t, RerankChunks("anything", nil, 5))
}

func TestOwnershipBonusZeroForRelativeSources(t *testing.T) {
	tokens := TokenizeQuestion("how does the platform api work?")
	assert.Zero(t, OwnershipBonus("services/api/handler.py", tokens))
}

func TestRerankByFileHintsPrefersHintedSource(t *testing.T) {
	input := []storage.SearchResult{
		{ChunkID: 1, SourceFile: "services/cli/main.py", Similarity: 0.91},
		{ChunkID: 2, SourceFile: "services/api/handler.py", Similarity: 0.80},
	}

	ranked := RerankByFileHints("how does handler.py work?", input)
	assert.Equal(t, "services/api/handler.py", ranked[0].SourceFile)
}

func TestRerankByFileHintsWithoutHintsPreservesOrder(t *testing.T) {
	input := []storage.SearchResult{
		{ChunkID: 1, SourceFile: "a/b.go", Similarity: 0.9},
		{ChunkID: 2, SourceFile: "c/d.go", Similarity: 0.8},
	}

	ranked := RerankByFileHints("how does the scheduler work", input)
	assert.Equal(t, input, ranked)
}
