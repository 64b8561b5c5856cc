package eval

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragops/server/internal/retriever"
)

func writeDataset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCasesJSON(t *testing.T) {
	path := writeDataset(t, "cases.json", `[
		{"question": "how does ingest work?", "expected_source_contains": ["Pipeline.go", " ingest "]},
		{"id": "named", "question": "where is config?", "collection": "other"}
	]`)

	cases, err := LoadCases(path, "default")
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, "case-1", cases[0].ID)
	assert.Equal(t, "default", cases[0].Collection)
	assert.Equal(t, []string{"pipeline.go", "ingest"}, cases[0].ExpectedSourceContains)

	assert.Equal(t, "named", cases[1].ID)
	assert.Equal(t, "other", cases[1].Collection)
}

func TestLoadCasesYAML(t *testing.T) {
	path := writeDataset(t, "cases.yaml", `
- question: how does retry work?
  expected_answer_contains:
    - backoff
`)

	cases, err := LoadCases(path, "default")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, []string{"backoff"}, cases[0].ExpectedAnswerContains)
}

func TestLoadCasesRejectsMissingQuestion(t *testing.T) {
	path := writeDataset(t, "cases.json", `[{"id": "x"}]`)

	_, err := LoadCases(path, "default")
	assert.Error(t, err)
}

type scriptedRunner struct {
	answers map[string]*retriever.QueryResult
	err     error
}

func (s *scriptedRunner) Query(ctx context.Context, req retriever.QueryRequest) (*retriever.QueryResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.answers[req.Question], nil
}

func TestRunComputesHitRates(t *testing.T) {
	runner := &scriptedRunner{answers: map[string]*retriever.QueryResult{
		"q1": {
			Answer:    "The pipeline uses exponential backoff on retries.",
			Citations: []retriever.Citation{{Source: "internal/ingest/pipeline.go"}},
			Retrieved: 1,
			Mode:      "rag",
			LatencyMS: 10,
		},
		"q2": {
			Answer:    "Unrelated answer.",
			Citations: []retriever.Citation{{Source: "docs/other.md"}},
			Retrieved: 1,
			Mode:      "rag",
			LatencyMS: 30,
		},
	}}

	cases := []Case{
		{ID: "a", Question: "q1", ExpectedSourceContains: []string{"pipeline.go"}, ExpectedAnswerContains: []string{"backoff"}},
		{ID: "b", Question: "q2", ExpectedSourceContains: []string{"config.go"}, ExpectedAnswerContains: []string{"godotenv"}},
	}

	report := Run(context.Background(), runner, cases, 5)

	assert.Equal(t, 2, report.Summary.TotalCases)
	assert.Equal(t, 0.5, report.Summary.SourceHitRate)
	assert.Equal(t, 0.5, report.Summary.AnswerHitRate)
	assert.Equal(t, 0.5, report.Summary.PassedAllRate)
	assert.Equal(t, 20.0, report.Summary.AvgLatencyMS)

	assert.True(t, report.Results[0].SourceHit)
	assert.True(t, report.Results[0].AnswerHit)
	assert.False(t, report.Results[1].SourceHit)
	assert.False(t, report.Results[1].AnswerHit)
}

func TestRunEmptyExpectationsAlwaysPass(t *testing.T) {
	runner := &scriptedRunner{answers: map[string]*retriever.QueryResult{
		"q": {Answer: "whatever", Mode: "retrieval"},
	}}

	report := Run(context.Background(), runner, []Case{{ID: "a", Question: "q"}}, 5)

	assert.Equal(t, 1.0, report.Summary.PassedAllRate)
}

func TestRunRecordsCaseErrors(t *testing.T) {
	runner := &scriptedRunner{err: errors.New("provider down")}

	report := Run(context.Background(), runner, []Case{{ID: "a", Question: "q"}}, 5)

	require.Len(t, report.Results, 1)
	assert.Equal(t, "provider down", report.Results[0].Error)
	assert.False(t, report.Results[0].SourceHit)
	assert.Equal(t, 0.0, report.Summary.SourceHitRate)
}

func TestRenderMarkdown(t *testing.T) {
	report := &Report{
		Summary: Summary{TotalCases: 1, SourceHitRate: 1, AnswerHitRate: 1, PassedAllRate: 1, AvgLatencyMS: 12.5},
		Results: []CaseResult{{ID: "a", Mode: "rag", Retrieved: 3, LatencyMS: 12.5, SourceHit: true, AnswerHit: true}},
	}

	md := RenderMarkdown(report)

	assert.True(t, strings.HasPrefix(md, "# Evaluation Report"))
	assert.Contains(t, md, "| a | rag | 3 | 12.5 | true | true |")
	assert.Contains(t, md, "Source hit rate: 100.00%")
}
