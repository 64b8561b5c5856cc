package eval

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ragops/server/internal/logger"
	"github.com/ragops/server/internal/retriever"
)

// QueryRunner answers one question, the production retriever satisfies it
type QueryRunner interface {
	Query(ctx context.Context, req retriever.QueryRequest) (*retriever.QueryResult, error)
}

type CaseResult struct {
	ID         string               `json:"id"`
	Question   string               `json:"question"`
	Collection string               `json:"collection"`
	Mode       string               `json:"mode"`
	Retrieved  int                  `json:"retrieved"`
	LatencyMS  float64              `json:"latency_ms"`
	SourceHit  bool                 `json:"source_hit"`
	AnswerHit  bool                 `json:"answer_hit"`
	Citations  []retriever.Citation `json:"citations"`
	Answer     string               `json:"answer"`
	Error      string               `json:"error,omitempty"`
}

type Summary struct {
	TotalCases    int     `json:"total_cases"`
	SourceHitRate float64 `json:"source_hit_rate"`
	AnswerHitRate float64 `json:"answer_hit_rate"`
	PassedAllRate float64 `json:"passed_all_rate"`
	AvgLatencyMS  float64 `json:"avg_latency_ms"`
}

type Report struct {
	Summary Summary      `json:"summary"`
	Results []CaseResult `json:"results"`
}

// Run executes every case and computes hit rates. A failed query
// counts as a miss on both metrics rather than aborting the run.
func Run(ctx context.Context, runner QueryRunner, cases []Case, topK int) *Report {
	results := make([]CaseResult, 0, len(cases))

	sourceHits := 0
	answerHits := 0
	passedAll := 0
	totalLatency := 0.0

	for _, c := range cases {
		result := CaseResult{
			ID:         c.ID,
			Question:   c.Question,
			Collection: c.Collection,
		}

		qr, err := runner.Query(ctx, retriever.QueryRequest{
			Question:   c.Question,
			Collection: c.Collection,
			TopK:       topK,
		})
		if err != nil {
			logger.Error("eval case failed", "case", c.ID, "error", err)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		result.Mode = qr.Mode
		result.Retrieved = qr.Retrieved
		result.LatencyMS = qr.LatencyMS
		result.Citations = qr.Citations
		result.Answer = qr.Answer
		result.SourceHit = evaluateSourceHit(qr.Citations, c.ExpectedSourceContains)
		result.AnswerHit = evaluateAnswerHit(qr.Answer, c.ExpectedAnswerContains)

		if result.SourceHit {
			sourceHits++
		}

		if result.AnswerHit {
			answerHits++
		}

		if result.SourceHit && result.AnswerHit {
			passedAll++
		}

		totalLatency += qr.LatencyMS

		results = append(results, result)
	}

	total := len(cases)
	summary := Summary{TotalCases: total}

	if total > 0 {
		summary.SourceHitRate = round4(float64(sourceHits) / float64(total))
		summary.AnswerHitRate = round4(float64(answerHits) / float64(total))
		summary.PassedAllRate = round4(float64(passedAll) / float64(total))
		summary.AvgLatencyMS = math.Round(totalLatency/float64(total)*10) / 10
	}

	return &Report{Summary: summary, Results: results}
}

// any expected token appearing in any citation source counts as a hit
func evaluateSourceHit(citations []retriever.Citation, expected []string) bool {
	if len(expected) == 0 {
		return true
	}

	var sources []string
	for _, citation := range citations {
		sources = append(sources, strings.ToLower(citation.Source))
	}

	haystack := strings.Join(sources, " ")

	for _, token := range expected {
		if strings.Contains(haystack, token) {
			return true
		}
	}

	return false
}

// every expected token must appear in the answer
func evaluateAnswerHit(answer string, expected []string) bool {
	if len(expected) == 0 {
		return true
	}

	haystack := strings.ToLower(answer)

	for _, token := range expected {
		if !strings.Contains(haystack, token) {
			return false
		}
	}

	return true
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// RenderMarkdown formats the report for humans
func RenderMarkdown(report *Report) string {
	var sb strings.Builder

	s := report.Summary

	sb.WriteString("# Evaluation Report\n\n")
	sb.WriteString("## Summary\n")
	sb.WriteString(fmt.Sprintf("- Total cases: %d\n", s.TotalCases))
	sb.WriteString(fmt.Sprintf("- Source hit rate: %.2f%%\n", s.SourceHitRate*100))
	sb.WriteString(fmt.Sprintf("- Answer hit rate: %.2f%%\n", s.AnswerHitRate*100))
	sb.WriteString(fmt.Sprintf("- Passed-all rate: %.2f%%\n", s.PassedAllRate*100))
	sb.WriteString(fmt.Sprintf("- Average latency: %.1f ms\n\n", s.AvgLatencyMS))

	sb.WriteString("## Case Results\n")
	sb.WriteString("| Case | Mode | Retrieved | Latency (ms) | Source Hit | Answer Hit |\n")
	sb.WriteString("| --- | --- | --- | --- | --- | --- |\n")

	if len(report.Results) == 0 {
		sb.WriteString("| - | - | - | - | - | - |\n")
	}

	for _, r := range report.Results {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %.1f | %t | %t |\n",
			r.ID, r.Mode, r.Retrieved, r.LatencyMS, r.SourceHit, r.AnswerHit))
	}

	return sb.String()
}
