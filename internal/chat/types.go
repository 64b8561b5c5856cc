package chat

import "github.com/ragops/server/internal/retriever"

const (
	ModeDefault           = "default"
	ModeExplainLikeJunior = "explain_like_junior"
	ModeShowWhereInCode   = "show_where_in_code"
	ModeStepByStep        = "step_by_step"

	StyleConcise  = "concise"
	StyleDetailed = "detailed"
)

type Request struct {
	Question       string
	SessionID      string // empty starts a new session
	Mode           string
	Style          string
	Collection     string
	TopK           int
	IncludeContext bool // return raw context snippets alongside the answer
}

// a trimmed retrieved chunk returned for inspection alongside the answer
type ContextSnippet struct {
	Source     string  `json:"source"`
	LineStart  int     `json:"line_start"`
	LineEnd    int     `json:"line_end"`
	Similarity float64 `json:"similarity"`
	Content    string  `json:"content"`
}

type Result struct {
	SessionID       string               `json:"session_id"`
	Answer          string               `json:"answer"`
	Citations       []retriever.Citation `json:"citations"`
	Retrieved       int                  `json:"retrieved"`
	LatencyMS       float64              `json:"latency_ms"`
	Mode            string               `json:"mode"`
	TurnIndex       int                  `json:"turn_index"`
	AnswerStyle     string               `json:"answer_style"`
	ContextSnippets []ContextSnippet     `json:"context_snippets,omitempty"`
}
