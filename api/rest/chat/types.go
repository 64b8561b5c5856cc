package chat

import (
	"encoding/json"
	"time"

	"github.com/ragops/server/internal/chat"
	"github.com/ragops/server/internal/retriever"
)

// request payload for one conversational turn
type Request struct {
	Question       string `json:"question" binding:"required"`
	SessionID      string `json:"session_id,omitempty"`
	Mode           string `json:"mode,omitempty"`
	AnswerStyle    string `json:"answer_style,omitempty"`
	Collection     string `json:"collection,omitempty"`
	TopK           int    `json:"top_k,omitempty"`
	IncludeContext bool   `json:"include_context,omitempty"`
}

type Response struct {
	SessionID       string                `json:"session_id"`
	Answer          string                `json:"answer"`
	Citations       []retriever.Citation  `json:"citations"`
	Retrieved       int                   `json:"retrieved"`
	LatencyMS       float64               `json:"latency_ms"`
	Mode            string                `json:"mode"`
	TurnIndex       int                   `json:"turn_index"`
	AnswerStyle     string                `json:"answer_style"`
	ContextSnippets []chat.ContextSnippet `json:"context_snippets,omitempty"`
}

type MessageResponse struct {
	ID        int64           `json:"id"`
	Role      string          `json:"role"`
	Content   string          `json:"content"`
	Citations json.RawMessage `json:"citations,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type HistoryResponse struct {
	SessionID string            `json:"session_id"`
	Messages  []MessageResponse `json:"messages"`
}
