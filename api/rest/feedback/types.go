package feedback

import "encoding/json"

// request payload for answer quality feedback
type Request struct {
	Verdict    string          `json:"verdict" binding:"required"`
	Collection string          `json:"collection,omitempty"`
	SessionID  string          `json:"session_id,omitempty"`
	Mode       string          `json:"mode,omitempty"`
	Question   string          `json:"question,omitempty"`
	Answer     string          `json:"answer,omitempty"`
	Comment    string          `json:"comment,omitempty"`
	Citations  json.RawMessage `json:"citations,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
}

type Response struct {
	Status     string `json:"status"`
	FeedbackID int64  `json:"feedback_id"`
	Collection string `json:"collection"`
}
