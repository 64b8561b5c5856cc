package query

import "github.com/ragops/server/internal/retriever"

// request payload for one-shot retrieval queries
type Request struct {
	Question   string `json:"question" binding:"required"`
	Collection string `json:"collection,omitempty"`
	TopK       int    `json:"top_k,omitempty"`
}

type Response struct {
	Answer          string               `json:"answer"`
	Citations       []retriever.Citation `json:"citations"`
	Retrieved       int                  `json:"retrieved"`
	LatencyMS       float64              `json:"latency_ms"`
	Mode            string               `json:"mode"`
	Confidence      float64              `json:"confidence"`
	ConfidenceLabel string               `json:"confidence_label"`
}
