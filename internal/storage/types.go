package storage

import (
	"encoding/json"
	"time"
)

type Document struct {
	ID         int64
	SourceFile string
	SHA256     string
	Collection string
	Metadata   json.RawMessage
	CreatedAt  time.Time
}

// a chunk as returned by similarity search
type SearchResult struct {
	ChunkID    int64
	Content    string
	SourceFile string
	LineStart  int
	LineEnd    int
	ChunkIndex int
	Similarity float64
}

type Session struct {
	ID         string
	Collection string
	Mode       string
	Style      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Message struct {
	ID        int64
	SessionID string
	Role      string
	Content   string
	Citations json.RawMessage
	CreatedAt time.Time
}

type FeedbackEntry struct {
	SessionID  string
	Question   string
	Answer     string
	Verdict    string
	Comment    string
	Collection string
	Mode       string
	Citations  json.RawMessage
	Metadata   json.RawMessage
}

type FeedbackSummary struct {
	Total        int     `json:"total"`
	Positive     int     `json:"positive"`
	Negative     int     `json:"negative"`
	PositiveRate float64 `json:"positive_rate"`
}

type CollectionStats struct {
	Collection string `json:"collection"`
	Documents  int    `json:"documents"`
	Chunks     int    `json:"chunks"`
}
