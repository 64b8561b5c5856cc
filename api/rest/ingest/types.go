package ingest

import "github.com/ragops/server/internal/ingest"

// request payload for a synchronous ingestion run.
// only the "local" source is supported, remote sources return 501.
type Request struct {
	Source     string   `json:"source,omitempty"`
	Path       string   `json:"path" binding:"required"`
	Collection string   `json:"collection,omitempty"`
	Excludes   []string `json:"excludes,omitempty"`
}

type Response struct {
	Status       string `json:"status"`
	Collection   string `json:"collection"`
	ingest.Stats        // indexed_docs, skipped_docs, total_chunks, elapsed_ms, errors
}

type PurgeResponse struct {
	Collection string `json:"collection"`
	Deleted    int64  `json:"deleted"`
}
