package storage

import (
	"strings"
	"testing"
)

func TestSchemaSQLEmbedsDimension(t *testing.T) {
	sql := schemaSQL(1536)

	if !strings.Contains(sql, "vector(1536)") {
		t.Error("expected schema to declare vector(1536)")
	}
	if !strings.Contains(sql, "UNIQUE (sha256, collection)") {
		t.Error("expected dedup constraint on (sha256, collection)")
	}
	if !strings.Contains(sql, "ON DELETE CASCADE") {
		t.Error("expected cascading delete from documents to chunks")
	}
	if !strings.Contains(sql, "role IN ('user', 'assistant', 'system')") {
		t.Error("expected role check constraint on chat_messages")
	}
	if !strings.Contains(sql, "verdict IN ('positive', 'negative')") {
		t.Error("expected verdict check constraint on answer_feedback")
	}
}

func TestSearchQueryOrdering(t *testing.T) {
	// ties on distance must resolve deterministically by chunk id
	if !strings.Contains(searchChunksQuery, "ORDER BY c.embedding <=> $1, c.id ASC") {
		t.Error("expected distance ordering with id tie-break")
	}
}
