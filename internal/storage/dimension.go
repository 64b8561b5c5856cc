package storage

import (
	"context"
	"fmt"

	"github.com/ragops/server/internal/logger"
)

// reads the declared dimension of the chunks.embedding column.
// for vector columns atttypmod carries the dimension directly.
func (c *Client) EmbeddingDimension(ctx context.Context) (int, error) {
	var typmod int

	err := c.pool.QueryRow(ctx, embeddingDimensionQuery).Scan(&typmod)
	if err != nil {
		return 0, fmt.Errorf("failed to read embedding dimension: %w", err)
	}

	return typmod, nil
}

// checks that the stored column width matches what the embedder produces
func (c *Client) ValidateDimension(ctx context.Context, want int) error {
	got, err := c.EmbeddingDimension(ctx)
	if err != nil {
		return err
	}

	if got != want {
		return fmt.Errorf("embedding dimension mismatch: schema has %d, embedder produces %d", got, want)
	}

	return nil
}

// rebuilds the chunks table with a new embedding width. DESTRUCTIVE:
// all indexed content is dropped and must be re-ingested afterwards.
func (c *Client) MigrateDimension(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid embedding dimension: %d", dimension)
	}

	logger.Warn("migrating embedding dimension, all chunks will be dropped", "dimension", dimension)

	migration := fmt.Sprintf(`
		DROP TABLE IF EXISTS chunks;
		DELETE FROM documents;

		CREATE TABLE chunks (
			id BIGSERIAL PRIMARY KEY,
			document_id BIGINT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			chunk_index INTEGER NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			token_count INTEGER NOT NULL,
			source_file TEXT NOT NULL,
			line_start INTEGER NOT NULL,
			line_end INTEGER NOT NULL
		);

		CREATE INDEX idx_chunks_document_id ON chunks(document_id);
		CREATE INDEX idx_chunks_embedding ON chunks
			USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100);
	`, dimension)

	if _, err := c.pool.Exec(ctx, migration); err != nil {
		return fmt.Errorf("failed to migrate embedding dimension: %w", err)
	}

	return nil
}
