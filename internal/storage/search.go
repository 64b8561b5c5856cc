package storage

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
)

// performs cosine similarity search over a collection's chunks.
// results come back ordered by ascending distance, ties broken by chunk id.
func (c *Client) SearchChunks(ctx context.Context, embedding []float32, collection string, topK int) ([]SearchResult, error) {
	rows, err := c.pool.Query(ctx, searchChunksQuery, pgvector.NewVector(embedding), collection, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var results []SearchResult

	for rows.Next() {
		var result SearchResult

		err := rows.Scan(
			&result.ChunkID,
			&result.Content,
			&result.SourceFile,
			&result.LineStart,
			&result.LineEnd,
			&result.ChunkIndex,
			&result.Similarity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}
