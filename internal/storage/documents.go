package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/ragops/server/internal/chunker"
	"github.com/ragops/server/internal/logger"
)

// looks up a document by content hash within a collection.
// returns nil when no document matches.
func (c *Client) DocumentBySHA(ctx context.Context, sha256, collection string) (*Document, error) {
	var doc Document

	err := c.pool.QueryRow(ctx, documentBySHAQuery, sha256, collection).Scan(
		&doc.ID,
		&doc.SourceFile,
		&doc.SHA256,
		&doc.Collection,
		&doc.Metadata,
		&doc.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up document: %w", err)
	}

	return &doc, nil
}

// inserts a document row and all of its chunks in a single transaction.
// either everything lands or nothing does.
func (c *Client) InsertDocumentWithChunks(ctx context.Context, doc Document, chunks []chunker.Chunk, embeddings [][]float32) (int64, error) {
	if len(chunks) != len(embeddings) {
		return 0, fmt.Errorf("chunks and embeddings length mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	// defer rollback - will be no-op if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	var documentID int64

	err = tx.QueryRow(ctx, insertDocumentQuery, doc.SourceFile, doc.SHA256, doc.Collection, doc.Metadata).Scan(&documentID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}

	batch := &pgx.Batch{}

	for i, chunk := range chunks {
		batch.Queue(insertChunkQuery,
			documentID,
			chunk.Index,
			chunk.Content,
			pgvector.NewVector(embeddings[i]),
			chunk.TokenCount,
			chunk.SourceFile,
			chunk.LineStart,
			chunk.LineEnd,
		)
	}

	br := tx.SendBatch(ctx, batch)

	for i := range len(chunks) {
		_, err := br.Exec()
		if err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return 0, fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return documentID, nil
}

// deletes all documents in a collection, chunks go with them via cascade.
// returns the number of documents removed.
func (c *Client) PurgeCollection(ctx context.Context, collection string) (int64, error) {
	tag, err := c.pool.Exec(ctx, purgeCollectionQuery, collection)
	if err != nil {
		return 0, fmt.Errorf("failed to purge collection: %w", err)
	}

	return tag.RowsAffected(), nil
}

// returns document and chunk counts for a collection
func (c *Client) GetCollectionStats(ctx context.Context, collection string) (*CollectionStats, error) {
	stats := CollectionStats{Collection: collection}

	err := c.pool.QueryRow(ctx, collectionStatsQuery, collection).Scan(&stats.Documents, &stats.Chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection stats: %w", err)
	}

	return &stats, nil
}
