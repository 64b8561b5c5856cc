package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ragops/server/internal/chunker"
	"github.com/ragops/server/internal/llm"
	"github.com/ragops/server/internal/logger"
	"github.com/ragops/server/internal/storage"
)

// the subset of storage used by the pipeline
type Store interface {
	DocumentBySHA(ctx context.Context, sha256, collection string) (*storage.Document, error)
	InsertDocumentWithChunks(ctx context.Context, doc storage.Document, chunks []chunker.Chunk, embeddings [][]float32) (int64, error)
}

// a storage write failure; unlike per-file read or embedding errors
// it aborts the whole run, the collection itself is unhealthy
type storeError struct {
	err error
}

func (e *storeError) Error() string {
	return e.err.Error()
}

func (e *storeError) Unwrap() error {
	return e.err
}

type Stats struct {
	IndexedDocs int      `json:"indexed_docs"`
	SkippedDocs int      `json:"skipped_docs"`
	TotalChunks int      `json:"total_chunks"`
	ElapsedMS   float64  `json:"elapsed_ms"`
	Errors      []string `json:"errors,omitempty"`
}

type Pipeline struct {
	store       Store
	embedder    llm.Embedder
	chunkOpts   chunker.Options
	retry       llm.RetryPolicy
	concurrency int

	// called once per processed file, nil is fine
	Progress func()
}

type Options struct {
	ChunkSize    int
	ChunkOverlap int
	Concurrency  int
	Excludes     []string
}

func NewPipeline(store Store, embedder llm.Embedder, opts Options) (*Pipeline, error) {
	chunkOpts := chunker.Options{
		ChunkSize:    opts.ChunkSize,
		ChunkOverlap: opts.ChunkOverlap,
	}
	if err := chunkOpts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunk options: %w", err)
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	return &Pipeline{
		store:       store,
		embedder:    embedder,
		chunkOpts:   chunkOpts,
		retry:       llm.DefaultRetryPolicy(),
		concurrency: concurrency,
	}, nil
}

// indexes every eligible file under root into a collection.
// read and embedding failures on one file are recorded in
// Stats.Errors and do not stop the run; a storage write failure
// aborts the run and returns partial stats with the error.
func (p *Pipeline) IngestDirectory(ctx context.Context, root, collection string, excludes []string) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	files, err := NewWalker(excludes).Walk(root)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		logger.Warn("no eligible files found", "root", root)
		stats.ElapsedMS = float64(time.Since(start).Microseconds()) / 1000
		return stats, nil
	}

	logger.Info("starting ingestion", "files", len(files), "collection", collection)

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		sem   = make(chan struct{}, p.concurrency)
		fatal error
	)

	for _, file := range files {
		sem <- struct{}{}

		// workers release the slot after recording their result, so a
		// fatal error set by any finished worker is visible here
		mu.Lock()
		aborted := fatal != nil
		mu.Unlock()

		if aborted {
			<-sem
			break
		}

		wg.Add(1)

		go func(file FileInfo) {
			defer wg.Done()
			defer func() { <-sem }()

			indexed, chunks, err := p.ingestFile(ctx, file, collection)

			mu.Lock()
			defer mu.Unlock()

			var storeErr *storeError

			switch {
			case errors.As(err, &storeErr):
				logger.Error("storage write failed, aborting run", "file", file.RelPath, "error", err)
				stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", file.RelPath, err))

				if fatal == nil {
					fatal = fmt.Errorf("ingestion aborted on %s: %w", file.RelPath, err)
				}
			case err != nil:
				logger.Error("failed to ingest file", "file", file.RelPath, "error", err)
				stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", file.RelPath, err))
			case indexed:
				stats.IndexedDocs++
				stats.TotalChunks += chunks
			default:
				stats.SkippedDocs++
			}

			if p.Progress != nil {
				p.Progress()
			}
		}(file)
	}

	wg.Wait()

	stats.ElapsedMS = float64(time.Since(start).Microseconds()) / 1000

	if fatal != nil {
		return stats, fatal
	}

	logger.Info("ingestion complete",
		"indexed", stats.IndexedDocs,
		"skipped", stats.SkippedDocs,
		"chunks", stats.TotalChunks,
		"errors", len(stats.Errors),
	)

	return stats, nil
}

// reads, chunks, embeds, and stores one file.
// returns indexed=false when the file is empty or unchanged.
func (p *Pipeline) ingestFile(ctx context.Context, file FileInfo, collection string) (indexed bool, chunkCount int, err error) {
	raw, err := os.ReadFile(file.Path)
	if err != nil {
		return false, 0, fmt.Errorf("failed to read file: %w", err)
	}

	text := chunker.Normalize(string(raw))
	if text == "" {
		return false, 0, nil
	}

	sha := ComputeSHA256(text)

	existing, err := p.store.DocumentBySHA(ctx, sha, collection)
	if err != nil {
		return false, 0, &storeError{err: err}
	}

	if existing != nil {
		logger.Debug("skipping unchanged document", "file", file.RelPath, "sha", sha[:12])
		return false, 0, nil
	}

	chunks, err := chunker.Split(text, file.RelPath, p.chunkOpts)
	if err != nil {
		return false, 0, err
	}

	if len(chunks) == 0 {
		return false, 0, nil
	}

	embeddings, err := p.embedChunks(ctx, chunks)
	if err != nil {
		return false, 0, fmt.Errorf("failed to embed chunks: %w", err)
	}

	doc := storage.Document{
		SourceFile: file.RelPath,
		SHA256:     sha,
		Collection: collection,
		Metadata:   documentMetadata(file),
	}

	if _, err := p.store.InsertDocumentWithChunks(ctx, doc, chunks, embeddings); err != nil {
		return false, 0, &storeError{err: err}
	}

	logger.Info("indexed document", "file", file.RelPath, "chunks", len(chunks))

	return true, len(chunks), nil
}

// embeds chunk contents in provider-sized batches, retrying each
// batch once before giving up
func (p *Pipeline) embedChunks(ctx context.Context, chunks []chunker.Chunk) ([][]float32, error) {
	batchSize := p.embedder.MaxBatchSize()
	if batchSize <= 0 {
		batchSize = len(chunks)
	}

	embeddings := make([][]float32, 0, len(chunks))

	for offset := 0; offset < len(chunks); offset += batchSize {
		end := min(offset+batchSize, len(chunks))

		texts := make([]string, 0, end-offset)
		for _, chunk := range chunks[offset:end] {
			texts = append(texts, chunk.Content)
		}

		var batch [][]float32

		err := p.retry.Do(ctx, func(ctx context.Context) error {
			var batchErr error
			batch, batchErr = p.embedder.GenerateEmbeddings(ctx, texts)
			return batchErr
		})
		if err != nil {
			return nil, err
		}

		if len(batch) != len(texts) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(batch), len(texts))
		}

		embeddings = append(embeddings, batch...)
	}

	return embeddings, nil
}

func ComputeSHA256(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func documentMetadata(file FileInfo) json.RawMessage {
	meta, err := json.Marshal(map[string]any{
		"size_bytes": file.Size,
		"language":   strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Path)), "."),
		"source":     "local",
	})
	if err != nil {
		return nil
	}

	return meta
}
