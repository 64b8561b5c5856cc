package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragops/server/internal/chunker"
	"github.com/ragops/server/internal/storage"
)

type fakeEmbedder struct {
	mu        sync.Mutex
	batchSize int
	calls     [][]string
	failFor   string // any text containing this substring fails the batch
}

func (f *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	vecs, err := f.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (f *fakeEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	f.calls = append(f.calls, texts)
	f.mu.Unlock()

	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		if f.failFor != "" && strings.Contains(text, f.failFor) {
			return nil, errors.New("embedding provider error")
		}
		vecs[i] = []float32{float32(len(text)), 0, 0}
	}
	return vecs, nil
}

func (f *fakeEmbedder) Dimension() int { return 3 }

func (f *fakeEmbedder) MaxBatchSize() int {
	if f.batchSize > 0 {
		return f.batchSize
	}
	return 100
}

type fakeStore struct {
	mu        sync.Mutex
	docs      map[string]storage.Document // keyed by sha|collection
	insertErr error                       // every insert fails when set
	rows      []struct {
		doc    storage.Document
		chunks []chunker.Chunk
	}
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]storage.Document)}
}

func (s *fakeStore) DocumentBySHA(ctx context.Context, sha, collection string) (*storage.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[sha+"|"+collection]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (s *fakeStore) InsertDocumentWithChunks(ctx context.Context, doc storage.Document, chunks []chunker.Chunk, embeddings [][]float32) (int64, error) {
	if s.insertErr != nil {
		return 0, s.insertErr
	}

	if len(chunks) != len(embeddings) {
		return 0, errors.New("length mismatch")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc.ID = int64(len(s.docs) + 1)
	s.docs[doc.SHA256+"|"+doc.Collection] = doc
	s.rows = append(s.rows, struct {
		doc    storage.Document
		chunks []chunker.Chunk
	}{doc, chunks})

	return doc.ID, nil
}

func writeTestTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return root
}

func TestIngestDirectoryIndexesSupportedFiles(t *testing.T) {
	root := writeTestTree(t, map[string]string{
		"readme.md":       "# Title\n\nSome documentation content here.",
		"pkg/main.go":     "package main\n\nfunc main() {}\n",
		"image.png":       "binarydata",
		"node_modules/dep/index.js": "module.exports = {}",
	})

	store := newFakeStore()
	pipeline, err := NewPipeline(store, &fakeEmbedder{}, Options{ChunkSize: 512, ChunkOverlap: 64})
	require.NoError(t, err)

	stats, err := pipeline.IngestDirectory(context.Background(), root, "default", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.IndexedDocs)
	assert.Equal(t, 0, stats.SkippedDocs)
	assert.Empty(t, stats.Errors)
	assert.GreaterOrEqual(t, stats.TotalChunks, 2)
}

func TestIngestDirectorySkipsUnchangedDocuments(t *testing.T) {
	root := writeTestTree(t, map[string]string{
		"doc.md": "Stable content that does not change between runs.",
	})

	store := newFakeStore()
	pipeline, err := NewPipeline(store, &fakeEmbedder{}, Options{ChunkSize: 512, ChunkOverlap: 64})
	require.NoError(t, err)

	first, err := pipeline.IngestDirectory(context.Background(), root, "default", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.IndexedDocs)

	second, err := pipeline.IngestDirectory(context.Background(), root, "default", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, second.IndexedDocs)
	assert.Equal(t, 1, second.SkippedDocs)

	// same content in a different collection is a fresh document
	third, err := pipeline.IngestDirectory(context.Background(), root, "other", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, third.IndexedDocs)
}

func TestIngestDirectoryIsolatesFailures(t *testing.T) {
	root := writeTestTree(t, map[string]string{
		"good.md": "Perfectly fine content.",
		"bad.md":  "This one contains POISON and fails embedding.",
	})

	store := newFakeStore()
	embedder := &fakeEmbedder{failFor: "POISON"}
	pipeline, err := NewPipeline(store, embedder, Options{ChunkSize: 512, ChunkOverlap: 64})
	require.NoError(t, err)

	stats, err := pipeline.IngestDirectory(context.Background(), root, "default", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.IndexedDocs)
	require.Len(t, stats.Errors, 1)
	assert.Contains(t, stats.Errors[0], "bad.md")
}

func TestIngestDirectoryAbortsOnStorageFailure(t *testing.T) {
	root := writeTestTree(t, map[string]string{
		"a.md": "First document content.",
		"b.md": "Second document content.",
		"c.md": "Third document content.",
	})

	store := newFakeStore()
	store.insertErr = errors.New("connection reset")

	pipeline, err := NewPipeline(store, &fakeEmbedder{}, Options{
		ChunkSize:    512,
		ChunkOverlap: 64,
		Concurrency:  1,
	})
	require.NoError(t, err)

	stats, err := pipeline.IngestDirectory(context.Background(), root, "default", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	// partial stats come back with the error, and the run stops
	// at the first storage failure instead of draining every file
	require.NotNil(t, stats)
	assert.Equal(t, 0, stats.IndexedDocs)
	assert.Len(t, stats.Errors, 1)
	assert.Empty(t, store.rows)
}

func TestEmbedChunksRespectsBatchLimit(t *testing.T) {
	embedder := &fakeEmbedder{batchSize: 2}
	pipeline, err := NewPipeline(newFakeStore(), embedder, Options{ChunkSize: 512, ChunkOverlap: 64})
	require.NoError(t, err)

	chunks := make([]chunker.Chunk, 5)
	for i := range chunks {
		chunks[i] = chunker.Chunk{Index: i, Content: fmt.Sprintf("chunk %d", i)}
	}

	embeddings, err := pipeline.embedChunks(context.Background(), chunks)
	require.NoError(t, err)
	require.Len(t, embeddings, 5)

	// 5 chunks at batch size 2 means 3 provider calls
	assert.Len(t, embedder.calls, 3)
	for _, call := range embedder.calls {
		assert.LessOrEqual(t, len(call), 2)
	}
}

func TestIngestDirectoryEmptyDir(t *testing.T) {
	root := t.TempDir()

	pipeline, err := NewPipeline(newFakeStore(), &fakeEmbedder{}, Options{ChunkSize: 512, ChunkOverlap: 64})
	require.NoError(t, err)

	stats, err := pipeline.IngestDirectory(context.Background(), root, "default", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.IndexedDocs)
}

func TestComputeSHA256IsStable(t *testing.T) {
	a := ComputeSHA256("hello")
	b := ComputeSHA256("hello")
	c := ComputeSHA256("hello!")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
