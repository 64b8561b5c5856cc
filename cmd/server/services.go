package main

import (
	"fmt"

	"github.com/ragops/server/internal/chat"
	"github.com/ragops/server/internal/config"
	"github.com/ragops/server/internal/ingest"
	"github.com/ragops/server/internal/llm"
	"github.com/ragops/server/internal/retriever"
	"github.com/ragops/server/internal/storage"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config, store *storage.Client) (*Services, error) {
	embedder, err := llm.NewEmbedder()
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	// nil when LLM_ENABLED is false, answers degrade to retrieval mode
	generator, err := llm.NewGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	pipeline, err := ingest.NewPipeline(store, embedder, ingest.Options{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ingest pipeline: %w", err)
	}

	return &Services{
		Embedder:  embedder,
		Generator: generator,
		Retriever: retriever.New(store, embedder, generator, cfg.TopK),
		Chat:      chat.NewEngine(store, embedder, generator, cfg.TopK, cfg.ChatHistoryTurns),
		Ingest:    pipeline,
	}, nil
}
