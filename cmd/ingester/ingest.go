package main

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"

	"github.com/ragops/server/internal/config"
	"github.com/ragops/server/internal/ingest"
	"github.com/ragops/server/internal/llm"
	"github.com/ragops/server/internal/logger"
	"github.com/ragops/server/internal/storage"
)

// indexes a local directory with a terminal progress bar
func runIngest(ctx context.Context, cfg *config.Config, store *storage.Client, flags config.IngestFlags) error {
	embedder, err := llm.NewEmbedder()
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	if err := store.InitSchema(ctx, embedder.Dimension()); err != nil {
		return err
	}

	if err := store.ValidateDimension(ctx, embedder.Dimension()); err != nil {
		return err
	}

	if flags.Clear {
		deleted, err := store.PurgeCollection(ctx, flags.Collection)
		if err != nil {
			return err
		}

		logger.Info("cleared collection before ingest", "collection", flags.Collection, "documents", deleted)
	}

	pipeline, err := ingest.NewPipeline(store, embedder, ingest.Options{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	})
	if err != nil {
		return err
	}

	files, err := ingest.NewWalker(flags.Excludes).Walk(flags.Path)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("indexing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	pipeline.Progress = func() {
		bar.Add(1) //nolint:errcheck,gosec // progress display only
	}

	stats, err := pipeline.IngestDirectory(ctx, flags.Path, flags.Collection, flags.Excludes)
	if stats != nil {
		fmt.Printf("Indexed %d documents (%d chunks), skipped %d, %d errors in %.0fms\n",
			stats.IndexedDocs, stats.TotalChunks, stats.SkippedDocs, len(stats.Errors), stats.ElapsedMS)

		for _, e := range stats.Errors {
			fmt.Printf("  error: %s\n", e)
		}
	}

	return err
}
