package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ragops/server/internal/config"
	"github.com/ragops/server/internal/eval"
	"github.com/ragops/server/internal/llm"
	"github.com/ragops/server/internal/logger"
	"github.com/ragops/server/internal/retriever"
	"github.com/ragops/server/internal/storage"
)

func main() {
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	flags := config.ParseEvalFlags()

	cases, err := eval.LoadCases(flags.Dataset, flags.Collection)
	if err != nil {
		logger.Fatal("failed to load eval dataset", "error", err)
	}

	if len(cases) == 0 {
		logger.Fatal("eval dataset is empty", "dataset", flags.Dataset)
	}

	ctx := context.Background()

	store, err := storage.NewClient(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	defer store.Close()

	embedder, err := llm.NewEmbedder()
	if err != nil {
		logger.Fatal("failed to create embedder", "error", err)
	}

	generator, err := llm.NewGenerator()
	if err != nil {
		logger.Fatal("failed to create generator", "error", err)
	}

	runner := retriever.New(store, embedder, generator, flags.TopK)

	logger.Info("running evaluation", "cases", len(cases), "dataset", flags.Dataset)

	report := eval.Run(ctx, runner, cases, flags.TopK)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Fatal("failed to marshal report", "error", err)
	}

	fmt.Println(string(out))

	if flags.Report != "" {
		if err := os.WriteFile(flags.Report, []byte(eval.RenderMarkdown(report)), 0o644); err != nil {
			logger.Fatal("failed to write markdown report", "error", err)
		}

		logger.Info("markdown report written", "path", flags.Report)
	}
}
