package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ragops/server/internal/config"
	"github.com/ragops/server/internal/logger"
	"github.com/ragops/server/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ingester <command> [options]")
		fmt.Println("Commands:")
		fmt.Println("  ingest             - index a local directory into a collection")
		fmt.Println("  purge              - delete all documents in a collection")
		fmt.Println("  migrate-dimension  - rebuild the chunks table for a new embedding width")
		fmt.Println("\nOptions:")
		fmt.Println("  -path <dir>          directory to ingest (default \".\")")
		fmt.Println("  -collection <name>   target collection (default \"default\")")
		fmt.Println("  -clear               purge the collection before ingesting")
		fmt.Println("  -exclude <globs>     comma-separated glob patterns to skip")
		fmt.Println("  -dimension <n>       new embedding dimension (migrate-dimension)")
		os.Exit(1)
	}

	command := os.Args[1]

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	ctx := context.Background()

	store, err := storage.NewClient(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	defer store.Close()

	logger.Info("connected to database")

	switch command {
	case "ingest":
		flags := config.ParseIngestFlags()
		if err := runIngest(ctx, cfg, store, flags); err != nil {
			logger.Fatal("failed to ingest", "error", err)
		}

	case "purge":
		flags := config.ParsePurgeFlags()

		deleted, err := store.PurgeCollection(ctx, flags.Collection)
		if err != nil {
			logger.Fatal("failed to purge collection", "error", err)
		}

		logger.Info("collection purged", "collection", flags.Collection, "documents", deleted)

	case "migrate-dimension":
		dimension := config.ParseMigrateFlags()
		if dimension <= 0 {
			logger.Fatal("migrate-dimension requires -dimension <n>")
		}

		if err := store.MigrateDimension(ctx, dimension); err != nil {
			logger.Fatal("failed to migrate dimension", "error", err)
		}

		logger.Info("dimension migrated, re-ingest all collections", "dimension", dimension)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}
