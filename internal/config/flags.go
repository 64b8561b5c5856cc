package config

import (
	"flag"
	"os"
	"strings"
)

// parses CLI flags for the ingest subcommand
func ParseIngestFlags() IngestFlags {
	args := os.Args[2:]

	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	path := fs.String("path", ".", "path to the directory to ingest")
	collection := fs.String("collection", "default", "target collection name")
	clearFlag := fs.Bool("clear", false, "purge the collection before ingesting")
	exclude := fs.String("exclude", "", "comma-separated glob patterns to skip")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	var excludes []string
	for _, pattern := range strings.Split(*exclude, ",") {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			excludes = append(excludes, pattern)
		}
	}

	return IngestFlags{Path: *path, Collection: *collection, Clear: *clearFlag, Excludes: excludes}
}

// parses CLI flags for the purge subcommand
func ParsePurgeFlags() IngestFlags {
	args := os.Args[2:]

	fs := flag.NewFlagSet("purge", flag.ExitOnError)
	collection := fs.String("collection", "default", "collection to purge")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return IngestFlags{Collection: *collection, Clear: true}
}

// parses CLI flags for the migrate-dimension subcommand
func ParseMigrateFlags() int {
	args := os.Args[2:]

	fs := flag.NewFlagSet("migrate-dimension", flag.ExitOnError)
	dimension := fs.Int("dimension", 0, "new embedding dimension (drops all chunks)")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return *dimension
}

// parses CLI flags for the eval command
func ParseEvalFlags() EvalFlags {
	args := os.Args[1:]

	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	dataset := fs.String("dataset", "eval/cases.yaml", "path to the eval dataset (JSON or YAML)")
	collection := fs.String("collection", "default", "default collection for cases without one")
	report := fs.String("report", "", "optional path to write a markdown report")
	topK := fs.Int("top-k", defaultTopK, "number of chunks to retrieve per case")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return EvalFlags{Dataset: *dataset, Collection: *collection, Report: *report, TopK: *topK}
}
