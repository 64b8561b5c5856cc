package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultTopK             = 5
	defaultChunkSize        = 512
	defaultChunkOverlap     = 64
	defaultChatHistoryTurns = 6
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have a .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	openaiKey := os.Getenv("OPENAI_API_KEY")
	if openaiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	llmEnabled := envBool("LLM_ENABLED", false)

	// the generator key is only required when generation is enabled
	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	if llmEnabled && anthropicKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required when LLM_ENABLED=true")
	}

	return &Config{
		DatabaseURL:      databaseURL,
		OpenAIKey:        openaiKey,
		AnthropicKey:     anthropicKey,
		Environment:      environment,
		TopK:             envInt("TOP_K", defaultTopK),
		ChunkSize:        envInt("CHUNK_SIZE", defaultChunkSize),
		ChunkOverlap:     envInt("CHUNK_OVERLAP", defaultChunkOverlap),
		ChatHistoryTurns: envInt("CHAT_HISTORY_TURNS", defaultChatHistoryTurns),
		LLMEnabled:       llmEnabled,
	}, nil
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return val
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return val
}
