package config

type Config struct {
	DatabaseURL  string
	OpenAIKey    string
	AnthropicKey string
	Environment  string

	// retrieval tuning
	TopK             int
	ChunkSize        int
	ChunkOverlap     int
	ChatHistoryTurns int

	// generation is optional; retrieval-only mode when disabled
	LLMEnabled bool
}

type IngestFlags struct {
	Path       string
	Collection string
	Clear      bool
	Excludes   []string
}

type EvalFlags struct {
	Dataset    string
	Collection string
	Report     string
	TopK       int
}
