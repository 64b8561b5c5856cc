package llm

import (
	"fmt"
)

// creates an embedder with auto-configuration from environment variables
func NewEmbedder() (Embedder, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load provider config: %w", err)
	}

	return NewEmbedderWithConfig(config)
}

// creates an embedder with explicit configuration
func NewEmbedderWithConfig(config *Config) (Embedder, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	switch config.EmbedderProvider {
	case ProviderOpenAI:
		return NewOpenAIEmbedder(OpenAIConfig{
			APIKey: config.EmbedderAPIKey,
			Model:  config.EmbedderModel,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", config.EmbedderProvider)
	}
}

// creates a text generator with auto-configuration from environment variables.
// returns nil when generation is disabled; callers must treat a nil generator
// as retrieval-only mode.
func NewGenerator() (TextGenerator, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load provider config: %w", err)
	}

	return NewGeneratorWithConfig(config)
}

// creates a text generator with explicit configuration
func NewGeneratorWithConfig(config *Config) (TextGenerator, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if !config.GeneratorEnabled {
		return nil, nil
	}

	switch config.GeneratorProvider {
	case ProviderAnthropic:
		return NewAnthropicGenerator(AnthropicConfig{
			APIKey:      config.GeneratorAPIKey,
			Model:       config.GeneratorModel,
			MaxTokens:   config.GeneratorMaxTokens,
			Temperature: config.GeneratorTemperature,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", config.GeneratorProvider)
	}
}
