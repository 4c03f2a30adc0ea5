package llm

import (
	"context"
	"fmt"
)

// LLMProvider is a chat model that can answer with JSON.
type LLMProvider interface {
	GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error)
	GetProviderName() string
}

type ProviderType string

const (
	ProviderOpenAI   ProviderType = "openai"
	ProviderGroq     ProviderType = "groq"
	ProviderDeepSeek ProviderType = "deepseek"
)

type ProviderConfig struct {
	Type   ProviderType
	APIKey string

	Model       string
	Temperature float32
	MaxTokens   int
}

// NewProvider builds a provider for one of the OpenAI-compatible APIs.
func NewProvider(cfg *ProviderConfig) (LLMProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required for LLM provider %q", cfg.Type)
	}

	switch cfg.Type {
	case ProviderOpenAI, "":
		return NewOpenAIProvider(cfg.APIKey, "", "OpenAI", withDefault(cfg.Model, "gpt-4o-mini"), cfg.Temperature, cfg.MaxTokens), nil
	case ProviderGroq:
		return NewOpenAIProvider(cfg.APIKey, "https://api.groq.com/openai/v1", "Groq", withDefault(cfg.Model, "llama-3.1-8b-instant"), cfg.Temperature, cfg.MaxTokens), nil
	case ProviderDeepSeek:
		return NewOpenAIProvider(cfg.APIKey, "https://api.deepseek.com", "DeepSeek", withDefault(cfg.Model, "deepseek-chat"), cfg.Temperature, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
}

func withDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
