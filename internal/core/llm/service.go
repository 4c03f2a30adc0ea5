package llm

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Service wraps an LLM provider for dependency injection.
type Service struct {
	provider LLMProvider
}

func NewService(cfg *ProviderConfig) (*Service, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("provider", provider.GetProviderName()).Str("model", cfg.Model).Msg("🤖 LLM provider ready")
	return &Service{provider: provider}, nil
}

func NewServiceWithProvider(provider LLMProvider) *Service {
	return &Service{provider: provider}
}

func (s *Service) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return s.provider.GenerateResponse(ctx, systemPrompt, userMessage)
}

func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
