package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates AI services based on configuration
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateEmbeddingService creates an embedding service from settings
func (f *Factory) CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return NewGeminiEmbedding(context.Background(), settings.APIKey, settings.Model)
	case domain.AIProviderOpenAI:
		return NewOpenAIEmbedding(settings.APIKey, settings.Model, settings.BaseURL)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}

// CreateLLMService creates an LLM service from settings
func (f *Factory) CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return NewGeminiLLM(context.Background(), settings.APIKey, settings.Model)
	case domain.AIProviderOpenAI:
		return NewOpenAILLM(settings.APIKey, settings.Model, settings.BaseURL)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}

// BuildEmbeddingChain creates a fallback embedding chain from ordered
// settings. Misconfigured entries are skipped; nil is returned when no
// entry produced a backend.
func (f *Factory) BuildEmbeddingChain(settings []domain.EmbeddingSettings, logger *slog.Logger) (driven.EmbeddingService, error) {
	var backends []driven.EmbeddingService
	for i := range settings {
		svc, err := f.CreateEmbeddingService(&settings[i])
		if err != nil {
			return nil, err
		}
		if svc != nil {
			backends = append(backends, svc)
		}
	}

	switch len(backends) {
	case 0:
		return nil, nil
	case 1:
		return backends[0], nil
	default:
		return NewChainEmbedding(logger, backends...)
	}
}

// BuildLLMChain creates a fallback generation chain from ordered settings
func (f *Factory) BuildLLMChain(settings []domain.LLMSettings, logger *slog.Logger) (driven.LLMService, error) {
	var backends []driven.LLMService
	for i := range settings {
		svc, err := f.CreateLLMService(&settings[i])
		if err != nil {
			return nil, err
		}
		if svc != nil {
			backends = append(backends, svc)
		}
	}

	switch len(backends) {
	case 0:
		return nil, nil
	case 1:
		return backends[0], nil
	default:
		return NewChainLLM(logger, backends...)
	}
}
