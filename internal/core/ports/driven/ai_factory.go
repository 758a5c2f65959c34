package driven

import "github.com/talentforge-labs/matchcore/internal/core/domain"

// AIServiceFactory creates AI services based on configuration
type AIServiceFactory interface {
	// CreateEmbeddingService creates an embedding service from settings.
	// Returns (nil, nil) when settings are absent or incomplete.
	CreateEmbeddingService(settings *domain.EmbeddingSettings) (EmbeddingService, error)

	// CreateLLMService creates an LLM service from settings.
	// Returns (nil, nil) when settings are absent or incomplete.
	CreateLLMService(settings *domain.LLMSettings) (LLMService, error)
}
