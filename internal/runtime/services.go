// Package runtime holds the process-wide registry of dynamically
// configurable AI capabilities. The embedding backend, its cache and the
// LLM backend can be swapped while requests are in flight.
package runtime

import (
	"context"
	"sync"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
)

// Services holds references to dynamically configurable AI services.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	config *domain.RuntimeConfig

	embeddingService driven.EmbeddingService
	embeddingCache   driven.EmbeddingCache
	llmService       driven.LLMService
}

// NewServices creates a new Services registry
func NewServices(config *domain.RuntimeConfig) *Services {
	return &Services{config: config}
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// EmbeddingService returns the current embedding service (may be nil)
func (s *Services) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService
}

// EmbeddingCache returns the cache in front of the current embedding
// service (may be nil when no embedder is configured)
func (s *Services) EmbeddingCache() driven.EmbeddingCache {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingCache
}

// LLMService returns the current LLM service (may be nil)
func (s *Services) LLMService() driven.LLMService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.llmService
}

// SetEmbedding swaps the embedding backend and its cache together. The
// outgoing cache is cleared: vectors from two backends must never mix in
// one similarity computation.
func (s *Services) SetEmbedding(svc driven.EmbeddingService, cache driven.EmbeddingCache) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingCache != nil {
		_ = s.embeddingCache.Clear(context.Background())
	}
	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
	}

	s.embeddingService = svc
	s.embeddingCache = cache
	s.config.SetEmbeddingAvailable(svc != nil)
}

// SetLLM swaps the text-generation backend
func (s *Services) SetLLM(svc driven.LLMService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.llmService != nil {
		_ = s.llmService.Close()
	}

	s.llmService = svc
	s.config.SetLLMAvailable(svc != nil)
}
