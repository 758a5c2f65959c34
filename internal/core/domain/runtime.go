package domain

import "sync"

// RuntimeConfig tracks which backing services are available at runtime.
// Static backends are set at startup; AI capability flags update when the
// provider chain changes. Thread-safe for concurrent access.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	SessionBackend string // "redis" or "postgres"
	CacheBackend   string // "redis" or "memory"

	// Dynamic capability flags
	embeddingAvailable bool
	llmAvailable       bool
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(sessionBackend, cacheBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		SessionBackend: sessionBackend,
		CacheBackend:   cacheBackend,
	}
}

// EmbeddingAvailable returns whether an embedding backend is available
func (c *RuntimeConfig) EmbeddingAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable
}

// LLMAvailable returns whether a text-generation backend is available
func (c *RuntimeConfig) LLMAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.llmAvailable
}

// SetEmbeddingAvailable updates the embedding availability flag
func (c *RuntimeConfig) SetEmbeddingAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddingAvailable = available
}

// SetLLMAvailable updates the LLM availability flag
func (c *RuntimeConfig) SetLLMAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.llmAvailable = available
}

// CanMatch returns true if semantic matching is possible at all
func (c *RuntimeConfig) CanMatch() bool {
	return c.EmbeddingAvailable()
}

// CanRerank returns true if LLM-assisted reranking is possible
func (c *RuntimeConfig) CanRerank() bool {
	return c.LLMAvailable()
}
