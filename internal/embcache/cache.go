// Package embcache memoizes embedding vectors in a bounded in-process LRU.
// Embedding calls are slow and priced per token; the same resume and catalog
// texts recur across requests, so caching by exact content pays for itself
// immediately.
package embcache

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EmbeddingCache = (*Cache)(nil)

// DefaultCapacity bounds the cache when no capacity is given
const DefaultCapacity = 1024

// Cache is an LRU embedding cache in front of an EmbeddingService. Keys are
// the exact text content. Safe for concurrent use; concurrent misses on the
// same key may each call the embedder, later writes overwrite with an
// identical vector so per-key coordination is unnecessary.
type Cache struct {
	embedder driven.EmbeddingService
	lru      *lru.Cache[string, []float32]
}

// New creates a Cache with the given capacity (DefaultCapacity when <= 0)
func New(embedder driven.EmbeddingService, capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	inner, err := lru.New[string, []float32](capacity)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}

	return &Cache{embedder: embedder, lru: inner}, nil
}

// GetOrCompute returns the cached vector for text, computing it on a miss.
// Blank text returns a zero vector of the embedder's dimension without
// invoking the backend.
func (c *Cache) GetOrCompute(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return make([]float32, c.embedder.Dimensions()), nil
	}

	if vec, ok := c.lru.Get(text); ok {
		return vec, nil
	}

	vec, err := c.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	c.lru.Add(text, vec)
	return vec, nil
}

// Clear discards all entries
func (c *Cache) Clear(_ context.Context) error {
	c.lru.Purge()
	return nil
}

// Len reports the number of cached entries
func (c *Cache) Len() int {
	return c.lru.Len()
}
