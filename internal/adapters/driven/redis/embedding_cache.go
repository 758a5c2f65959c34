package redis

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EmbeddingCache = (*EmbeddingCache)(nil)

const (
	embeddingPrefix = "emb:"

	// DefaultEmbeddingTTL bounds staleness when the embedding model changes
	// out of band
	DefaultEmbeddingTTL = 24 * time.Hour
)

// EmbeddingCache caches embedding vectors in Redis, shared across processes.
// Keys are SHA-256 of the text content prefixed with the model name, so two
// models never serve each other's vectors.
type EmbeddingCache struct {
	client   *redis.Client
	embedder driven.EmbeddingService
	ttl      time.Duration
}

// NewEmbeddingCache creates a Redis-backed embedding cache in front of an
// embedding service
func NewEmbeddingCache(client *redis.Client, embedder driven.EmbeddingService, ttl time.Duration) *EmbeddingCache {
	if ttl <= 0 {
		ttl = DefaultEmbeddingTTL
	}
	return &EmbeddingCache{client: client, embedder: embedder, ttl: ttl}
}

// GetOrCompute returns the cached vector for text, computing and storing it
// on a miss. Blank text short-circuits to a zero vector without touching
// Redis or the backend.
func (c *EmbeddingCache) GetOrCompute(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return make([]float32, c.embedder.Dimensions()), nil
	}

	key := c.key(text)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var vec []float32
		if err := json.Unmarshal(data, &vec); err == nil && len(vec) > 0 {
			return vec, nil
		}
		// Corrupt entry, fall through and recompute
	} else if err != redis.Nil {
		return nil, fmt.Errorf("cache read: %w", err)
	}

	vec, err := c.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(vec)
	if err != nil {
		return nil, fmt.Errorf("encode vector: %w", err)
	}
	if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		return nil, fmt.Errorf("cache write: %w", err)
	}
	return vec, nil
}

// Clear discards all cached vectors for the current model
func (c *EmbeddingCache) Clear(ctx context.Context) error {
	var cursor uint64
	pattern := embeddingPrefix + c.embedder.Model() + ":*"

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache delete: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Len reports the number of cached vectors for the current model
func (c *EmbeddingCache) Len() int {
	var cursor uint64
	pattern := embeddingPrefix + c.embedder.Model() + ":*"
	count := 0

	ctx := context.Background()
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return count
		}
		count += len(keys)
		if next == 0 {
			return count
		}
		cursor = next
	}
}

func (c *EmbeddingCache) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s%s:%x", embeddingPrefix, c.embedder.Model(), sum)
}
