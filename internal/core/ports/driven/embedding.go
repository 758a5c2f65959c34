package driven

import (
	"context"
)

// EmbeddingService generates text embeddings
type EmbeddingService interface {
	// Embed generates embeddings for multiple texts, one vector per input,
	// in input order
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a single text
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding dimension size
	Dimensions() int

	// Model returns the model name being used
	Model() string

	// Close releases resources held by the embedding service
	Close() error
}

// EmbeddingCache memoizes embedding vectors keyed by exact text content.
// Implementations are safe for concurrent use; same input always yields the
// same cached vector.
type EmbeddingCache interface {
	// GetOrCompute returns the cached vector for text, computing and
	// storing it on a miss. Blank text short-circuits to a zero vector of
	// the embedder's dimension without touching the backend.
	GetOrCompute(ctx context.Context, text string) ([]float32, error)

	// Clear discards all entries, e.g. on embedder configuration change
	Clear(ctx context.Context) error

	// Len reports the number of cached entries
	Len() int
}
