package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
)

// Ensure chain adapters implement their ports
var (
	_ driven.EmbeddingService = (*ChainEmbedding)(nil)
	_ driven.LLMService       = (*ChainLLM)(nil)
)

// ChainEmbedding tries an ordered list of embedding backends, returning the
// first successful result. Backends later in the list only run when every
// earlier one failed for the given call.
//
// Dimensions and Model report the primary backend; a fallback with a
// different dimension makes its vectors incomparable with cached primary
// vectors, so chains should hold same-dimension backends only.
type ChainEmbedding struct {
	backends []driven.EmbeddingService
	logger   *slog.Logger
}

// NewChainEmbedding creates a fallback chain over the given backends
func NewChainEmbedding(logger *slog.Logger, backends ...driven.EmbeddingService) (driven.EmbeddingService, error) {
	if len(backends) == 0 {
		return nil, fmt.Errorf("%w: no embedding backends configured", domain.ErrEmbeddingUnavailable)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChainEmbedding{backends: backends, logger: logger}, nil
}

// Embed generates embeddings via the first backend that succeeds
func (c *ChainEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	var lastErr error
	for _, backend := range c.backends {
		result, err := backend.Embed(ctx, texts)
		if err == nil {
			return result, nil
		}
		lastErr = err
		c.logger.Warn("embedding backend failed, trying next", "model", backend.Model(), "error", err)
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, lastErr)
}

// EmbedQuery generates a single embedding via the first backend that succeeds
func (c *ChainEmbedding) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	for _, backend := range c.backends {
		result, err := backend.EmbedQuery(ctx, text)
		if err == nil {
			return result, nil
		}
		lastErr = err
		c.logger.Warn("embedding backend failed, trying next", "model", backend.Model(), "error", err)
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, lastErr)
}

// Dimensions reports the primary backend's dimension
func (c *ChainEmbedding) Dimensions() int {
	return c.backends[0].Dimensions()
}

// Model reports the primary backend's model
func (c *ChainEmbedding) Model() string {
	return c.backends[0].Model()
}

// Close closes every backend, returning the first error
func (c *ChainEmbedding) Close() error {
	var firstErr error
	for _, backend := range c.backends {
		if err := backend.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ChainLLM tries an ordered list of text-generation backends, returning the
// first successful completion
type ChainLLM struct {
	backends []driven.LLMService
	logger   *slog.Logger
}

// NewChainLLM creates a fallback chain over the given backends
func NewChainLLM(logger *slog.Logger, backends ...driven.LLMService) (driven.LLMService, error) {
	if len(backends) == 0 {
		return nil, fmt.Errorf("%w: no generation backends configured", domain.ErrGenerationUnavailable)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChainLLM{backends: backends, logger: logger}, nil
}

// Complete sends the prompt to the first backend that succeeds
func (c *ChainLLM) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for _, backend := range c.backends {
		result, err := backend.Complete(ctx, prompt)
		if err == nil {
			return result, nil
		}
		lastErr = err
		c.logger.Warn("generation backend failed, trying next", "model", backend.Model(), "error", err)
	}
	return "", fmt.Errorf("%w: %v", domain.ErrGenerationUnavailable, lastErr)
}

// Model reports the primary backend's model
func (c *ChainLLM) Model() string {
	return c.backends[0].Model()
}

// Close closes every backend, returning the first error
func (c *ChainLLM) Close() error {
	var firstErr error
	for _, backend := range c.backends {
		if err := backend.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
