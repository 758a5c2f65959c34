package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
)

// Ensure Gemini adapters implement their ports
var (
	_ driven.EmbeddingService = (*GeminiEmbedding)(nil)
	_ driven.LLMService       = (*GeminiLLM)(nil)
)

// Model dimensions for Gemini embedding models
var geminiModelDimensions = map[string]int{
	"text-embedding-004":   768,
	"gemini-embedding-001": 3072,
}

// GeminiEmbedding implements EmbeddingService using the Google GenAI SDK
type GeminiEmbedding struct {
	client     *genai.Client
	model      string
	dimensions int
}

// NewGeminiEmbedding creates a new Gemini embedding service
func NewGeminiEmbedding(ctx context.Context, apiKey, model string) (driven.EmbeddingService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	if model == "" {
		model = "text-embedding-004"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	dimensions, ok := geminiModelDimensions[model]
	if !ok {
		dimensions = 768
	}

	return &GeminiEmbedding{
		client:     client,
		model:      model,
		dimensions: dimensions,
	}, nil
}

// Embed generates embeddings for multiple texts
func (e *GeminiEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	embeddings := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("empty embedding at index %d", i)
		}
		embeddings[i] = emb.Values
	}

	return embeddings, nil
}

// EmbedQuery generates an embedding for a single text
func (e *GeminiEmbedding) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return embeddings[0], nil
}

// Dimensions returns the embedding dimension size
func (e *GeminiEmbedding) Dimensions() int {
	return e.dimensions
}

// Model returns the model name being used
func (e *GeminiEmbedding) Model() string {
	return e.model
}

// Close releases resources held by the embedding service
func (e *GeminiEmbedding) Close() error {
	return nil
}

// GeminiLLM implements LLMService using the Google GenAI SDK
type GeminiLLM struct {
	client *genai.Client
	model  string
}

// NewGeminiLLM creates a new Gemini LLM service
func NewGeminiLLM(ctx context.Context, apiKey, model string) (driven.LLMService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiLLM{client: client, model: model}, nil
}

// Complete sends a prompt and returns the model's text response
func (l *GeminiLLM) Complete(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("prompt must not be empty")
	}

	resp, err := l.client.Models.GenerateContent(ctx, l.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return output, nil
}

// Model returns the model name being used
func (l *GeminiLLM) Model() string {
	return l.model
}

// Close releases resources held by the LLM service
func (l *GeminiLLM) Close() error {
	return nil
}
