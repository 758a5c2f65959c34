package driven

import (
	"context"
)

// LLMService provides text-generation capabilities for query derivation,
// match explanations and interview questions. Returned text is untrusted
// free-form output; callers must have a fallback for unparseable responses.
type LLMService interface {
	// Complete sends a prompt and returns the model's text response
	Complete(ctx context.Context, prompt string) (string, error)

	// Model returns the model name being used
	Model() string

	// Close releases resources held by the LLM service
	Close() error
}
