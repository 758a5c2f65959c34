package mocks

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
)

// MockEmbeddingService is a mock implementation of EmbeddingService for
// testing. Vectors are deterministic per input text; tests needing exact
// similarities can pin vectors with SetVector.
type MockEmbeddingService struct {
	mu         sync.Mutex
	dimensions int
	model      string
	vectors    map[string][]float32
	calls      int
	failAll    bool
}

// NewMockEmbeddingService creates a new MockEmbeddingService
func NewMockEmbeddingService() *MockEmbeddingService {
	return &MockEmbeddingService{
		dimensions: 8,
		model:      "mock-embedding-model",
		vectors:    make(map[string][]float32),
	}
}

// SetVector pins the vector returned for a given text
func (m *MockEmbeddingService) SetVector(text string, vec []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors[text] = vec
	if len(vec) > 0 {
		m.dimensions = len(vec)
	}
}

// SetDimensions overrides the reported dimension
func (m *MockEmbeddingService) SetDimensions(d int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimensions = d
}

// FailAll makes every embedding call return ErrEmbeddingUnavailable
func (m *MockEmbeddingService) FailAll(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAll = fail
}

// Calls reports how many embedding requests reached the backend
func (m *MockEmbeddingService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockEmbeddingService) Embed(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, domain.ErrEmbeddingUnavailable
	}

	result := make([][]float32, len(texts))
	for i, text := range texts {
		m.calls++
		result[i] = m.vectorFor(text)
	}
	return result, nil
}

func (m *MockEmbeddingService) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, domain.ErrEmbeddingUnavailable
	}
	m.calls++
	return m.vectorFor(text), nil
}

func (m *MockEmbeddingService) Dimensions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dimensions
}

func (m *MockEmbeddingService) Model() string { return m.model }

func (m *MockEmbeddingService) Close() error { return nil }

// vectorFor returns the pinned vector or a deterministic hash-derived one
func (m *MockEmbeddingService) vectorFor(text string) []float32 {
	if vec, ok := m.vectors[text]; ok {
		return vec
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()

	vec := make([]float32, m.dimensions)
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float32(seed%1000)/1000.0 + 0.001
	}
	return vec
}

// MockLLMService is a mock implementation of LLMService for testing.
// Responses are served in order; when exhausted the last response repeats.
type MockLLMService struct {
	mu        sync.Mutex
	model     string
	responses []string
	next      int
	calls     int
	prompts   []string
	failAll   bool
}

// NewMockLLMService creates a new MockLLMService
func NewMockLLMService(responses ...string) *MockLLMService {
	return &MockLLMService{
		model:     "mock-llm-model",
		responses: responses,
	}
}

// FailAll makes every completion call return ErrGenerationUnavailable
func (m *MockLLMService) FailAll(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAll = fail
}

// Calls reports the number of completion requests
func (m *MockLLMService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Prompts returns the prompts received so far
func (m *MockLLMService) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

func (m *MockLLMService) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.prompts = append(m.prompts, prompt)

	if m.failAll {
		return "", domain.ErrGenerationUnavailable
	}
	if len(m.responses) == 0 {
		return "", domain.ErrGenerationUnavailable
	}

	resp := m.responses[m.next]
	if m.next < len(m.responses)-1 {
		m.next++
	}
	return resp, nil
}

func (m *MockLLMService) Model() string { return m.model }

func (m *MockLLMService) Close() error { return nil }
