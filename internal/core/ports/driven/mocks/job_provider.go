package mocks

import (
	"context"
	"sync"

	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
)

// MockJobProvider is a canned-response JobProvider for testing
type MockJobProvider struct {
	mu        sync.Mutex
	items     []driven.RawJobItem
	err       error
	queries   []string
	locations []string
}

// NewMockJobProvider creates a new MockJobProvider
func NewMockJobProvider(items ...driven.RawJobItem) *MockJobProvider {
	return &MockJobProvider{items: items}
}

// FailWith makes Search return err
func (m *MockJobProvider) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Queries returns the search queries received so far
func (m *MockJobProvider) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// Locations returns the search locations received so far
func (m *MockJobProvider) Locations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.locations...)
}

func (m *MockJobProvider) Search(_ context.Context, query, location string, limit int) ([]driven.RawJobItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	m.locations = append(m.locations, location)

	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && limit < len(m.items) {
		return m.items[:limit], nil
	}
	return m.items, nil
}
