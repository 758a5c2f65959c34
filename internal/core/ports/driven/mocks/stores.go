package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
)

// MockJobStore is an in-memory JobStore for testing
type MockJobStore struct {
	mu   sync.Mutex
	jobs map[string]*domain.Job
	err  error
}

// NewMockJobStore creates a new MockJobStore
func NewMockJobStore() *MockJobStore {
	return &MockJobStore{jobs: make(map[string]*domain.Job)}
}

// FailWith makes every call return err
func (m *MockJobStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockJobStore) List(_ context.Context) ([]*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	out := make([]*domain.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (m *MockJobStore) Get(_ context.Context, id string) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	j, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return j, nil
}

func (m *MockJobStore) Save(_ context.Context, job *domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.jobs[job.ID] = job
	return nil
}

func (m *MockJobStore) SaveQuestions(_ context.Context, jobID string, questions []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	j, ok := m.jobs[jobID]
	if !ok {
		return domain.ErrNotFound
	}
	j.Questions = questions
	return nil
}

// MockResumeStore is an in-memory ResumeStore for testing
type MockResumeStore struct {
	mu      sync.Mutex
	resumes []*domain.Resume
}

// NewMockResumeStore creates a new MockResumeStore
func NewMockResumeStore() *MockResumeStore {
	return &MockResumeStore{}
}

func (m *MockResumeStore) Save(_ context.Context, resume *domain.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumes = append(m.resumes, resume)
	return nil
}

func (m *MockResumeStore) Latest(_ context.Context, userID string) (*domain.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.resumes) - 1; i >= 0; i-- {
		if m.resumes[i].UserID == userID {
			return m.resumes[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// MockApplicationStore is an in-memory ApplicationStore for testing
type MockApplicationStore struct {
	mu   sync.Mutex
	apps []*domain.Application
}

// NewMockApplicationStore creates a new MockApplicationStore
func NewMockApplicationStore() *MockApplicationStore {
	return &MockApplicationStore{}
}

func (m *MockApplicationStore) Save(_ context.Context, app *domain.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apps = append(m.apps, app)
	return nil
}

func (m *MockApplicationStore) ListByUser(_ context.Context, userID string) ([]*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Application
	for i := len(m.apps) - 1; i >= 0; i-- {
		if m.apps[i].UserID == userID {
			out = append(out, m.apps[i])
		}
	}
	return out, nil
}

// MockUserStore is an in-memory UserStore for testing
type MockUserStore struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

// NewMockUserStore creates a new MockUserStore
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*domain.User)}
}

func (m *MockUserStore) Save(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserStore) Get(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *MockUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// MockSessionStore is an in-memory SessionStore for testing
type MockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

// NewMockSessionStore creates a new MockSessionStore
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]*domain.Session)}
}

func (m *MockSessionStore) Save(_ context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *MockSessionStore) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Token == token {
			return s, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
