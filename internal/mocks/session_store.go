package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/store"
)

// MockSessionStore is an in-memory store.SessionStore.
type MockSessionStore struct {
	CreateFn func(ctx context.Context, session *domain.Session) error
	GetFn    func(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	DeleteFn func(ctx context.Context, id uuid.UUID) error

	// Now decides expiry on Get. Defaults to time.Now.
	Now func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]domain.Session
}

// NewMockSessionStore creates an empty MockSessionStore.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[uuid.UUID]domain.Session),
		Now:      time.Now,
	}
}

// Create implements store.SessionStore
func (m *MockSessionStore) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, session)
	}
	if err := session.Validate(); err != nil {
		return store.ErrInvalidEntity
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

// Get implements store.SessionStore
func (m *MockSessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || s.IsExpired(m.Now()) {
		return nil, store.ErrSessionNotFound
	}
	return &s, nil
}

// Delete implements store.SessionStore
func (m *MockSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// DeleteExpired implements store.SessionStore
func (m *MockSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, s := range m.sessions {
		if s.IsExpired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// Count returns the number of stored sessions, expired ones included.
func (m *MockSessionStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
