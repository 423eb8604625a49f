package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/store"
)

// MockTagStore is an in-memory store.TagStore.
type MockTagStore struct {
	EnsureExistsFn func(ctx context.Context, names []string) (int, error)
	ListFn         func(ctx context.Context) ([]domain.Tag, error)
	GetByIDFn      func(ctx context.Context, id int64) (*domain.Tag, error)
	GetByNameFn    func(ctx context.Context, name string) (*domain.Tag, error)

	mu   sync.Mutex
	tags []domain.Tag
}

// NewMockTagStore creates a MockTagStore holding the named tags, with IDs
// assigned from 1 in order.
func NewMockTagStore(names ...string) *MockTagStore {
	m := &MockTagStore{}
	_, _ = m.EnsureExists(context.Background(), names)
	return m
}

// EnsureExists implements store.TagStore
func (m *MockTagStore) EnsureExists(ctx context.Context, names []string) (int, error) {
	if m.EnsureExistsFn != nil {
		return m.EnsureExistsFn(ctx, names)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	created := 0
	for _, name := range names {
		if m.indexOf(name) >= 0 {
			continue
		}
		m.tags = append(m.tags, domain.Tag{
			ID:        int64(len(m.tags) + 1),
			Name:      name,
			CreatedAt: time.Now().UTC(),
		})
		created++
	}
	return created, nil
}

// List implements store.TagStore
func (m *MockTagStore) List(ctx context.Context) ([]domain.Tag, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Tag, len(m.tags))
	copy(out, m.tags)
	return out, nil
}

// GetByID implements store.TagStore
func (m *MockTagStore) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tags {
		if t.ID == id {
			tag := t
			return &tag, nil
		}
	}
	return nil, store.ErrTagNotFound
}

// GetByName implements store.TagStore
func (m *MockTagStore) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(name); i >= 0 {
		tag := m.tags[i]
		return &tag, nil
	}
	return nil, store.ErrTagNotFound
}

// WithTx returns the same store; writes are applied immediately.
func (m *MockTagStore) WithTx(tx *sql.Tx) store.TagStore {
	return m
}

func (m *MockTagStore) indexOf(name string) int {
	for i, t := range m.tags {
		if t.Name == name {
			return i
		}
	}
	return -1
}
