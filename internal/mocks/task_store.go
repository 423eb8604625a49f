package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/store"
)

// MockTaskStore is an in-memory store.TaskStore. Mutations are scoped by
// owner and listings are ordered by creation time then ID.
type MockTaskStore struct {
	CreateFn      func(ctx context.Context, task *domain.Task) error
	GetByIDFn     func(ctx context.Context, id int64) (*domain.Task, error)
	UpdateFn      func(ctx context.Context, task *domain.Task) error
	DeleteFn      func(ctx context.Context, id, userID int64) error
	ListByOwnerFn func(
		ctx context.Context,
		userID int64,
		filter domain.TaskFilter,
		page domain.PageRequest,
	) ([]*domain.Task, int, error)

	// TagNames fills in TagName on reads, keyed by tag ID.
	TagNames map[int64]string

	mu     sync.Mutex
	tasks  map[int64]*domain.Task
	nextID int64

	UpdateCalls int
}

// NewMockTaskStore creates an empty MockTaskStore.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks:    make(map[int64]*domain.Task),
		TagNames: make(map[int64]string),
	}
}

// Create implements store.TaskStore
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	task.ID = m.nextID
	m.tasks[task.ID] = m.copyTask(task)
	return nil
}

// GetByID implements store.TaskStore
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return m.copyTask(t), nil
}

// Update implements store.TaskStore
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	m.UpdateCalls++
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return store.ErrTaskNotFound
	}
	existing.Text = task.Text
	existing.Done = task.Done
	existing.UpdatedAt = task.UpdatedAt
	return nil
}

// Delete implements store.TaskStore
func (m *MockTaskStore) Delete(ctx context.Context, id, userID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[id]
	if !ok || existing.UserID != userID {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// ListByOwner implements store.TaskStore
func (m *MockTaskStore) ListByOwner(
	ctx context.Context,
	userID int64,
	filter domain.TaskFilter,
	page domain.PageRequest,
) ([]*domain.Task, int, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, userID, filter, page)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*domain.Task
	for _, t := range m.tasks {
		if t.UserID != userID || t.Done != filter.Done {
			continue
		}
		if !filter.Tag.IsAll() && (t.TagID == nil || *t.TagID != filter.Tag.TagID) {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	start := page.Offset()
	if start >= total {
		return []*domain.Task{}, total, nil
	}
	end := min(start+page.Limit(), total)

	out := make([]*domain.Task, 0, end-start)
	for _, t := range matched[start:end] {
		out = append(out, m.copyTask(t))
	}
	return out, total, nil
}

// WithTx returns the same store; writes are applied immediately.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// Count returns the number of stored tasks.
func (m *MockTaskStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *MockTaskStore) copyTask(t *domain.Task) *domain.Task {
	cp := *t
	if t.TagID != nil {
		id := *t.TagID
		cp.TagID = &id
		cp.TagName = m.TagNames[id]
	}
	return &cp
}
