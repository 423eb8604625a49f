package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/studytrack/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// GetByID is not scoped by owner, so callers can tell a missing task from
// one owned by someone else. Every mutation is scoped by owner as well as
// ID and can never touch another user's row.
type TaskStore interface {
	// Create saves a new task and sets task.ID.
	// Returns ErrInvalidEntity if the user or tag does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID regardless of owner, with TagName populated.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update persists Text, Done and UpdatedAt of a task owned by task.UserID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task owned by userID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Delete(ctx context.Context, id, userID int64) error

	// ListByOwner returns one page of userID's tasks matching filter, ordered
	// by creation time then ID, together with the total number of matches.
	// A page past the end yields an empty slice, not an error.
	ListByOwner(
		ctx context.Context,
		userID int64,
		filter domain.TaskFilter,
		page domain.PageRequest,
	) ([]*domain.Task, int, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
