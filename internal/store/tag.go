package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/studytrack/internal/domain"
)

// TagStore defines the interface for tag persistence.
type TagStore interface {
	// EnsureExists inserts every name that is not already present and
	// returns how many rows were inserted. Existing tags are left untouched.
	EnsureExists(ctx context.Context, names []string) (int, error)

	// List returns all persisted tags in creation order.
	List(ctx context.Context) ([]domain.Tag, error)

	// GetByID returns ErrTagNotFound if the tag does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)

	// GetByName matches the name exactly and returns ErrTagNotFound if absent.
	GetByName(ctx context.Context, name string) (*domain.Tag, error)

	// WithTx returns a new TagStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TagStore
}
