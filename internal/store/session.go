package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studytrack/internal/domain"
)

// SessionStore persists login sessions. Implementations exist for
// PostgreSQL and Redis.
type SessionStore interface {
	// Create saves a new session.
	Create(ctx context.Context, session *domain.Session) error

	// Get returns ErrSessionNotFound if the session does not exist or has
	// already expired.
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes sessions that expired before now and reports
	// how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
