package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/phrazzld/studytrack/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore implements store.SessionStore with one hash per session.
// Each key expires with its session, so expired sessions disappear without
// a sweep.
type SessionStore struct {
	client goredis.Cmdable
	logger *slog.Logger
	now    func() time.Time
}

// Ensure SessionStore implements store.SessionStore interface
var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore on top of client.
// If logger is nil, a default logger will be used.
func NewSessionStore(client goredis.Cmdable, logger *slog.Logger) *SessionStore {
	if client == nil {
		panic("client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		client: client,
		logger: logger.With(slog.String("component", "redis_session_store")),
		now:    time.Now,
	}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

// Create implements store.SessionStore.Create
func (s *SessionStore) Create(ctx context.Context, session *domain.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	key := sessionKey(session.ID)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, key, encodeSession(session))
		pipe.ExpireAt(ctx, key, session.ExpiresAt)
		return nil
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create session",
			slog.Int64("user_id", session.UserID),
			slog.String("error", err.Error()))
		return fmt.Errorf("redis session create failed: %w", err)
	}
	return nil
}

// Get implements store.SessionStore.Get
func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}
	if len(fields) == 0 {
		return nil, store.ErrSessionNotFound
	}

	session, err := decodeSession(id, fields)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("discarding malformed session",
			slog.String("error", err.Error()))
		return nil, store.ErrSessionNotFound
	}
	if session.IsExpired(s.now()) {
		return nil, store.ErrSessionNotFound
	}
	return session, nil
}

// Delete implements store.SessionStore.Delete
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// DeleteExpired implements store.SessionStore.DeleteExpired. Keys carry
// their own TTL, so there is never anything to remove.
func (s *SessionStore) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func encodeSession(session *domain.Session) map[string]any {
	return map[string]any{
		"user_id":    strconv.FormatInt(session.UserID, 10),
		"created_at": session.CreatedAt.UTC().Format(time.RFC3339Nano),
		"expires_at": session.ExpiresAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeSession(id uuid.UUID, fields map[string]string) (*domain.Session, error) {
	userID, err := strconv.ParseInt(fields["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, fields["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("invalid expires_at: %w", err)
	}

	session := &domain.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}
	return session, nil
}
