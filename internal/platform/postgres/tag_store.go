package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/phrazzld/studytrack/internal/store"
)

// PostgresTagStore implements the store.TagStore interface using PostgreSQL.
type PostgresTagStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTagStore creates a new PostgresTagStore.
// If logger is nil, a default logger will be used.
func NewPostgresTagStore(db store.DBTX, logger *slog.Logger) *PostgresTagStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTagStore{
		db:     db,
		logger: logger.With(slog.String("component", "tag_store")),
	}
}

// Ensure PostgresTagStore implements store.TagStore interface
var _ store.TagStore = (*PostgresTagStore)(nil)

// WithTx implements store.TagStore.WithTx
func (s *PostgresTagStore) WithTx(tx *sql.Tx) store.TagStore {
	return &PostgresTagStore{
		db:     tx,
		logger: s.logger,
	}
}

// EnsureExists implements store.TagStore.EnsureExists
func (s *PostgresTagStore) EnsureExists(ctx context.Context, names []string) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`

	inserted := 0
	for _, name := range names {
		result, err := s.db.ExecContext(ctx, query, name)
		if err != nil {
			log.Error("failed to insert tag",
				slog.String("tag", name),
				slog.String("error", err.Error()))
			return inserted, fmt.Errorf("failed to insert tag %q: %w", name, MapError(err))
		}
		n, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("failed to get rows affected: %w", err)
		}
		inserted += int(n)
	}

	if inserted > 0 {
		log.Info("tags created", slog.Int("count", inserted))
	}
	return inserted, nil
}

// List implements store.TagStore.List
func (s *PostgresTagStore) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM tags ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tags",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tags: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tags := []domain.Tag{}
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", MapError(err))
	}

	return tags, nil
}

// GetByID implements store.TagStore.GetByID
func (s *PostgresTagStore) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.getOne(ctx, `SELECT id, name, created_at FROM tags WHERE id = $1`, id)
}

// GetByName implements store.TagStore.GetByName
func (s *PostgresTagStore) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	return s.getOne(ctx, `SELECT id, name, created_at FROM tags WHERE name = $1`, name)
}

func (s *PostgresTagStore) getOne(ctx context.Context, query string, arg any) (*domain.Tag, error) {
	var tag domain.Tag
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTagNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get tag",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get tag: %w", MapError(err))
	}
	return &tag, nil
}
