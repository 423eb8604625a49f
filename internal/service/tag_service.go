package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/phrazzld/studytrack/internal/store"
)

// TagService exposes the tag catalog.
type TagService interface {
	// ListTags returns the persisted tags in creation order followed by the
	// "All" sentinel.
	ListTags(ctx context.Context) ([]domain.Tag, error)

	// EnsureSeedTags creates each named tag that does not exist yet and
	// reports how many were created. The sentinel name is skipped.
	EnsureSeedTags(ctx context.Context, names []string) (int, error)

	// ResolveTag turns a filter parameter into a TagFilter. Empty and "All"
	// mean no restriction; otherwise the value is a tag ID or a tag name.
	ResolveTag(ctx context.Context, param string) (domain.TagFilter, error)
}

type tagServiceImpl struct {
	tags   store.TagStore
	db     *sql.DB
	logger *slog.Logger
}

// NewTagService creates a TagService.
func NewTagService(tags store.TagStore, db *sql.DB, logger *slog.Logger) (TagService, error) {
	if tags == nil {
		return nil, domain.NewValidationError("tags", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &tagServiceImpl{
		tags:   tags,
		db:     db,
		logger: logger.With(slog.String("component", "tag_service")),
	}, nil
}

// ListTags implements TagService.ListTags
func (s *tagServiceImpl) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tags",
			slog.String("error", err.Error()))
		return nil, NewServiceError("tag", "list_tags", "", err)
	}
	return append(tags, domain.AllTag()), nil
}

// EnsureSeedTags implements TagService.EnsureSeedTags
func (s *tagServiceImpl) EnsureSeedTags(ctx context.Context, names []string) (int, error) {
	seen := make(map[string]bool, len(names))
	toCreate := make([]string, 0, len(names))
	for _, name := range names {
		if domain.IsAllTagName(strings.TrimSpace(name)) {
			continue
		}
		tag, err := domain.NewTag(name)
		if err != nil {
			return 0, validationError(err)
		}
		if !seen[tag.Name] {
			seen[tag.Name] = true
			toCreate = append(toCreate, tag.Name)
		}
	}
	if len(toCreate) == 0 {
		return 0, nil
	}

	var created int
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		n, err := s.tags.WithTx(tx).EnsureExists(ctx, toCreate)
		created = n
		return err
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to seed tags",
			slog.String("error", err.Error()))
		return 0, NewServiceError("tag", "ensure_seed_tags", "", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("seed tags ensured",
		slog.Int("requested", len(toCreate)),
		slog.Int("created", created))
	return created, nil
}

// ResolveTag implements TagService.ResolveTag
func (s *tagServiceImpl) ResolveTag(ctx context.Context, param string) (domain.TagFilter, error) {
	param = strings.TrimSpace(param)
	if param == "" || domain.IsAllTagName(param) {
		return domain.AnyTag(), nil
	}

	var (
		tag *domain.Tag
		err error
	)
	if id, convErr := strconv.ParseInt(param, 10, 64); convErr == nil {
		switch {
		case id == domain.AllTagID:
			return domain.AnyTag(), nil
		case id < 0:
			return domain.TagFilter{}, validationError(
				domain.NewValidationError("tag", "tag ID cannot be negative", domain.ErrValidation))
		}
		tag, err = s.tags.GetByID(ctx, id)
	} else {
		tag, err = s.tags.GetByName(ctx, param)
	}
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.TagFilter{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return domain.TagFilter{}, NewServiceError("tag", "resolve_tag", "", err)
	}

	return domain.OnlyTag(tag.ID), nil
}
