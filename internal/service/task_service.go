package service

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

// DeleteResult describes the outcome of DeleteTask. An unconfirmed delete
// returns the task for preview with Deleted set to false.
type DeleteResult struct {
	Task    *domain.Task
	Deleted bool
}

// TaskService manages a user's study tasks. Every operation is scoped to
// the owner passed in; tasks of other users are never returned or changed.
type TaskService interface {
	// AddTask creates a pending task and returns its ID. A nil or sentinel
	// tag ID leaves the task untagged; an unknown tag ID is ErrNotFound.
	AddTask(ctx context.Context, owner int64, text string, tagID *int64) (int64, error)

	// EditTask replaces the text of a task.
	EditTask(ctx context.Context, owner, taskID int64, text string) (*domain.Task, error)

	// MarkDone marks a task as done. Marking a done task again succeeds.
	MarkDone(ctx context.Context, owner, taskID int64) (*domain.Task, error)

	// DeleteTask removes a task when confirmed; otherwise it only returns it.
	DeleteTask(ctx context.Context, owner, taskID int64, confirmed bool) (*DeleteResult, error)

	// CreateRoutine creates one task per item, all or none.
	CreateRoutine(ctx context.Context, owner int64, items []string, tagID *int64) ([]int64, error)

	// GetTask returns one of the owner's tasks.
	GetTask(ctx context.Context, owner, taskID int64) (*domain.Task, error)

	// ListTasks returns one page of the owner's tasks matching filter.
	ListTasks(
		ctx context.Context,
		owner int64,
		filter domain.TaskFilter,
		page, pageSize int,
	) (domain.Page[*domain.Task], error)
}

// listTxOptions gives listings a single read-only snapshot.
var listTxOptions = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// TaskConfig holds the listing settings of the task service.
type TaskConfig struct {
	PageSize    int
	MaxPageSize int
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	tags   store.TagStore
	db     *sql.DB
	cfg    TaskConfig
	logger *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(
	tasks store.TaskStore,
	tags store.TagStore,
	db *sql.DB,
	cfg TaskConfig,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if tags == nil {
		return nil, domain.NewValidationError("tags", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = domain.DefaultPageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = domain.MaxPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		tags:   tags,
		db:     db,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// AddTask implements TaskService.AddTask
func (s *taskServiceImpl) AddTask(
	ctx context.Context,
	owner int64,
	text string,
	tagID *int64,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(owner, text, tagID)
	if err != nil {
		return 0, validationError(err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.requireTag(ctx, s.tags.WithTx(tx), task.TagID); err != nil {
			return err
		}
		return s.tasks.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		return 0, s.wrap(ctx, "add_task", err)
	}

	log.Info("task added",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", owner))
	return task.ID, nil
}

// EditTask implements TaskService.EditTask
func (s *taskServiceImpl) EditTask(
	ctx context.Context,
	owner, taskID int64,
	text string,
) (*domain.Task, error) {
	var edited *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		task, err := s.ownedTask(ctx, tasks, owner, taskID)
		if err != nil {
			return err
		}
		if err := task.SetText(text); err != nil {
			return validationError(err)
		}
		if err := tasks.Update(ctx, task); err != nil {
			return err
		}
		edited = task
		return nil
	})
	if err != nil {
		return nil, s.wrap(ctx, "edit_task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("task edited",
		slog.Int64("task_id", taskID))
	return edited, nil
}

// MarkDone implements TaskService.MarkDone
func (s *taskServiceImpl) MarkDone(ctx context.Context, owner, taskID int64) (*domain.Task, error) {
	var done *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		task, err := s.ownedTask(ctx, tasks, owner, taskID)
		if err != nil {
			return err
		}
		if task.MarkDone() {
			if err := tasks.Update(ctx, task); err != nil {
				return err
			}
		}
		done = task
		return nil
	})
	if err != nil {
		return nil, s.wrap(ctx, "mark_done", err)
	}
	return done, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(
	ctx context.Context,
	owner, taskID int64,
	confirmed bool,
) (*DeleteResult, error) {
	result := &DeleteResult{}
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		task, err := s.ownedTask(ctx, tasks, owner, taskID)
		if err != nil {
			return err
		}
		result.Task = task
		if !confirmed {
			return nil
		}
		if err := tasks.Delete(ctx, taskID, owner); err != nil {
			return err
		}
		result.Deleted = true
		return nil
	})
	if err != nil {
		return nil, s.wrap(ctx, "delete_task", err)
	}

	if result.Deleted {
		logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
			slog.Int64("task_id", taskID),
			slog.Int64("user_id", owner))
	}
	return result, nil
}

// CreateRoutine implements TaskService.CreateRoutine
func (s *taskServiceImpl) CreateRoutine(
	ctx context.Context,
	owner int64,
	items []string,
	tagID *int64,
) ([]int64, error) {
	if len(items) == 0 {
		return nil, validationError(
			domain.NewValidationError("items", "a routine needs at least one item", domain.ErrValidation))
	}

	tasks := make([]*domain.Task, 0, len(items))
	for i, item := range items {
		task, err := domain.NewTask(owner, item, tagID)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, validationError(err))
		}
		tasks = append(tasks, task)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.requireTag(ctx, s.tags.WithTx(tx), tasks[0].TagID); err != nil {
			return err
		}
		txTasks := s.tasks.WithTx(tx)
		for _, task := range tasks {
			if err := txTasks.Create(ctx, task); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.wrap(ctx, "create_routine", err)
	}

	ids := make([]int64, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("routine created",
		slog.Int64("user_id", owner),
		slog.Int("count", len(ids)))
	return ids, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, owner, taskID int64) (*domain.Task, error) {
	task, err := s.ownedTask(ctx, s.tasks, owner, taskID)
	if err != nil {
		return nil, s.wrap(ctx, "get_task", err)
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	owner int64,
	filter domain.TaskFilter,
	page, pageSize int,
) (domain.Page[*domain.Task], error) {
	req := domain.NewPageRequest(page, pageSize, s.cfg.PageSize, s.cfg.MaxPageSize)

	var (
		items []*domain.Task
		total int
	)
	// The count and the page are read from one snapshot so Total agrees
	// with Items under concurrent writes.
	err := store.RunInTransactionWithOptions(ctx, s.db, listTxOptions,
		func(ctx context.Context, tx *sql.Tx) error {
			var err error
			items, total, err = s.tasks.WithTx(tx).ListByOwner(ctx, owner, filter, req)
			return err
		})
	if err != nil {
		return domain.Page[*domain.Task]{}, s.wrap(ctx, "list_tasks", err)
	}

	return domain.NewPage(items, req, total), nil
}

// ownedTask loads a task and checks that owner owns it. Every by-ID read
// and write goes through here: a missing row is ErrNotFound and someone
// else's task is ErrForbidden.
func (s *taskServiceImpl) ownedTask(
	ctx context.Context,
	tasks store.TaskStore,
	owner, taskID int64,
) (*domain.Task, error) {
	task, err := tasks.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, err
	}
	if !task.IsOwnedBy(owner) {
		logger.FromContextOrDefault(ctx, s.logger).Warn("task access denied",
			slog.Int64("task_id", taskID),
			slog.Int64("user_id", owner))
		return nil, fmt.Errorf("%w: task %d", ErrForbidden, taskID)
	}
	return task, nil
}

// requireTag checks that tagID names an existing tag. A nil ID is untagged.
func (s *taskServiceImpl) requireTag(ctx context.Context, tags store.TagStore, tagID *int64) error {
	if tagID == nil {
		return nil
	}
	if _, err := tags.GetByID(ctx, *tagID); err != nil {
		if store.IsNotFoundError(err) {
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return err
	}
	return nil
}

// wrap passes taxonomy errors through and wraps anything unexpected in a
// ServiceError after logging it.
func (s *taskServiceImpl) wrap(ctx context.Context, operation string, err error) error {
	for _, known := range []error{ErrValidation, ErrNotFound, ErrForbidden, ErrConflict} {
		if errors.Is(err, known) {
			return err
		}
	}
	// The row vanished between the ownership check and the write.
	if store.IsNotFoundError(err) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("task operation failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()))
	return NewServiceError("task", operation, "", err)
}
