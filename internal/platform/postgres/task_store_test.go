package postgres_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/postgres"
	"github.com/phrazzld/studytrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskRowColumns = []string{
	"id", "user_id", "tag_id", "tag_name", "text", "done", "created_at", "updated_at",
}

func TestPostgresTaskStore_Create(t *testing.T) {
	db, mock := newMockDB(t)
	tagID := int64(2)
	task, err := domain.NewTask(5, "Read chapter 3", &tagID)
	require.NoError(t, err)

	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs(int64(5), int64(2), "Read chapter 3", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	require.NoError(t, postgres.NewPostgresTaskStore(db, nil).Create(context.Background(), task))
	assert.Equal(t, int64(11), task.ID)
}

func TestPostgresTaskStore_CreateUntaggedPassesNull(t *testing.T) {
	db, mock := newMockDB(t)
	task, err := domain.NewTask(5, "Revise", nil)
	require.NoError(t, err)

	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs(int64(5), nil, "Revise", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	require.NoError(t, postgres.NewPostgresTaskStore(db, nil).Create(context.Background(), task))
}

func TestPostgresTaskStore_CreateUnknownTag(t *testing.T) {
	db, mock := newMockDB(t)
	tagID := int64(404)
	task, err := domain.NewTask(5, "Read", &tagID)
	require.NoError(t, err)

	mock.ExpectQuery("INSERT INTO tasks").
		WillReturnError(newPgError("23503", "tasks_tag_id_fkey"))

	err = postgres.NewPostgresTaskStore(db, nil).Create(context.Background(), task)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestPostgresTaskStore_GetByID(t *testing.T) {
	now := time.Now().UTC()

	t.Run("tagged", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("FROM tasks t\\s+LEFT JOIN tags g").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(3, 5, 2, "DSA", "Read", false, now, now))

		task, err := postgres.NewPostgresTaskStore(db, nil).GetByID(context.Background(), 3)
		require.NoError(t, err)
		require.NotNil(t, task.TagID)
		assert.Equal(t, int64(2), *task.TagID)
		assert.Equal(t, "DSA", task.TagName)
	})

	t.Run("untagged", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("FROM tasks t").
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(3, 5, nil, "", "Read", true, now, now))

		task, err := postgres.NewPostgresTaskStore(db, nil).GetByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Nil(t, task.TagID)
		assert.True(t, task.Done)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("FROM tasks t").WillReturnRows(sqlmock.NewRows(taskRowColumns))

		_, err := postgres.NewPostgresTaskStore(db, nil).GetByID(context.Background(), 3)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_MutationsAreOwnerScoped(t *testing.T) {
	ctx := context.Background()

	t.Run("update of someone else's task touches nothing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("UPDATE tasks .* WHERE id = \\$4 AND user_id = \\$5").
			WithArgs("New", false, sqlmock.AnyArg(), int64(3), int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		task := &domain.Task{ID: 3, UserID: 9, Text: "New", UpdatedAt: time.Now()}
		err := postgres.NewPostgresTaskStore(db, nil).Update(ctx, task)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("DELETE FROM tasks WHERE id = \\$1 AND user_id = \\$2").
			WithArgs(int64(3), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, postgres.NewPostgresTaskStore(db, nil).Delete(ctx, 3, 5))
	})

	t.Run("delete missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("DELETE FROM tasks").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := postgres.NewPostgresTaskStore(db, nil).Delete(ctx, 3, 5)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_ListByOwner(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("tag filter adds a predicate and paginates", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tasks t WHERE t.user_id = \\$1 AND t.done = \\$2 AND t.tag_id = \\$3").
			WithArgs(int64(5), false, int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
		mock.ExpectQuery("ORDER BY t.created_at ASC, t.id ASC\\s+LIMIT \\$4 OFFSET \\$5").
			WithArgs(int64(5), false, int64(2), 5, 5).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(6, 5, 2, "DSA", "six", false, now, now).
				AddRow(7, 5, 2, "DSA", "seven", false, now, now))

		tasks, total, err := postgres.NewPostgresTaskStore(db, nil).ListByOwner(ctx, 5,
			domain.TaskFilter{Tag: domain.OnlyTag(2)},
			domain.PageRequest{Page: 2, PageSize: 5})

		require.NoError(t, err)
		assert.Equal(t, 7, total)
		require.Len(t, tasks, 2)
		assert.Equal(t, "six", tasks[0].Text)
	})

	t.Run("sentinel filter has no tag predicate", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tasks t WHERE t.user_id = \\$1 AND t.done = \\$2$").
			WithArgs(int64(5), true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("LIMIT \\$3 OFFSET \\$4").
			WithArgs(int64(5), true, 5, 0).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(1, 5, nil, "", "done one", true, now, now))

		tasks, total, err := postgres.NewPostgresTaskStore(db, nil).ListByOwner(ctx, 5,
			domain.TaskFilter{Tag: domain.AnyTag(), Done: true},
			domain.PageRequest{Page: 1, PageSize: 5})

		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, tasks, 1)
	})

	t.Run("page past the end skips the row query", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		tasks, total, err := postgres.NewPostgresTaskStore(db, nil).ListByOwner(ctx, 5,
			domain.TaskFilter{},
			domain.PageRequest{Page: 4, PageSize: 5})

		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("huge page never sends a negative offset", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		tasks, total, err := postgres.NewPostgresTaskStore(db, nil).ListByOwner(ctx, 5,
			domain.TaskFilter{},
			domain.PageRequest{Page: math.MaxInt / 4, PageSize: 5})

		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, tasks)
	})
}
