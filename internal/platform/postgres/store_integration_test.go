//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/postgres"
	"github.com/phrazzld/studytrack/internal/store"
	"github.com/phrazzld/studytrack/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, tx *sql.Tx, username string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(username, username+"@example.com", "longpass1")
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$integrationhashintegrationhashint"

	require.NoError(t, postgres.NewPostgresUserStore(tx, nil).Create(context.Background(), user))
	return user
}

func TestUserStoreIntegration(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewPostgresUserStore(tx, nil)

		alice := createTestUser(t, tx, "alice_int")
		assert.NotZero(t, alice.ID)

		got, err := users.GetByUsername(ctx, "alice_int")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
		assert.NotEqual(t, "longpass1", got.HashedPassword)

		dup, err := domain.NewUser("alice_int", "other@example.com", "longpass1")
		require.NoError(t, err)
		dup.HashedPassword = "$2a$10$x"
		err = users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})
}

func TestTaskStoreIntegration(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		tasks := postgres.NewPostgresTaskStore(tx, nil)
		tags := postgres.NewPostgresTagStore(tx, nil)

		_, err := tags.EnsureExists(ctx, []string{"IntDSA", "IntTSP"})
		require.NoError(t, err)
		dsa, err := tags.GetByName(ctx, "IntDSA")
		require.NoError(t, err)

		owner := createTestUser(t, tx, "owner_int")
		other := createTestUser(t, tx, "other_int")

		for i := 1; i <= 12; i++ {
			var tagID *int64
			if i%2 == 0 {
				tagID = &dsa.ID
			}
			task, err := domain.NewTask(owner.ID, fmt.Sprintf("task %02d", i), tagID)
			require.NoError(t, err)
			task.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
			require.NoError(t, tasks.Create(ctx, task))
		}
		foreign, err := domain.NewTask(other.ID, "not yours", nil)
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, foreign))

		page := domain.PageRequest{Page: 3, PageSize: 5}
		items, total, err := tasks.ListByOwner(ctx, owner.ID, domain.TaskFilter{}, page)
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		require.Len(t, items, 2)
		assert.Equal(t, "task 11", items[0].Text)
		assert.Equal(t, "task 12", items[1].Text)

		items, total, err = tasks.ListByOwner(ctx, owner.ID,
			domain.TaskFilter{Tag: domain.OnlyTag(dsa.ID)},
			domain.PageRequest{Page: 1, PageSize: 5})
		require.NoError(t, err)
		assert.Equal(t, 6, total)
		for _, item := range items {
			assert.Equal(t, "IntDSA", item.TagName)
		}

		foreign.Text = "hijacked"
		foreign.UserID = owner.ID
		assert.ErrorIs(t, tasks.Update(ctx, foreign), store.ErrTaskNotFound)
		assert.ErrorIs(t, tasks.Delete(ctx, foreign.ID, owner.ID), store.ErrTaskNotFound)

		stored, err := tasks.GetByID(ctx, foreign.ID)
		require.NoError(t, err)
		assert.Equal(t, "not yours", stored.Text)
		assert.Equal(t, other.ID, stored.UserID)
	})
}

func TestTagStoreIntegration(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		tags := postgres.NewPostgresTagStore(tx, nil)

		first, err := tags.EnsureExists(ctx, []string{"IntA", "IntB"})
		require.NoError(t, err)
		assert.Equal(t, 2, first)

		second, err := tags.EnsureExists(ctx, []string{"IntA", "IntB"})
		require.NoError(t, err)
		assert.Zero(t, second)

		var count int
		require.NoError(t, tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tags WHERE name IN ('IntA', 'IntB')`).Scan(&count))
		assert.Equal(t, 2, count)
	})
}

func TestSessionStoreIntegration(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		sessions := postgres.NewPostgresSessionStore(tx, nil)
		user := createTestUser(t, tx, "session_int")

		session, err := domain.NewSession(user.ID, time.Now(), time.Hour)
		require.NoError(t, err)
		require.NoError(t, sessions.Create(ctx, session))

		got, err := sessions.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.UserID)

		require.NoError(t, sessions.Delete(ctx, session.ID))
		_, err = sessions.Get(ctx, session.ID)
		assert.ErrorIs(t, err, store.ErrSessionNotFound)
	})
}
