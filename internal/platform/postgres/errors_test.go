package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/studytrack/internal/platform/postgres"
	"github.com/phrazzld/studytrack/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "test_table",
		ColumnName:     "test_column",
		ConstraintName: constraint,
	}
}

type fakeResult struct {
	rowsAffected int64
	err          error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rowsAffected, r.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"username taken", newPgError("23505", "users_username_key"), store.ErrUsernameExists},
		{"email taken", newPgError("23505", "users_email_key"), store.ErrEmailExists},
		{"tag taken", newPgError("23505", "tags_name_key"), store.ErrTagExists},
		{"unknown unique constraint", newPgError("23505", "other_key"), store.ErrDuplicate},
		{"foreign key", newPgError("23503", "tasks_tag_id_fkey"), store.ErrInvalidEntity},
		{"check", newPgError("23514", "tasks_text_not_empty"), store.ErrInvalidEntity},
		{"not null", newPgError("23502", ""), store.ErrInvalidEntity},
		{"wrapped pg error", fmt.Errorf("exec: %w", newPgError("23505", "users_email_key")), store.ErrEmailExists},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, postgres.MapError(tt.err), tt.wantErr)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("unmapped errors pass through", func(t *testing.T) {
		plain := errors.New("connection refused")
		assert.Equal(t, plain, postgres.MapError(plain))

		other := newPgError("40001", "")
		assert.Equal(t, error(other), postgres.MapError(other))
	})

	t.Run("username clash is not an email clash", func(t *testing.T) {
		err := postgres.MapError(newPgError("23505", "users_username_key"))
		assert.False(t, errors.Is(err, store.ErrEmailExists))
	})
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(newPgError("23505", "")))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23503", "")))
	assert.False(t, postgres.IsUniqueViolation(errors.New("plain")))

	assert.True(t, postgres.IsForeignKeyViolation(newPgError("23503", "")))
	assert.False(t, postgres.IsForeignKeyViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, postgres.CheckRowsAffected(fakeResult{rowsAffected: 1}, store.ErrTaskNotFound))
	assert.ErrorIs(t,
		postgres.CheckRowsAffected(fakeResult{rowsAffected: 0}, store.ErrTaskNotFound),
		store.ErrTaskNotFound)
	assert.ErrorIs(t,
		postgres.CheckRowsAffected(fakeResult{rowsAffected: 0}, nil),
		store.ErrNotFound)

	resultErr := errors.New("driver does not support rows affected")
	assert.ErrorIs(t, postgres.CheckRowsAffected(fakeResult{err: resultErr}, nil), resultErr)
	assert.Error(t, postgres.CheckRowsAffected(nil, nil))
}
