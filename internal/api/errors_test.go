package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/studytrack/internal/api/shared"
	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/service"
	"github.com/phrazzld/studytrack/internal/service/auth"
	"github.com/phrazzld/studytrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: %w", service.ErrValidation, domain.ErrEmptyTaskText), http.StatusBadRequest},
		{"domain validation", domain.ErrEmptyTagName, http.StatusBadRequest},
		{"invalid id", domain.NewValidationError("id", "bad", domain.ErrInvalidID), http.StatusBadRequest},
		{"bad login", service.ErrAuth, http.StatusUnauthorized},
		{"no session", fmt.Errorf("%w: %w", auth.ErrUnauthenticated, auth.ErrExpiredToken), http.StatusUnauthorized},
		{"forbidden", fmt.Errorf("%w: task 3", service.ErrForbidden), http.StatusForbidden},
		{"not found", fmt.Errorf("%w: %w", service.ErrNotFound, store.ErrTaskNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: %w", service.ErrConflict, store.ErrUsernameExists), http.StatusConflict},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
		{"wrapped unknown", service.NewServiceError("task", "add_task", "", errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{
			"validation names the field",
			fmt.Errorf("%w: %w", service.ErrValidation, domain.NewValidationError("text", "", domain.ErrEmptyTaskText)),
			"Invalid text: task text cannot be empty",
		},
		{"bad login", service.ErrAuth, "incorrect username or password"},
		{"no session", auth.ErrUnauthenticated, "Login required"},
		{"forbidden", service.ErrForbidden, "You do not own this task"},
		{"task not found", fmt.Errorf("%w: %w", service.ErrNotFound, store.ErrTaskNotFound), "Task not found"},
		{"tag not found", fmt.Errorf("%w: %w", service.ErrNotFound, store.ErrTagNotFound), "Tag not found"},
		{"username taken", fmt.Errorf("%w: %w", service.ErrConflict, store.ErrUsernameExists), "Username is already taken"},
		{"email taken", fmt.Errorf("%w: %w", service.ErrConflict, store.ErrEmailExists), "Email is already registered"},
		{"internal", errors.New("pq: relation \"tasks\" does not exist"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Run("internal error uses the fallback and a trace id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(shared.SetTraceID(r.Context()))

		HandleAPIError(w, r, errors.New("dial tcp 10.0.0.5:5432: connection refused"), "Failed to list tasks")

		resp := decodeBody[shared.ErrorResponse](t, w)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to list tasks", resp.Error)
		assert.NotEmpty(t, resp.TraceID)
		assert.NotContains(t, w.Body.String(), "10.0.0.5")
	})

	t.Run("known error ignores the fallback", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(w, r, service.ErrForbidden, "Failed to load task")

		resp := decodeBody[shared.ErrorResponse](t, w)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You do not own this task", resp.Error)
	})
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(&LoginRequest{Username: "alice"})
	require.Error(t, err)
	assert.Equal(t, "Invalid password: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
