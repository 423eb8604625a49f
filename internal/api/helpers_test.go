package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/studytrack/internal/api/shared"
	"github.com/phrazzld/studytrack/internal/mocks"
	"github.com/stretchr/testify/require"
)

const testUserID int64 = 7

// newTaskRouter mounts the task and tag handlers with the acting user
// already resolved, as RequireSession would leave it.
func newTaskRouter(tasks *mocks.MockTaskService, tags *mocks.MockTagService) http.Handler {
	th := NewTaskHandler(tasks, tags, nil)
	gh := NewTagHandler(tags, nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), testUserID)))
		})
	})
	r.Get("/api/tags", gh.List)
	r.Get("/api/tasks", th.ListPending)
	r.Get("/api/tasks/completed", th.ListCompleted)
	r.Post("/api/tasks", th.Create)
	r.Get("/api/tasks/{id}", th.Get)
	r.Put("/api/tasks/{id}", th.Edit)
	r.Post("/api/tasks/{id}/done", th.MarkDone)
	r.Get("/api/tasks/{id}/delete", th.PreviewDelete)
	r.Post("/api/tasks/{id}/delete", th.Delete)
	return r
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}
