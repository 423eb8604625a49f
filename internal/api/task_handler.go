package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/studytrack/internal/api/shared"
	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/phrazzld/studytrack/internal/service"
)

// TaskHandler handles the task endpoints. Every handler runs behind
// RequireSession and acts on the session's user only.
type TaskHandler struct {
	tasks  service.TaskService
	tags   service.TagService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(
	tasks service.TaskService,
	tags service.TagService,
	logger *slog.Logger,
) *TaskHandler {
	if tasks == nil || tags == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task and tag services cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		tasks:  tasks,
		tags:   tags,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// ListPending handles GET /api/tasks.
func (h *TaskHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// ListCompleted handles GET /api/tasks/completed.
func (h *TaskHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request, done bool) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	page, err := queryInt(r, "page")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	pageSize, err := queryInt(r, "page_size")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tag, err := h.tags.ResolveTag(r.Context(), r.URL.Query().Get("tag"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to resolve tag")
		return
	}

	result, err := h.tasks.ListTasks(r.Context(), userID, domain.TaskFilter{Tag: tag, Done: done}, page, pageSize)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pageToResponse(result))
}

// Create handles POST /api/tasks. The body is either a single task or a
// routine, told apart by its "type" field.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	form, err := DecodeTaskForm(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(form); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	switch f := form.(type) {
	case CreateTaskRequest:
		id, err := h.tasks.AddTask(r.Context(), userID, f.Text, f.TagID)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to add task")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusCreated, CreateTaskResponse{ID: id})

	case CreateRoutineRequest:
		ids, err := h.tasks.CreateRoutine(r.Context(), userID, f.Items, f.TagID)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to add routine")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusCreated, CreateRoutineResponse{IDs: ids})

	default:
		log.Error("unhandled task form", slog.String("type", form.formType()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Edit handles PUT /api/tasks/{id}.
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req EditTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	task, err := h.tasks.EditTask(r.Context(), userID, taskID, req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to edit task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// MarkDone handles POST /api/tasks/{id}/done.
func (h *TaskHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	task, err := h.tasks.MarkDone(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to mark task done")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// PreviewDelete handles GET /api/tasks/{id}/delete. Nothing is removed.
func (h *TaskHandler) PreviewDelete(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, false)
}

// Delete handles POST /api/tasks/{id}/delete. The task is removed only when
// the body holds {"confirm": true}; an empty body previews.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	h.delete(w, r, req.Confirm)
}

func (h *TaskHandler) delete(w http.ResponseWriter, r *http.Request, confirmed bool) {
	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	res, err := h.tasks.DeleteTask(r.Context(), userID, taskID, confirmed)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteTaskResponse{
		Task:    taskToResponse(res.Task),
		Deleted: res.Deleted,
	})
}
