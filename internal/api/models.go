package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/phrazzld/studytrack/internal/api/shared"
	"github.com/phrazzld/studytrack/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
// Length and format rules are enforced by the domain.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse is returned by a successful registration.
type RegisterResponse struct {
	UserID int64 `json:"user_id"`
}

// LoginResponse is returned by a successful login. The token is also set
// as the session cookie.
type LoginResponse struct {
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse describes the logged-in user.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TagResponse describes one tag. The "All" sentinel has ID 0.
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TaskResponse describes one task.
type TaskResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	TagID     *int64    `json:"tag_id"`
	TagName   string    `json:"tag_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskPageResponse is one page of a task listing.
type TaskPageResponse struct {
	Items      []TaskResponse `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
	HasNext    bool           `json:"has_next"`
	HasPrev    bool           `json:"has_prev"`
}

// Task form variants accepted by POST /api/tasks.
const (
	TaskFormTypeTask    = "task"
	TaskFormTypeRoutine = "routine"
)

// TaskForm is a decoded POST /api/tasks body: either a CreateTaskRequest or
// a CreateRoutineRequest.
type TaskForm interface {
	formType() string
}

// CreateTaskRequest adds a single task.
type CreateTaskRequest struct {
	Text  string `json:"text"`
	TagID *int64 `json:"tag_id" validate:"omitempty,gte=0"`
}

func (CreateTaskRequest) formType() string { return TaskFormTypeTask }

// CreateRoutineRequest adds one task per item, all or none.
type CreateRoutineRequest struct {
	Items []string `json:"items"  validate:"required,min=1,max=50"`
	TagID *int64   `json:"tag_id" validate:"omitempty,gte=0"`
}

func (CreateRoutineRequest) formType() string { return TaskFormTypeRoutine }

// taskFormEnvelope carries the discriminator and the variant's fields.
type taskFormEnvelope struct {
	Type  string   `json:"type"`
	Text  *string  `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
	TagID *int64   `json:"tag_id,omitempty"`
}

// DecodeTaskForm decodes a POST /api/tasks body by its "type" field.
func DecodeTaskForm(r *http.Request) (TaskForm, error) {
	var env taskFormEnvelope
	if err := shared.DecodeJSON(r, &env); err != nil {
		return nil, err
	}

	switch env.Type {
	case TaskFormTypeTask:
		if env.Items != nil {
			return nil, fmt.Errorf("a task form cannot carry items")
		}
		form := CreateTaskRequest{TagID: env.TagID}
		if env.Text != nil {
			form.Text = *env.Text
		}
		return form, nil
	case TaskFormTypeRoutine:
		if env.Text != nil {
			return nil, fmt.Errorf("a routine form cannot carry text")
		}
		return CreateRoutineRequest{Items: env.Items, TagID: env.TagID}, nil
	default:
		return nil, fmt.Errorf("unknown task form type %q", env.Type)
	}
}

// CreateTaskResponse is returned after adding a single task.
type CreateTaskResponse struct {
	ID int64 `json:"id"`
}

// CreateRoutineResponse is returned after adding a routine.
type CreateRoutineResponse struct {
	IDs []int64 `json:"ids"`
}

// EditTaskRequest replaces a task's text.
type EditTaskRequest struct {
	Text string `json:"text"`
}

// DeleteTaskRequest confirms a delete. Without confirm the task is only
// previewed.
type DeleteTaskRequest struct {
	Confirm bool `json:"confirm"`
}

// DeleteTaskResponse reports the task and whether it was removed.
type DeleteTaskResponse struct {
	Task    TaskResponse `json:"task"`
	Deleted bool         `json:"deleted"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Text:      task.Text,
		Done:      task.Done,
		TagID:     task.TagID,
		TagName:   task.TagName,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

func pageToResponse(page domain.Page[*domain.Task]) TaskPageResponse {
	items := make([]TaskResponse, 0, len(page.Items))
	for _, task := range page.Items {
		items = append(items, taskToResponse(task))
	}
	return TaskPageResponse{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		HasNext:    page.HasNext,
		HasPrev:    page.HasPrev,
	}
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
