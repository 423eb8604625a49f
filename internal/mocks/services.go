package mocks

import (
	"context"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/service"
)

// MockIdentityService implements service.IdentityService for testing
type MockIdentityService struct {
	RegisterFn    func(ctx context.Context, username, email, password string) (int64, error)
	LoginFn       func(ctx context.Context, username, password string) (*service.LoginResult, error)
	CurrentUserFn func(ctx context.Context, token string) (int64, error)
	LogoutFn      func(ctx context.Context, token string) error
	GetUserFn     func(ctx context.Context, userID int64) (*domain.User, error)

	// Default return values
	UserID      int64
	LoginResult *service.LoginResult
	User        *domain.User
	Err         error
}

// Register implements service.IdentityService
func (m *MockIdentityService) Register(ctx context.Context, username, email, password string) (int64, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, email, password)
	}
	return m.UserID, m.Err
}

// Login implements service.IdentityService
func (m *MockIdentityService) Login(ctx context.Context, username, password string) (*service.LoginResult, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, username, password)
	}
	return m.LoginResult, m.Err
}

// CurrentUser implements service.IdentityService
func (m *MockIdentityService) CurrentUser(ctx context.Context, token string) (int64, error) {
	if m.CurrentUserFn != nil {
		return m.CurrentUserFn(ctx, token)
	}
	return m.UserID, m.Err
}

// Logout implements service.IdentityService
func (m *MockIdentityService) Logout(ctx context.Context, token string) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, token)
	}
	return m.Err
}

// GetUser implements service.IdentityService
func (m *MockIdentityService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return m.User, m.Err
}

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	AddTaskFn       func(ctx context.Context, owner int64, text string, tagID *int64) (int64, error)
	EditTaskFn      func(ctx context.Context, owner, taskID int64, text string) (*domain.Task, error)
	MarkDoneFn      func(ctx context.Context, owner, taskID int64) (*domain.Task, error)
	DeleteTaskFn    func(ctx context.Context, owner, taskID int64, confirmed bool) (*service.DeleteResult, error)
	CreateRoutineFn func(ctx context.Context, owner int64, items []string, tagID *int64) ([]int64, error)
	GetTaskFn       func(ctx context.Context, owner, taskID int64) (*domain.Task, error)
	ListTasksFn     func(
		ctx context.Context,
		owner int64,
		filter domain.TaskFilter,
		page, pageSize int,
	) (domain.Page[*domain.Task], error)

	// Default return values
	Task *domain.Task
	Err  error
}

// AddTask implements service.TaskService
func (m *MockTaskService) AddTask(ctx context.Context, owner int64, text string, tagID *int64) (int64, error) {
	if m.AddTaskFn != nil {
		return m.AddTaskFn(ctx, owner, text, tagID)
	}
	if m.Task != nil {
		return m.Task.ID, m.Err
	}
	return 0, m.Err
}

// EditTask implements service.TaskService
func (m *MockTaskService) EditTask(ctx context.Context, owner, taskID int64, text string) (*domain.Task, error) {
	if m.EditTaskFn != nil {
		return m.EditTaskFn(ctx, owner, taskID, text)
	}
	return m.Task, m.Err
}

// MarkDone implements service.TaskService
func (m *MockTaskService) MarkDone(ctx context.Context, owner, taskID int64) (*domain.Task, error) {
	if m.MarkDoneFn != nil {
		return m.MarkDoneFn(ctx, owner, taskID)
	}
	return m.Task, m.Err
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(
	ctx context.Context,
	owner, taskID int64,
	confirmed bool,
) (*service.DeleteResult, error) {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, owner, taskID, confirmed)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &service.DeleteResult{Task: m.Task, Deleted: confirmed}, nil
}

// CreateRoutine implements service.TaskService
func (m *MockTaskService) CreateRoutine(
	ctx context.Context,
	owner int64,
	items []string,
	tagID *int64,
) ([]int64, error) {
	if m.CreateRoutineFn != nil {
		return m.CreateRoutineFn(ctx, owner, items, tagID)
	}
	return nil, m.Err
}

// GetTask implements service.TaskService
func (m *MockTaskService) GetTask(ctx context.Context, owner, taskID int64) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, owner, taskID)
	}
	return m.Task, m.Err
}

// ListTasks implements service.TaskService
func (m *MockTaskService) ListTasks(
	ctx context.Context,
	owner int64,
	filter domain.TaskFilter,
	page, pageSize int,
) (domain.Page[*domain.Task], error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, owner, filter, page, pageSize)
	}
	req := domain.NewPageRequest(page, pageSize, domain.DefaultPageSize, domain.MaxPageSize)
	return domain.NewPage[*domain.Task](nil, req, 0), m.Err
}

// MockTagService implements service.TagService for testing
type MockTagService struct {
	ListTagsFn       func(ctx context.Context) ([]domain.Tag, error)
	EnsureSeedTagsFn func(ctx context.Context, names []string) (int, error)
	ResolveTagFn     func(ctx context.Context, param string) (domain.TagFilter, error)

	// Default return values
	Tags []domain.Tag
	Err  error
}

// ListTags implements service.TagService
func (m *MockTagService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	if m.ListTagsFn != nil {
		return m.ListTagsFn(ctx)
	}
	return m.Tags, m.Err
}

// EnsureSeedTags implements service.TagService
func (m *MockTagService) EnsureSeedTags(ctx context.Context, names []string) (int, error) {
	if m.EnsureSeedTagsFn != nil {
		return m.EnsureSeedTagsFn(ctx, names)
	}
	return 0, m.Err
}

// ResolveTag implements service.TagService
func (m *MockTagService) ResolveTag(ctx context.Context, param string) (domain.TagFilter, error) {
	if m.ResolveTagFn != nil {
		return m.ResolveTagFn(ctx, param)
	}
	return domain.AnyTag(), m.Err
}
