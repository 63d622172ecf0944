package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/validation"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, filters repository.TaskFilters) ([]model.Task, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Count(ctx context.Context, filters repository.TaskFilters) (int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).(int64), args.Error(1)
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

func TestTaskService_CreateTask(t *testing.T) {
	t.Run("creates task with defaults", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		userRepo := new(MockUserRepository)

		created := &model.Task{ID: 1, Title: "Minimal Task", Status: model.StatusTodo, Priority: model.PriorityMedium}
		taskRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Task).ID = 1
		})
		taskRepo.On("FindByID", mock.Anything, uint(1)).Return(created, nil)

		svc := NewTaskService(taskRepo, userRepo, nil)
		task, err := svc.CreateTask(context.Background(), &validation.CreateTaskData{
			Title:    "Minimal Task",
			Status:   model.StatusTodo,
			Priority: model.PriorityMedium,
		})

		require.NoError(t, err)
		assert.Equal(t, model.StatusTodo, task.Status)
		assert.Equal(t, model.PriorityMedium, task.Priority)
		taskRepo.AssertExpectations(t)
	})

	t.Run("nonexistent assignee is not found, not validation", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, uint(99999)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewTaskService(taskRepo, userRepo, nil)
		_, err := svc.CreateTask(context.Background(), &validation.CreateTaskData{
			Title:      "Task",
			Status:     model.StatusTodo,
			Priority:   model.PriorityMedium,
			AssigneeID: uintPtr(99999),
		})

		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
		assert.Equal(t, "Assignee not found", appErr.Message)
		taskRepo.AssertNotCalled(t, "Create")
	})

	t.Run("existing assignee accepted", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1}, nil)
		taskRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Task).ID = 5
		})
		taskRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Task{ID: 5, AssigneeID: uintPtr(1)}, nil)

		svc := NewTaskService(taskRepo, userRepo, nil)
		task, err := svc.CreateTask(context.Background(), &validation.CreateTaskData{
			Title:      "Task",
			Status:     model.StatusTodo,
			Priority:   model.PriorityMedium,
			AssigneeID: uintPtr(1),
		})

		require.NoError(t, err)
		require.NotNil(t, task.AssigneeID)
		assert.Equal(t, uint(1), *task.AssigneeID)
	})
}

func TestTaskService_GetTask(t *testing.T) {
	t.Run("returns task with assignee", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		taskRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Task{
			ID:       1,
			Title:    "Test Task",
			Assignee: &model.User{ID: 2, Firstname: "Test"},
		}, nil)

		svc := NewTaskService(taskRepo, new(MockUserRepository), nil)
		task, err := svc.GetTask(context.Background(), 1)

		require.NoError(t, err)
		require.NotNil(t, task.Assignee)
		assert.Equal(t, uint(2), task.Assignee.ID)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		taskRepo.On("FindByID", mock.Anything, uint(99999)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewTaskService(taskRepo, new(MockUserRepository), nil)
		_, err := svc.GetTask(context.Background(), 99999)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
		assert.Equal(t, "Task not found", appErr.Message)
	})
}

func TestTaskService_UpdateTask(t *testing.T) {
	t.Run("partial update preserves unspecified fields", func(t *testing.T) {
		existing := &model.Task{
			ID:          1,
			Title:       "Original Title",
			Description: strPtr("Original Description"),
			Status:      model.StatusTodo,
			Priority:    model.PriorityMedium,
		}
		taskRepo := new(MockTaskRepository)
		taskRepo.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
		taskRepo.On("Update", mock.Anything, existing).Return(nil)

		svc := NewTaskService(taskRepo, new(MockUserRepository), nil)
		task, err := svc.UpdateTask(context.Background(), 1, &validation.TaskPatch{
			Title: strPtr("Updated Title"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Updated Title", task.Title)
		require.NotNil(t, task.Description)
		assert.Equal(t, "Original Description", *task.Description)
		assert.Equal(t, model.StatusTodo, task.Status)
		assert.Equal(t, model.PriorityMedium, task.Priority)
	})

	t.Run("explicit null clears deadline", func(t *testing.T) {
		deadline := time.Now().Add(24 * time.Hour)
		existing := &model.Task{ID: 1, Title: "Task", Deadline: &deadline}
		taskRepo := new(MockTaskRepository)
		taskRepo.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
		taskRepo.On("Update", mock.Anything, existing).Return(nil)

		svc := NewTaskService(taskRepo, new(MockUserRepository), nil)
		task, err := svc.UpdateTask(context.Background(), 1, &validation.TaskPatch{
			DeadlineSet: true,
		})

		require.NoError(t, err)
		assert.Nil(t, task.Deadline)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		taskRepo.On("FindByID", mock.Anything, uint(99999)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewTaskService(taskRepo, new(MockUserRepository), nil)
		_, err := svc.UpdateTask(context.Background(), 99999, &validation.TaskPatch{Title: strPtr("x")})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
	})

	t.Run("changing assignee to nonexistent user is not found", func(t *testing.T) {
		existing := &model.Task{ID: 1, Title: "Task"}
		taskRepo := new(MockTaskRepository)
		taskRepo.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, uint(99999)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewTaskService(taskRepo, userRepo, nil)
		_, err := svc.UpdateTask(context.Background(), 1, &validation.TaskPatch{
			AssigneeSet: true,
			AssigneeID:  uintPtr(99999),
		})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Assignee not found", appErr.Message)
		taskRepo.AssertNotCalled(t, "Update")
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	t.Run("second delete reports not found", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		taskRepo.On("Delete", mock.Anything, uint(1)).Return(true, nil).Once()
		taskRepo.On("Delete", mock.Anything, uint(1)).Return(false, nil).Once()

		svc := NewTaskService(taskRepo, new(MockUserRepository), nil)

		require.NoError(t, svc.DeleteTask(context.Background(), 1))

		err := svc.DeleteTask(context.Background(), 1)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
		taskRepo.AssertExpectations(t)
	})
}

func TestTaskService_ListTasks(t *testing.T) {
	makeTasks := func(n int) []model.Task {
		tasks := make([]model.Task, n)
		for i := range tasks {
			tasks[i] = model.Task{ID: uint(i + 1), Title: "Task"}
		}
		return tasks
	}

	t.Run("no pagination returns full filtered set", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		taskRepo.On("List", mock.Anything, mock.AnythingOfType("repository.TaskFilters")).
			Return(makeTasks(3), nil)

		svc := NewTaskService(taskRepo, new(MockUserRepository), nil)
		result, err := svc.ListTasks(context.Background(), &validation.TaskListQuery{Page: 1, Limit: 20})

		require.NoError(t, err)
		assert.Len(t, result.Tasks, 3)
		assert.Nil(t, result.Pagination)
		taskRepo.AssertNotCalled(t, "Count")
	})

	t.Run("first page of 25 tasks", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		taskRepo.On("Count", mock.Anything, mock.AnythingOfType("repository.TaskFilters")).
			Return(int64(25), nil)
		taskRepo.On("List", mock.Anything, repository.TaskFilters{Limit: 10, Offset: 0}).
			Return(makeTasks(10), nil)

		svc := NewTaskService(taskRepo, new(MockUserRepository), nil)
		result, err := svc.ListTasks(context.Background(), &validation.TaskListQuery{
			Page: 1, Limit: 10, Paginate: true,
		})

		require.NoError(t, err)
		assert.Len(t, result.Tasks, 10)
		require.NotNil(t, result.Pagination)
		assert.Equal(t, int64(25), result.Pagination.Total)
		assert.Equal(t, 1, result.Pagination.Page)
		assert.Equal(t, 10, result.Pagination.Limit)
		assert.Equal(t, 3, result.Pagination.TotalPages)
		assert.True(t, result.Pagination.HasNext)
		assert.False(t, result.Pagination.HasPrev)
	})

	t.Run("last page of 25 tasks", func(t *testing.T) {
		taskRepo := new(MockTaskRepository)
		taskRepo.On("Count", mock.Anything, mock.AnythingOfType("repository.TaskFilters")).
			Return(int64(25), nil)
		taskRepo.On("List", mock.Anything, repository.TaskFilters{Limit: 10, Offset: 20}).
			Return(makeTasks(5), nil)

		svc := NewTaskService(taskRepo, new(MockUserRepository), nil)
		result, err := svc.ListTasks(context.Background(), &validation.TaskListQuery{
			Page: 3, Limit: 10, Paginate: true,
		})

		require.NoError(t, err)
		assert.Len(t, result.Tasks, 5)
		require.NotNil(t, result.Pagination)
		assert.False(t, result.Pagination.HasNext)
		assert.True(t, result.Pagination.HasPrev)
	})

	t.Run("conjunctive filters forwarded", func(t *testing.T) {
		status := model.StatusTodo
		priority := model.PriorityHigh
		taskRepo := new(MockTaskRepository)
		taskRepo.On("List", mock.Anything, repository.TaskFilters{Status: &status, Priority: &priority}).
			Return(makeTasks(1), nil)

		svc := NewTaskService(taskRepo, new(MockUserRepository), nil)
		result, err := svc.ListTasks(context.Background(), &validation.TaskListQuery{
			Status: &status, Priority: &priority, Page: 1, Limit: 20,
		})

		require.NoError(t, err)
		assert.Len(t, result.Tasks, 1)
		taskRepo.AssertExpectations(t)
	})
}
