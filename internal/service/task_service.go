package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/cache"
	"taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/validation"
)

const taskCacheTTL = 5 * time.Minute

// Pagination carries page metadata for a paginated task list.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// TaskListResult is the outcome of a list query. Pagination is nil when the
// caller did not ask for paging, in which case Tasks holds the full
// filtered set.
type TaskListResult struct {
	Tasks      []model.Task
	Pagination *Pagination
}

// TaskService exposes task operations.
type TaskService interface {
	CreateTask(ctx context.Context, data *validation.CreateTaskData) (*model.Task, error)
	GetTask(ctx context.Context, id uint) (*model.Task, error)
	UpdateTask(ctx context.Context, id uint, patch *validation.TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, id uint) error
	ListTasks(ctx context.Context, query *validation.TaskListQuery) (*TaskListResult, error)
}

type taskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewTaskService creates a new task service.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, cache *cache.Client) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

func (s *taskService) cacheKey(id uint) string {
	return fmt.Sprintf("task:%d", id)
}

// checkAssignee verifies the referenced user exists. A well-formed id that
// matches nobody is a not-found failure, distinct from the validation layer
// rejecting negative ids.
func (s *taskService) checkAssignee(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("Assignee")
		}
		return fmt.Errorf("check assignee: %w", err)
	}
	return nil
}

// CreateTask persists a validated task and returns it with the assignee
// relation loaded.
func (s *taskService) CreateTask(ctx context.Context, data *validation.CreateTaskData) (*model.Task, error) {
	if data.AssigneeID != nil {
		if err := s.checkAssignee(ctx, *data.AssigneeID); err != nil {
			return nil, err
		}
	}

	task := &model.Task{
		Title:       data.Title,
		Description: data.Description,
		Status:      data.Status,
		Priority:    data.Priority,
		Type:        data.Type,
		Deadline:    data.Deadline,
		AssigneeID:  data.AssigneeID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	created, err := s.taskRepo.FindByID(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("reload task: %w", err)
	}
	return created, nil
}

// GetTask returns the task joined with its assignee, with a cache
// read-through.
func (s *taskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Task")
		}
		return nil, err
	}

	if payload, err := json.Marshal(task); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, taskCacheTTL)
	}
	return task, nil
}

// UpdateTask merges only the supplied keys over the existing record.
// Omitted keys are untouched; explicit nulls clear nullable fields.
func (s *taskService) UpdateTask(ctx context.Context, id uint, patch *validation.TaskPatch) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Task")
		}
		return nil, err
	}

	if patch.AssigneeSet && patch.AssigneeID != nil {
		if err := s.checkAssignee(ctx, *patch.AssigneeID); err != nil {
			return nil, err
		}
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.DescSet {
		task.Description = patch.Description
	}
	if patch.TypeSet {
		task.Type = patch.Type
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.DeadlineSet {
		task.Deadline = patch.Deadline
	}
	if patch.AssigneeSet {
		task.AssigneeID = patch.AssigneeID
		task.Assignee = nil
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))

	updated, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload task: %w", err)
	}
	return updated, nil
}

// DeleteTask removes the task. Deleting an id that no longer exists is a
// not-found failure, not a silent success.
func (s *taskService) DeleteTask(ctx context.Context, id uint) error {
	deleted, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !deleted {
		return errors.NewNotFoundError("Task")
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// ListTasks applies the filters and, when the caller asked for paging,
// wraps the page in an envelope with the pre-paging total.
func (s *taskService) ListTasks(ctx context.Context, query *validation.TaskListQuery) (*TaskListResult, error) {
	filters := repository.TaskFilters{
		Status:      query.Status,
		Priority:    query.Priority,
		CreatedFrom: query.CreatedFrom,
		CreatedTo:   query.CreatedTo,
	}

	if !query.Paginate {
		tasks, err := s.taskRepo.List(ctx, filters)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		return &TaskListResult{Tasks: tasks}, nil
	}

	total, err := s.taskRepo.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	filters.Limit = query.Limit
	filters.Offset = (query.Page - 1) * query.Limit
	tasks, err := s.taskRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	totalPages := int((total + int64(query.Limit) - 1) / int64(query.Limit))
	return &TaskListResult{
		Tasks: tasks,
		Pagination: &Pagination{
			Total:      total,
			Page:       query.Page,
			Limit:      query.Limit,
			TotalPages: totalPages,
			HasNext:    query.Page < totalPages,
			HasPrev:    query.Page > 1,
		},
	}, nil
}
