package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/model"
)

// TaskFilters narrows task queries. Nil fields are ignored; the createdAt
// bounds are inclusive. Limit zero means no paging.
type TaskFilters struct {
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// TaskRepository defines task persistence operations. Reads eager-load the
// assignee relation.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filters TaskFilters) ([]model.Task, error)
	Count(ctx context.Context, filters TaskFilters) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Update persists the task row. The loaded assignee relation is never
// written back; only the foreign key changes.
func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("Assignee").First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task and reports whether a row was actually deleted, so
// the caller can distinguish a missing task from a successful removal.
func (r *taskRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func applyFilters(query *gorm.DB, filters TaskFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Priority != nil {
		query = query.Where("priority = ?", *filters.Priority)
	}
	if filters.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filters.CreatedFrom)
	}
	if filters.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filters.CreatedTo)
	}
	return query
}

func (r *taskRepository) List(ctx context.Context, filters TaskFilters) ([]model.Task, error) {
	query := applyFilters(r.db.WithContext(ctx).Model(&model.Task{}), filters).
		Preload("Assignee").
		Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var tasks []model.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Count(ctx context.Context, filters TaskFilters) (int64, error) {
	var total int64
	query := applyFilters(r.db.WithContext(ctx).Model(&model.Task{}), filters)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
