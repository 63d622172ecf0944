package model

import "time"

// TaskStatus is the workflow state of a task.
type TaskStatus string

// Task statuses.
const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// TaskPriority is the urgency level of a task.
type TaskPriority string

// Task priorities.
const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TaskType categorizes the kind of work a task represents.
type TaskType string

// Task types.
const (
	TypeTask    TaskType = "Task"
	TypeSubtask TaskType = "Subtask"
	TypeBug     TaskType = "Bug"
	TypeStory   TaskType = "Story"
	TypeEpic    TaskType = "Epic"
)

// Valid reports whether t is a known type.
func (t TaskType) Valid() bool {
	switch t {
	case TypeTask, TypeSubtask, TypeBug, TypeStory, TypeEpic:
		return true
	}
	return false
}

// Task represents a unit of work, optionally assigned to a user.
type Task struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"size:255;not null"`
	Description *string      `json:"description" gorm:"type:text"`
	Status      TaskStatus   `json:"status" gorm:"size:32;not null;default:'todo';index"`
	Priority    TaskPriority `json:"priority" gorm:"size:32;not null;default:'medium';index"`
	Type        *TaskType    `json:"type" gorm:"size:32"`
	Deadline    *time.Time   `json:"deadline"`
	AssigneeID  *uint        `json:"assigneeId" gorm:"index"`
	Assignee    *User        `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
	CreatedAt   time.Time    `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
