package validation

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/errors"
	"taskboard/internal/model"
)

// CreateTaskRequest is the raw task creation payload.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Type        *string    `json:"type"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Deadline    *time.Time `json:"deadline"`
	AssigneeID  *int       `json:"assigneeId"`
}

// CreateTaskData is the normalized result of validating a creation payload,
// with create-time defaults applied.
type CreateTaskData struct {
	Title       string
	Description *string
	Type        *model.TaskType
	Status      model.TaskStatus
	Priority    model.TaskPriority
	Deadline    *time.Time
	AssigneeID  *uint
}

// Validate checks the payload against the creation rules, applying the
// status and priority defaults, and evaluating the deadline rule at now.
func (r *CreateTaskRequest) Validate(now time.Time) (*CreateTaskData, *errors.ValidationError) {
	var v violations

	data := &CreateTaskData{
		Description: r.Description,
		Deadline:    r.Deadline,
		Status:      model.StatusTodo,
		Priority:    model.PriorityMedium,
	}

	data.Title = strings.TrimSpace(r.Title)
	if data.Title == "" {
		v.add("title", "Title is required")
	}

	if r.Status != nil {
		status := model.TaskStatus(*r.Status)
		if !status.Valid() {
			v.add("status", "Invalid status")
		}
		data.Status = status
	}

	if r.Priority != nil {
		priority := model.TaskPriority(*r.Priority)
		if !priority.Valid() {
			v.add("priority", "Invalid priority")
		}
		data.Priority = priority
	}

	if r.Type != nil {
		taskType := model.TaskType(*r.Type)
		if !taskType.Valid() {
			v.add("type", "Invalid type")
		}
		data.Type = &taskType
	}

	checkDeadline(&v, "deadline", r.Deadline, now)

	if r.AssigneeID != nil {
		if *r.AssigneeID < 0 {
			v.add("assigneeId", "Assignee id must be non-negative")
		} else {
			id := uint(*r.AssigneeID)
			data.AssigneeID = &id
		}
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return data, nil
}

// UpdateTaskRequest is the raw partial-update payload. Absent keys and
// explicit nulls are distinguished so that omitted fields stay untouched
// while nulls clear nullable fields.
type UpdateTaskRequest struct {
	Title       *string
	TitleSet    bool
	Description *string
	DescSet     bool
	Type        *string
	TypeSet     bool
	Status      *string
	StatusSet   bool
	Priority    *string
	PrioritySet bool
	Deadline    *time.Time
	DeadlineSet bool
	AssigneeID  *int
	AssigneeSet bool
}

// UnmarshalJSON records which keys were present in the payload alongside
// their values.
func (r *UpdateTaskRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if msg, ok := raw["title"]; ok {
		r.TitleSet = true
		if err := json.Unmarshal(msg, &r.Title); err != nil {
			return err
		}
	}
	if msg, ok := raw["description"]; ok {
		r.DescSet = true
		if err := json.Unmarshal(msg, &r.Description); err != nil {
			return err
		}
	}
	if msg, ok := raw["type"]; ok {
		r.TypeSet = true
		if err := json.Unmarshal(msg, &r.Type); err != nil {
			return err
		}
	}
	if msg, ok := raw["status"]; ok {
		r.StatusSet = true
		if err := json.Unmarshal(msg, &r.Status); err != nil {
			return err
		}
	}
	if msg, ok := raw["priority"]; ok {
		r.PrioritySet = true
		if err := json.Unmarshal(msg, &r.Priority); err != nil {
			return err
		}
	}
	if msg, ok := raw["deadline"]; ok {
		r.DeadlineSet = true
		if err := json.Unmarshal(msg, &r.Deadline); err != nil {
			return err
		}
	}
	if msg, ok := raw["assigneeId"]; ok {
		r.AssigneeSet = true
		if err := json.Unmarshal(msg, &r.AssigneeID); err != nil {
			return err
		}
	}
	return nil
}

// TaskPatch is the normalized result of validating a partial update. For
// nullable fields the Set flag marks "key supplied" and a nil value marks
// "clear the field".
type TaskPatch struct {
	Title       *string
	Description *string
	DescSet     bool
	Type        *model.TaskType
	TypeSet     bool
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
	Deadline    *time.Time
	DeadlineSet bool
	AssigneeID  *uint
	AssigneeSet bool
}

// Validate checks only the supplied keys against the update rules. No
// defaults are applied; the deadline rule is evaluated at now.
func (r *UpdateTaskRequest) Validate(now time.Time) (*TaskPatch, *errors.ValidationError) {
	var v violations
	patch := &TaskPatch{
		DescSet:     r.DescSet,
		Description: r.Description,
		TypeSet:     r.TypeSet,
		DeadlineSet: r.DeadlineSet,
		Deadline:    r.Deadline,
		AssigneeSet: r.AssigneeSet,
	}

	if r.TitleSet {
		if r.Title == nil {
			v.add("title", "Title cannot be empty")
		} else {
			trimmed := strings.TrimSpace(*r.Title)
			if trimmed == "" {
				v.add("title", "Title cannot be empty")
			} else {
				patch.Title = &trimmed
			}
		}
	}

	if r.StatusSet {
		if r.Status == nil {
			v.add("status", "Invalid status")
		} else {
			status := model.TaskStatus(*r.Status)
			if !status.Valid() {
				v.add("status", "Invalid status")
			} else {
				patch.Status = &status
			}
		}
	}

	if r.PrioritySet {
		if r.Priority == nil {
			v.add("priority", "Invalid priority")
		} else {
			priority := model.TaskPriority(*r.Priority)
			if !priority.Valid() {
				v.add("priority", "Invalid priority")
			} else {
				patch.Priority = &priority
			}
		}
	}

	if r.TypeSet && r.Type != nil {
		taskType := model.TaskType(*r.Type)
		if !taskType.Valid() {
			v.add("type", "Invalid type")
		} else {
			patch.Type = &taskType
		}
	}

	if r.DeadlineSet {
		checkDeadline(&v, "deadline", r.Deadline, now)
	}

	if r.AssigneeSet && r.AssigneeID != nil {
		if *r.AssigneeID < 0 {
			v.add("assigneeId", "Assignee id must be non-negative")
		} else {
			id := uint(*r.AssigneeID)
			patch.AssigneeID = &id
		}
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return patch, nil
}

// ParseTaskID coerces a path parameter into a positive task id.
func ParseTaskID(raw string) (uint, *errors.ValidationError) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError("Validation failed",
			errors.FieldViolation{Field: "id", Message: "Task id must be a positive integer"})
	}
	return uint(id), nil
}

// TaskListQuery is the normalized task list query. Paginate reports whether
// the caller supplied page or limit explicitly.
type TaskListQuery struct {
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        int
	Limit       int
	Paginate    bool
}

// queryDateLayouts are the accepted createdFrom/createdTo formats.
var queryDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseQueryDate(raw string) (time.Time, bool) {
	for _, layout := range queryDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseTaskListQuery coerces and validates the task list query parameters.
// Page defaults to 1 and limit to 20; a limit above 100 is rejected rather
// than clamped.
func ParseTaskListQuery(values url.Values) (*TaskListQuery, *errors.ValidationError) {
	var v violations
	q := &TaskListQuery{Page: 1, Limit: 20}

	if raw := values.Get("status"); raw != "" {
		status := model.TaskStatus(raw)
		if !status.Valid() {
			v.add("status", "Invalid status")
		} else {
			q.Status = &status
		}
	}

	if raw := values.Get("priority"); raw != "" {
		priority := model.TaskPriority(raw)
		if !priority.Valid() {
			v.add("priority", "Invalid priority")
		} else {
			q.Priority = &priority
		}
	}

	if raw := values.Get("createdFrom"); raw != "" {
		if t, ok := parseQueryDate(raw); ok {
			q.CreatedFrom = &t
		} else {
			v.add("createdFrom", "Invalid date")
		}
	}

	if raw := values.Get("createdTo"); raw != "" {
		if t, ok := parseQueryDate(raw); ok {
			q.CreatedTo = &t
		} else {
			v.add("createdTo", "Invalid date")
		}
	}

	if raw := values.Get("page"); raw != "" {
		q.Paginate = true
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			v.add("page", "Page must be a positive integer")
		} else {
			q.Page = page
		}
	}

	if raw := values.Get("limit"); raw != "" {
		q.Paginate = true
		limit, err := strconv.Atoi(raw)
		switch {
		case err != nil || limit < 1:
			v.add("limit", "Limit must be a positive integer")
		case limit > 100:
			v.add("limit", "Limit must not exceed 100")
		default:
			q.Limit = limit
		}
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return q, nil
}
