package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/validation"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	svc service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// TaskListResponse is the paginated list envelope.
type TaskListResponse struct {
	Tasks      []model.Task        `json:"tasks"`
	Pagination *service.Pagination `json:"pagination"`
}

// ListTasks godoc
// @Summary List tasks with optional filters and pagination
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param createdFrom query string false "Created-at lower bound (inclusive)"
// @Param createdTo query string false "Created-at upper bound (inclusive)"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} TaskListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	query, vErr := validation.ParseTaskListQuery(c.QueryParams())
	if vErr != nil {
		return respondError(c, vErr)
	}

	result, err := h.svc.ListTasks(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	if result.Pagination == nil {
		if result.Tasks == nil {
			result.Tasks = []model.Task{}
		}
		return c.JSON(http.StatusOK, result.Tasks)
	}
	return c.JSON(http.StatusOK, TaskListResponse{
		Tasks:      result.Tasks,
		Pagination: result.Pagination,
	})
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.CreateTaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req validation.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errors.NewValidationError("Invalid request body"))
	}

	data, vErr := req.Validate(time.Now())
	if vErr != nil {
		return respondError(c, vErr)
	}

	task, err := h.svc.CreateTask(c.Request().Context(), data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// GetTask godoc
// @Summary Get a task with its assignee
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, vErr := validation.ParseTaskID(c.Param("id"))
	if vErr != nil {
		return respondError(c, vErr)
	}

	task, err := h.svc.GetTask(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Partially update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body object true "Fields to update"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, vErr := validation.ParseTaskID(c.Param("id"))
	if vErr != nil {
		return respondError(c, vErr)
	}

	var req validation.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errors.NewValidationError("Invalid request body"))
	}

	patch, vErr := req.Validate(time.Now())
	if vErr != nil {
		return respondError(c, vErr)
	}

	task, err := h.svc.UpdateTask(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, vErr := validation.ParseTaskID(c.Param("id"))
	if vErr != nil {
		return respondError(c, vErr)
	}

	if err := h.svc.DeleteTask(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
