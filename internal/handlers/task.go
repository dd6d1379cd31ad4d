package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projectflow/project-management-api/internal/dto"
	apierrors "github.com/projectflow/project-management-api/internal/errors"
	"github.com/projectflow/project-management-api/internal/middleware"
	"github.com/projectflow/project-management-api/internal/models"
	"github.com/projectflow/project-management-api/internal/services"
)

// TaskHandler coordinates task and comment HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task inside the project named in the URL. Any
// project member may create tasks; RequireProjectAccess enforces that.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	_, project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateTaskRequest struct {
		Title        string    `json:"title" binding:"required,max=100"`
		Description  string    `json:"description" binding:"max=500"`
		StartDate    time.Time `json:"start_date" binding:"required"`
		EndDate      time.Time `json:"end_date" binding:"required"`
		AssignedToID *uint64   `json:"assigned_to_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		ProjectID:    project.ID,
		AssignedToID: req.AssignedToID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListProjectTasks lists the project's tasks ordered by deadline.
func (h *TaskHandler) ListProjectTasks(c *gin.Context) {
	_, project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	tasks, err := h.taskService.ListProjectTasks(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	taskDTOs := make([]dto.TaskDTO, len(tasks))
	for i, t := range tasks {
		taskDTOs[i] = dto.ToTaskDTO(t)
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": taskDTOs,
	})
}

// GetTask returns a task with its comments.
func (h *TaskHandler) GetTask(c *gin.Context) {
	_, task, ok := middleware.TaskFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	detail, err := h.taskService.GetTaskDetail(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*detail))
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	_, task, ok := middleware.TaskFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type UpdateTaskRequest struct {
		Title         *string            `json:"title" binding:"omitempty,max=100"`
		Description   *string            `json:"description" binding:"omitempty,max=500"`
		StartDate     *time.Time         `json:"start_date"`
		EndDate       *time.Time         `json:"end_date"`
		Status        *models.TaskStatus `json:"status" binding:"omitempty,oneof=NOT_STARTED IN_PROGRESS COMPLETED"`
		AssignedToID  *uint64            `json:"assigned_to_id"`
		ClearAssignee bool               `json:"clear_assignee"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(task.ID, services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        req.Status,
		AssignedToID:  req.AssignedToID,
		ClearAssignee: req.ClearAssignee,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask removes a task together with its comments.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	_, task, ok := middleware.TaskFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		apierrors.InternalError(c, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// AddComment attaches a comment to a task on behalf of the caller.
func (h *TaskHandler) AddComment(c *gin.Context) {
	user, task, ok := middleware.TaskFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type AddCommentRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.taskService.AddComment(task.ID, user.ID, req.Content)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskTitleRequired),
		errors.Is(err, services.ErrEndBeforeStart),
		errors.Is(err, services.ErrEndDateInPast),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrCommentEmpty):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAssigneeNotMember):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskConflict):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
