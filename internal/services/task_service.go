package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/projectflow/project-management-api/internal/models"
	"github.com/projectflow/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskTitleRequired = errors.New("task title cannot be empty")
	ErrEndBeforeStart    = errors.New("end date must be after the start date")
	ErrEndDateInPast     = errors.New("end date cannot be in the past")
	ErrAssigneeNotMember = errors.New("assignee is not a member of the project")
	ErrTaskConflict      = errors.New("task was modified concurrently")
	ErrCommentEmpty      = errors.New("comment content cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

func validStatus(status models.TaskStatus) bool {
	switch status {
	case models.TaskStatusNotStarted, models.TaskStatusInProgress, models.TaskStatusCompleted:
		return true
	}
	return false
}

// TaskService handles task and comment business logic.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// CreateTaskInput represents parameters to create a new task.
type CreateTaskInput struct {
	Title        string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	ProjectID    uint64
	AssignedToID *uint64
}

// CreateTask validates and creates a task. Validation failure writes
// nothing.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTaskTitleRequired
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrEndBeforeStart
	}
	if input.EndDate.Before(time.Now()) {
		return nil, ErrEndDateInPast
	}

	if input.AssignedToID != nil {
		if err := s.ensureProjectMember(input.ProjectID, *input.AssignedToID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       models.TaskStatusNotStarted,
		ProjectID:    input.ProjectID,
		AssignedToID: input.AssignedToID,
		Version:      1,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTaskDetail returns a task with its project, assignee, and comments
// loaded.
func (s *TaskService) GetTaskDetail(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID,
		"Project", "AssignedTo", "Comments", "Comments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListProjectTasks returns a project's tasks ordered by deadline.
func (s *TaskService) ListProjectTasks(projectID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTaskInput holds the task fields a caller may change. Nil fields
// are left as they are.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	StartDate    *time.Time
	EndDate      *time.Time
	Status       *models.TaskStatus
	AssignedToID *uint64
	// ClearAssignee distinguishes "unassign" from "leave alone".
	ClearAssignee bool
}

// UpdateTask applies a partial update under optimistic concurrency: a
// write that raced another update fails as a conflict, and a write that
// raced a delete is reported as not found.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTaskTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.StartDate != nil {
		task.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		task.EndDate = *input.EndDate
	}
	if !task.EndDate.After(task.StartDate) {
		return nil, ErrEndBeforeStart
	}

	if input.Status != nil {
		if !validStatus(*input.Status) {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *input.Status
	}

	if input.ClearAssignee {
		task.AssignedToID = nil
	} else if input.AssignedToID != nil {
		if err := s.ensureProjectMember(task.ProjectID, *input.AssignedToID); err != nil {
			return nil, err
		}
		task.AssignedToID = input.AssignedToID
	}

	if err := s.taskRepo.Update(task); err != nil {
		if errors.Is(err, repository.ErrStaleTask) {
			if _, findErr := s.taskRepo.FindByID(taskID); errors.Is(findErr, gorm.ErrRecordNotFound) {
				return nil, ErrTaskNotFound
			}
			return nil, ErrTaskConflict
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task and its comments.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// AddComment attaches a comment to a task on behalf of a user.
func (s *TaskService) AddComment(taskID, userID uint64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrCommentEmpty
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	comment := &models.Comment{
		Content: content,
		TaskID:  taskID,
		UserID:  userID,
	}

	if err := s.taskRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return comment, nil
}

// ensureProjectMember verifies that a user belongs to a project. The
// organizer counts through their implicit membership row.
func (s *TaskService) ensureProjectMember(projectID, userID uint64) error {
	_, err := s.projectRepo.FindMember(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotMember
		}
		return fmt.Errorf("failed to verify project membership: %w", err)
	}
	return nil
}
