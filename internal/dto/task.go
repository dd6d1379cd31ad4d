package dto

import (
	"time"

	"github.com/projectflow/project-management-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	StartDate    time.Time         `json:"start_date"`
	EndDate      time.Time         `json:"end_date"`
	Status       models.TaskStatus `json:"status"`
	ProjectID    uint64            `json:"project_id"`
	AssignedToID *uint64           `json:"assigned_to_id"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	AssignedTo   *UserDTO          `json:"assigned_to,omitempty"`
	Comments     []CommentDTO      `json:"comments,omitempty"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	User      *UserDTO  `json:"user,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		StartDate:    task.StartDate,
		EndDate:      task.EndDate,
		Status:       task.Status,
		ProjectID:    task.ProjectID,
		AssignedToID: task.AssignedToID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include assignee if preloaded
	if task.AssignedTo != nil && task.AssignedTo.ID != 0 {
		assignee := ToUserDTO(*task.AssignedTo)
		dto.AssignedTo = &assignee
	}

	// Include comments if preloaded
	if len(task.Comments) > 0 {
		dto.Comments = make([]CommentDTO, len(task.Comments))
		for i, comment := range task.Comments {
			dto.Comments[i] = ToCommentDTO(comment)
		}
	}

	return dto
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}

	if comment.User.ID != 0 {
		user := ToUserDTO(comment.User)
		dto.User = &user
	}

	return dto
}
