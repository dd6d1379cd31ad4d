package dto

import (
	"time"

	"github.com/projectflow/project-management-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID                   uint64     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	OrganizerID          uint64     `json:"organizer_id"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	AISummary            *string    `json:"ai_summary,omitempty"`
	AISummaryGeneratedAt *time.Time `json:"ai_summary_generated_at,omitempty"`
	Organizer            *UserDTO   `json:"organizer,omitempty"`
}

// ProjectMemberDTO represents a member of a project
type ProjectMemberDTO struct {
	User     UserDTO   `json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

// ProjectDetailDTO represents a project with its members and tasks
type ProjectDetailDTO struct {
	ProjectDTO
	Members []ProjectMemberDTO `json:"members"`
	Tasks   []TaskDTO          `json:"tasks"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects []ProjectDTO `json:"projects"`
	Page     int          `json:"page"`
	Limit    int          `json:"limit"`
	Total    int64        `json:"total"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:                   project.ID,
		Title:                project.Title,
		Description:          project.Description,
		OrganizerID:          project.OrganizerID,
		CreatedAt:            project.CreatedAt,
		UpdatedAt:            project.UpdatedAt,
		AISummary:            project.AISummary,
		AISummaryGeneratedAt: project.AISummaryGeneratedAt,
	}

	// Include organizer if preloaded
	if project.Organizer.ID != 0 {
		organizer := ToUserDTO(project.Organizer)
		dto.Organizer = &organizer
	}

	return dto
}

// ToProjectMemberDTO converts a member to DTO
func ToProjectMemberDTO(member models.ProjectMember) ProjectMemberDTO {
	return ProjectMemberDTO{
		User:     ToUserDTO(member.User),
		JoinedAt: member.JoinedAt,
	}
}

// ToProjectDetailDTO converts a project with members and tasks to a
// detailed DTO
func ToProjectDetailDTO(project models.Project) ProjectDetailDTO {
	members := make([]ProjectMemberDTO, len(project.Members))
	for i, m := range project.Members {
		members[i] = ToProjectMemberDTO(m)
	}

	tasks := make([]TaskDTO, len(project.Tasks))
	for i, t := range project.Tasks {
		tasks[i] = ToTaskDTO(t)
	}

	return ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(project),
		Members:    members,
		Tasks:      tasks,
	}
}

// ToProjectListResponse converts projects to a paginated response
func ToProjectListResponse(projects []models.Project, page, limit int, total int64) ProjectListResponse {
	items := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		items[i] = ToProjectDTO(p)
	}
	return ProjectListResponse{
		Projects: items,
		Page:     page,
		Limit:    limit,
		Total:    total,
	}
}
