package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/projectflow/project-management-api/internal/models"
	"github.com/projectflow/project-management-api/internal/repository"
	"github.com/projectflow/project-management-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound         = errors.New("project not found")
	ErrProjectTitleRequired    = errors.New("project title cannot be empty")
	ErrMemberUserNotFound      = errors.New("no user with that email")
	ErrAlreadyProjectMember    = errors.New("user is already a member")
	ErrProjectMemberNotFound   = errors.New("project member not found")
	ErrCannotRemoveOrganizer   = errors.New("the organizer cannot be removed from their project")
	ErrSummaryNotConfigured    = errors.New("summary generation is not configured")
	ErrSummaryGenerationFailed = errors.New("summary generation failed")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo    repository.ProjectRepository
	userRepo       repository.UserRepository
	summaryService *SummaryService
}

// NewProjectService creates a new ProjectService. summaryService may be
// nil when no API key is configured.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, summaryService *SummaryService) *ProjectService {
	return &ProjectService{
		projectRepo:    projectRepo,
		userRepo:       userRepo,
		summaryService: summaryService,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Title       string
	Description string
	OrganizerID uint64
}

// CreateProject creates a project with the caller as organizer. The caller
// becomes an implicit member, and is promoted to the Organizer role if
// they do not hold it yet. The promotion is one-way; nothing ever demotes.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrProjectTitleRequired
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		OrganizerID: input.OrganizerID,
	}

	member := &models.ProjectMember{
		JoinedAt: time.Now(),
	}

	if err := s.projectRepo.CreateWithOrganizer(project, member); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if err := s.userRepo.GrantRole(input.OrganizerID, models.RoleOrganizer); err != nil {
		return nil, fmt.Errorf("failed to grant organizer role: %w", err)
	}

	return project, nil
}

// ListProjects returns all projects, paginated.
func (s *ProjectService) ListProjects(params utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetProjectDetail returns a project with organizer, members, and tasks
// loaded.
func (s *ProjectService) GetProjectDetail(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID,
		"Organizer", "Members", "Members.User", "Tasks", "Tasks.AssignedTo")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// UpdateProjectInput holds the editable project fields.
type UpdateProjectInput struct {
	Title       string
	Description string
}

// UpdateProject updates a project's title and description.
func (s *ProjectService) UpdateProject(projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrProjectTitleRequired
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	project.Title = input.Title
	project.Description = input.Description
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project and everything depending on it. A
// missing id is a no-op: the outcome the caller asked for already holds.
func (s *ProjectService) DeleteProject(projectID uint64) error {
	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// AddMemberByEmail grants the user with the given email access to the
// project. Adding an existing member writes nothing and reports the fact.
func (s *ProjectService) AddMemberByEmail(projectID uint64, email string) (*models.ProjectMember, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	user, err := s.userRepo.FindByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.projectRepo.FindMember(projectID, user.ID); err == nil {
		return nil, ErrAlreadyProjectMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    user.ID,
		JoinedAt:  time.Now(),
	}

	if err := s.projectRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	member.User = *user
	return member, nil
}

// RemoveMember revokes a user's membership. The organizer's implicit
// membership is not removable.
func (s *ProjectService) RemoveMember(projectID, userID uint64) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if project.OrganizerID == userID {
		return ErrCannotRemoveOrganizer
	}

	if _, err := s.projectRepo.FindMember(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if err := s.projectRepo.RemoveMember(projectID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// GenerateSummary asks the gateway for a status summary and, only on
// success, persists the text and generation time onto the project. A
// gateway failure leaves the project untouched.
func (s *ProjectService) GenerateSummary(ctx context.Context, projectID uint64) (*models.Project, error) {
	if s.summaryService == nil {
		return nil, ErrSummaryNotConfigured
	}

	project, err := s.projectRepo.FindByID(projectID, "Tasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	summary, err := s.summaryService.GenerateProjectSummary(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSummaryGenerationFailed, err)
	}

	now := time.Now()
	project.AISummary = &summary
	project.AISummaryGeneratedAt = &now

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to persist summary: %w", err)
	}

	return project, nil
}
