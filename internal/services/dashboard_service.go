package services

import (
	"fmt"
	"time"

	"github.com/projectflow/project-management-api/internal/constants"
	"github.com/projectflow/project-management-api/internal/models"
	"github.com/projectflow/project-management-api/internal/repository"
)

// Dashboard aggregates a user's view of their work.
type Dashboard struct {
	Projects          []models.Project
	AssignedTasks     []models.Task
	UpcomingDeadlines []models.Task
}

// DashboardService assembles the per-user dashboard.
type DashboardService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *DashboardService {
	return &DashboardService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// GetDashboard returns the user's projects (newest first), their assigned
// tasks (soonest deadline first), and the subset of those tasks due
// within the upcoming-deadline window and not yet completed.
func (s *DashboardService) GetDashboard(userID uint64) (*Dashboard, error) {
	projects, err := s.projectRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	tasks, err := s.taskRepo.ListAssignedToUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}

	now := time.Now()
	horizon := now.Add(constants.UpcomingDeadlineWindow)

	upcoming := make([]models.Task, 0)
	for _, t := range tasks {
		if t.Status == models.TaskStatusCompleted {
			continue
		}
		if t.EndDate.After(now) && !t.EndDate.After(horizon) {
			upcoming = append(upcoming, t)
		}
	}

	return &Dashboard{
		Projects:          projects,
		AssignedTasks:     tasks,
		UpcomingDeadlines: upcoming,
	}, nil
}
