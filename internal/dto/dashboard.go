package dto

import "github.com/projectflow/project-management-api/internal/models"

// DashboardDTO aggregates a user's projects, assigned tasks, and the
// deadlines coming up soon.
type DashboardDTO struct {
	Projects          []ProjectDTO `json:"projects"`
	AssignedTasks     []TaskDTO    `json:"assigned_tasks"`
	UpcomingDeadlines []TaskDTO    `json:"upcoming_deadlines"`
}

// ToDashboardDTO converts dashboard model slices into the response shape
func ToDashboardDTO(projects []models.Project, assigned, upcoming []models.Task) DashboardDTO {
	projectDTOs := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		projectDTOs[i] = ToProjectDTO(p)
	}

	assignedDTOs := make([]TaskDTO, len(assigned))
	for i, t := range assigned {
		assignedDTOs[i] = ToTaskDTO(t)
	}

	upcomingDTOs := make([]TaskDTO, len(upcoming))
	for i, t := range upcoming {
		upcomingDTOs[i] = ToTaskDTO(t)
	}

	return DashboardDTO{
		Projects:          projectDTOs,
		AssignedTasks:     assignedDTOs,
		UpcomingDeadlines: upcomingDTOs,
	}
}
