package repository

import (
	"github.com/projectflow/project-management-api/internal/models"
	"github.com/projectflow/project-management-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with roles preloaded
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email with roles preloaded
	FindByEmail(email string) (*models.User, error)

	// List retrieves users with pagination
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// GrantRole grants a role to a user; granting an already-held role is
	// a no-op
	GrantRole(userID uint64, role models.Role) error

	// Delete removes a user and everything referencing them
	Delete(id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithOrganizer creates a project and the organizer's
	// membership row within a single transaction
	CreateWithOrganizer(project *models.Project, member *models.ProjectMember) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List retrieves all projects with pagination
	List(params utils.PaginationParams) ([]models.Project, int64, error)

	// ListForUser lists projects the user organizes or is a member of,
	// newest first
	ListForUser(userID uint64) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project and all dependent rows
	Delete(id uint64) error

	// AddMember adds a member to a project
	AddMember(member *models.ProjectMember) error

	// RemoveMember removes a member from a project
	RemoveMember(projectID, userID uint64) error

	// FindMember finds a specific project member
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// ListMembers lists all members of a project
	ListMembers(projectID uint64) ([]models.ProjectMember, error)
}

// TaskRepository defines the interface for task and comment data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject retrieves a project's tasks, soonest deadline first
	ListByProject(projectID uint64) ([]models.Task, error)

	// ListAssignedToUser retrieves tasks assigned to a user, soonest
	// deadline first
	ListAssignedToUser(userID uint64) ([]models.Task, error)

	// Update writes a task's mutable fields guarded by its version;
	// returns ErrStaleTask when the row changed or vanished underneath
	Update(task *models.Task) error

	// Delete deletes a task and its comments
	Delete(id uint64) error

	// AddComment attaches a comment to a task
	AddComment(comment *models.Comment) error
}
