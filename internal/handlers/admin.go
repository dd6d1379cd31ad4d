package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/projectflow/project-management-api/internal/dto"
	apierrors "github.com/projectflow/project-management-api/internal/errors"
	"github.com/projectflow/project-management-api/internal/repository"
	"github.com/projectflow/project-management-api/internal/services"
	"github.com/projectflow/project-management-api/internal/utils"
)

// AdminHandler serves administrator-only management endpoints. The whole
// group sits behind RequireAdministrator.
type AdminHandler struct {
	userRepo       repository.UserRepository
	projectService *services.ProjectService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userRepo repository.UserRepository, projectService *services.ProjectService) *AdminHandler {
	return &AdminHandler{
		userRepo:       userRepo,
		projectService: projectService,
	}
}

// ListUsers returns all users, paginated.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userRepo.List(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, params.Page, params.Limit, total))
}

// ListProjects returns all projects, paginated.
func (h *AdminHandler) ListProjects(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.ListProjects(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, params.Page, params.Limit, total))
}

// DeleteUser removes a user and everything referencing them.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userRepo.Delete(userID); err != nil {
		apierrors.InternalError(c, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

// DeleteProject removes a project and its dependents. Deleting an id that
// no longer exists still reports success: the requested outcome holds.
func (h *AdminHandler) DeleteProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.DeleteProject(projectID); err != nil {
		apierrors.InternalError(c, "Failed to delete project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}
