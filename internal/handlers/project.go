package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/projectflow/project-management-api/internal/dto"
	apierrors "github.com/projectflow/project-management-api/internal/errors"
	"github.com/projectflow/project-management-api/internal/middleware"
	"github.com/projectflow/project-management-api/internal/services"
	"github.com/projectflow/project-management-api/internal/utils"
)

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a new project owned by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Title       string `json:"title" binding:"required,max=100"`
		Description string `json:"description" binding:"required,max=1000"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		OrganizerID: userID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns all projects, paginated.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.ListProjects(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, params.Page, params.Limit, total))
}

// GetProject returns project details with members and tasks. Access is
// enforced by RequireProjectAccess.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	_, project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	detail, err := h.projectService.GetProjectDetail(project.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*detail))
}

// UpdateProject updates a project's title and description.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	_, project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type UpdateProjectRequest struct {
		Title       string `json:"title" binding:"required,max=100"`
		Description string `json:"description" binding:"required,max=1000"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.projectService.UpdateProject(project.ID, services.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated))
}

// DeleteProject removes a project and its members, tasks, and comments.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	_, project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if err := h.projectService.DeleteProject(project.ID); err != nil {
		apierrors.InternalError(c, "Failed to delete project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// AddMember grants a user access to the project by email.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	_, project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type AddMemberRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.projectService.AddMemberByEmail(project.ID, req.Email)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectMemberDTO(*member))
}

// RemoveMember revokes a user's project membership.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	_, project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.projectService.RemoveMember(project.ID, targetID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

// GenerateSummary asks the gateway for an AI status summary and persists
// it on success. A gateway failure is reported without touching the
// project.
func (h *ProjectHandler) GenerateSummary(c *gin.Context) {
	_, project, ok := middleware.ProjectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	updated, err := h.projectService.GenerateSummary(c.Request.Context(), project.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated))
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrMemberUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyProjectMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrProjectMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCannotRemoveOrganizer):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrSummaryNotConfigured):
		apierrors.RespondWithError(c, http.StatusServiceUnavailable,
			apierrors.NewAPIError(apierrors.ErrCodeExternalService, err.Error()))
	case errors.Is(err, services.ErrSummaryGenerationFailed):
		apierrors.BadGateway(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
