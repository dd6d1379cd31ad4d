package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projectflow/project-management-api/internal/dto"
	apierrors "github.com/projectflow/project-management-api/internal/errors"
	"github.com/projectflow/project-management-api/internal/middleware"
	"github.com/projectflow/project-management-api/internal/services"
)

// DashboardHandler serves the per-user overview.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the caller's projects, assigned tasks, and
// upcoming deadlines.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDTO(
		dashboard.Projects,
		dashboard.AssignedTasks,
		dashboard.UpcomingDeadlines,
	))
}
