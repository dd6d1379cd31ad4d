package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/projectflow/project-management-api/internal/authz"
	"github.com/projectflow/project-management-api/internal/constants"
	"github.com/projectflow/project-management-api/internal/database"
	apierrors "github.com/projectflow/project-management-api/internal/errors"
	"github.com/projectflow/project-management-api/internal/models"
	"gorm.io/gorm"
)

// RequireProjectAccess loads the project named in the URL and verifies the
// caller may see it. Existence is checked before authorization, so a
// missing project is 404 and a denied one is 403.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		user, ok := loadCurrentUser(c)
		if !ok {
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		isMember, err := hasMembership(project.ID, user.ID)
		if err != nil {
			apierrors.InternalError(c, "Failed to check project membership")
			c.Abort()
			return
		}

		if !authz.CanAccessProject(user, &project, isMember) {
			apierrors.Forbidden(c, "You do not have access to this project")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCurrentUser, user)
		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// RequireProjectManage runs after RequireProjectAccess and additionally
// requires management rights (administrator or organizer).
func RequireProjectManage() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, project, ok := ProjectFromContext(c)
		if !ok {
			apierrors.InternalError(c, "Project access check missing")
			c.Abort()
			return
		}

		if !authz.CanManageProject(user, project) {
			apierrors.Forbidden(c, "Only the organizer or an administrator can manage this project")
			c.Abort()
			return
		}

		c.Next()
	}
}

// ProjectFromContext returns the caller and project stored by
// RequireProjectAccess.
func ProjectFromContext(c *gin.Context) (*models.User, *models.Project, bool) {
	userValue, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return nil, nil, false
	}
	user, ok := userValue.(*models.User)
	if !ok {
		return nil, nil, false
	}

	projectValue, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return nil, nil, false
	}
	project, ok := projectValue.(models.Project)
	if !ok {
		return nil, nil, false
	}

	return user, &project, true
}

// loadCurrentUser resolves the session user with their roles. Responds
// and aborts on failure.
func loadCurrentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		c.Abort()
		return nil, false
	}

	var user models.User
	if err := database.GetDB().Preload("Roles").First(&user, userID).Error; err != nil {
		apierrors.Unauthorized(c, "Unknown user")
		c.Abort()
		return nil, false
	}

	return &user, true
}

// hasMembership reports whether a ProjectMember row exists for the pair.
// A missing row is not an error; anything else is.
func hasMembership(projectID, userID uint64) (bool, error) {
	var member models.ProjectMember
	err := database.GetDB().
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
