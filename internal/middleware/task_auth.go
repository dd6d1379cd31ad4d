package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/projectflow/project-management-api/internal/authz"
	"github.com/projectflow/project-management-api/internal/constants"
	"github.com/projectflow/project-management-api/internal/database"
	apierrors "github.com/projectflow/project-management-api/internal/errors"
	"github.com/projectflow/project-management-api/internal/models"
)

// RequireTaskAccess loads the task named in the URL together with its
// project and verifies the caller may work on it. Any project member
// qualifies; ownership is not required.
func RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		user, ok := loadCurrentUser(c)
		if !ok {
			return
		}

		var task models.Task
		if err := database.GetDB().Preload("Project").First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		isMember, err := hasMembership(task.ProjectID, user.ID)
		if err != nil {
			apierrors.InternalError(c, "Failed to check project membership")
			c.Abort()
			return
		}

		if !authz.CanMutateTask(user, &task.Project, isMember) {
			apierrors.Forbidden(c, "You do not have access to this task")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCurrentUser, user)
		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// TaskFromContext returns the caller and task stored by RequireTaskAccess.
func TaskFromContext(c *gin.Context) (*models.User, *models.Task, bool) {
	userValue, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return nil, nil, false
	}
	user, ok := userValue.(*models.User)
	if !ok {
		return nil, nil, false
	}

	taskValue, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return nil, nil, false
	}
	task, ok := taskValue.(models.Task)
	if !ok {
		return nil, nil, false
	}

	return user, &task, true
}
