package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/projectflow/project-management-api/internal/authz"
	"github.com/projectflow/project-management-api/internal/constants"
	apierrors "github.com/projectflow/project-management-api/internal/errors"
)

// RequireAdministrator restricts a route group to administrators.
func RequireAdministrator() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadCurrentUser(c)
		if !ok {
			return
		}

		if !authz.IsAdministrator(user) {
			apierrors.Forbidden(c, "Administrator access required")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCurrentUser, user)
		c.Next()
	}
}
