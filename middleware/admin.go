package middleware

import (
	"openstudy/shop-api/apperror"
	"openstudy/shop-api/model"

	"github.com/gin-gonic/gin"
)

// NewAdminMiddleware requires the user resolved by the auth middleware to
// hold the admin role. It must be registered after NewAuthMiddleware.
func NewAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortError(c, apperror.NewUnauthenticated("Not authenticated"))
			return
		}

		if user.Role != model.RoleAdmin {
			abortError(c, apperror.NewForbidden("Forbidden: Admin access required"))
			return
		}

		c.Next()
	}
}
