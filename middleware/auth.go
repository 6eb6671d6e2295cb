package middleware

import (
	"errors"

	"openstudy/shop-api/apperror"
	"openstudy/shop-api/model"
	"openstudy/shop-api/pkg/security"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHeader carries the session token on every authenticated request
const AuthHeader = "x-auth-token"

const currentUserKey = "currentUser"

// NewAuthMiddleware validates the session token from the x-auth-token header,
// resolves it to a live user and attaches the user to the request context.
// Any failure short-circuits with 401 before the protected handler runs.
func NewAuthMiddleware(d *gorm.DB, codec *security.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader(AuthHeader)
		if tokenStr == "" {
			abortError(c, apperror.NewUnauthenticated("Not authenticated"))
			return
		}

		userID, err := codec.Validate(tokenStr)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, security.ErrTokenExpired) {
				msg = "Token expired"
			}

			abortError(c, apperror.NewUnauthenticated(msg))
			return
		}

		// The token may outlive its user, e.g. when the account was
		// deleted after issuance
		var user model.User
		err = d.Where("id = ?", userID).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortError(c, apperror.NewUnauthenticated("Not authenticated"))
				return
			}

			abortError(c, apperror.NewInternal("Internal server error", err))
			return
		}

		c.Set(currentUserKey, &user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

// CurrentUser returns the user resolved by the auth middleware, or nil when
// the request never passed through it
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}

	user, ok := v.(*model.User)
	if !ok {
		return nil
	}

	return user
}
