package middleware

import (
	"openstudy/shop-api/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// abortError short-circuits the request with the status and message the
// error's kind maps to, mirroring the response shape the handlers emit
func abortError(c *gin.Context, err error) {
	requestID := c.MustGet("requestID").(string)

	appErr := apperror.FromError(err)
	if appErr.Err != nil {
		zap.L().Error(appErr.Message, zap.Error(appErr.Err), zap.String("requestID", requestID))
	}

	c.AbortWithStatusJSON(appErr.Status(), gin.H{
		"error":     appErr.Message,
		"requestID": requestID,
	})
}
