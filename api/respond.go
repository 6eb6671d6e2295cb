package api

import (
	"openstudy/shop-api/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// abortError maps an error to its HTTP status and writes the user-safe
// message. Infrastructure detail is logged here and never leaves the server.
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

func statusMessage(c *gin.Context, code int, status, message string) {
	c.JSON(code, gin.H{
		"status":  status,
		"message": message,
	})
}
