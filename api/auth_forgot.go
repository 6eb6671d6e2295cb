package api

import (
	"errors"
	"net/http"

	"openstudy/shop-api/apperror"
	"openstudy/shop-api/model"
	"openstudy/shop-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type forgotPasswordBody struct {
	Email string `json:"email"`
}

// AuthForgotPassword issues a password-reset token for a verified account and
// mails the reset link. The mail is dispatched fire-and-forget.
func (a *API) AuthForgotPassword(c *gin.Context) {
	var data forgotPasswordBody
	if err := c.ShouldBind(&data); err != nil {
		abortError(c, apperror.NewBadRequest("Invalid request body"))
		return
	}

	if data.Email == "" {
		abortError(c, apperror.NewBadRequest("Email field can't be empty"))
		return
	}

	var user model.User
	if err := a.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortError(c, apperror.NewBadRequest("User not found."))
			return
		}

		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	if !user.Verified {
		abortError(c, apperror.NewBadRequest("User is not verified."))
		return
	}

	resetToken, err := a.Ledger.Issue(user.ID, model.PurposePasswordReset)
	if err != nil {
		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	go func() {
		if err := service.SendPasswordResetMail(a.Mailer, &user, resetToken); err != nil {
			zap.L().Warn("Failed to send password reset email", zap.Error(err))
		}
	}()

	statusMessage(c, http.StatusOK, "success", "Reset password link has been sent to your email.")
}
