package api

import (
	"errors"
	"net/http"
	"time"

	"openstudy/shop-api/apperror"
	"openstudy/shop-api/model"
	"openstudy/shop-api/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type resendBody struct {
	Email string `json:"email"`
}

// AuthResendVerification re-mails the activation link for an unverified
// account. Rate limited per user with a cooldown so a stuck mailbox can't be
// used to spam someone.
func (a *API) AuthResendVerification(c *gin.Context) {
	var data resendBody
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

	if user.Verified {
		statusMessage(c, http.StatusOK, "info", "You are already verified. Please log in.")
		return
	}

	now := time.Now()

	var resend model.ResendRequest
	err := a.DB.Where("user_id = ?", user.ID).First(&resend).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	if resend.ID != 0 && (resend.Blocked || now.Before(resend.Cooldown)) {
		abortError(c, apperror.NewBadRequest("Please wait before requesting another verification email."))
		return
	}

	verifToken, err := a.Ledger.Issue(user.ID, model.PurposeEmailVerify)
	if err != nil {
		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	if err := service.SendVerificationMail(a.Mailer, &user, verifToken); err != nil {
		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	resend.UserID = user.ID
	resend.LastResend = now
	resend.Cooldown = now.Add(viper.GetDuration("verification.resend_cooldown"))

	if err := a.DB.Save(&resend).Error; err != nil {
		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	statusMessage(c, http.StatusOK, "success", "Verification email sent. Check your inbox.")
}
