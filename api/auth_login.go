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

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthLogin checks credentials and mints a session token. A login attempt
// against an unverified account re-sends the verification mail instead.
func (a *API) AuthLogin(c *gin.Context) {
	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		abortError(c, apperror.NewBadRequest("Invalid request body"))
		return
	}

	if data.Email == "" {
		abortError(c, apperror.NewBadRequest("Email field can't be empty"))
		return
	}

	if data.Password == "" {
		abortError(c, apperror.NewBadRequest("Password field can't be empty"))
		return
	}

	var user model.User
	if err := a.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortError(c, apperror.NewBadRequest("Invalid user, try again."))
			return
		}

		abortError(c, apperror.NewInternal("Something went wrong, try again.", err))
		return
	}

	if !user.Verified {
		verifToken, err := a.Ledger.Issue(user.ID, model.PurposeEmailVerify)
		if err != nil {
			abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
			return
		}

		// The resend is best effort, a down mailer must not mask the
		// real reason the login failed
		if err := service.SendVerificationMail(a.Mailer, &user, verifToken); err != nil {
			zap.L().Warn("Failed to re-send verification email", zap.Error(err))
		}

		abortError(c, apperror.NewBadRequest("Account not verified, check your email to verify."))
		return
	}

	ok, err := a.Argon.Verify(data.Password, user.PasswordHash)
	if err != nil {
		abortError(c, apperror.NewInternal("Something went wrong, try again.", err))
		return
	}

	if !ok {
		abortError(c, apperror.NewBadRequest("Invalid password, try again."))
		return
	}

	token, err := a.Codec.Issue(user.ID)
	if err != nil {
		abortError(c, apperror.NewInternal("Something went wrong, try again.", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"full_name": user.FullName,
		"email":     user.Email,
		"token":     token,
	})
}
