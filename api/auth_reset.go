package api

import (
	"errors"
	"net/http"

	"openstudy/shop-api/apperror"
	"openstudy/shop-api/model"
	"openstudy/shop-api/service"
	"openstudy/shop-api/validators"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type resetPasswordBody struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// AuthResetPassword replaces the password of the user owning a valid reset
// token. The token is consumed in the same transaction as the password write.
func (a *API) AuthResetPassword(c *gin.Context) {
	var data resetPasswordBody
	if err := c.ShouldBind(&data); err != nil {
		abortError(c, apperror.NewBadRequest("Invalid request body"))
		return
	}

	if data.Token == "" {
		abortError(c, apperror.NewBadRequest("No reset token provided"))
		return
	}

	if err := validators.PasswordValidator(data.NewPassword); err != nil {
		abortError(c, apperror.NewBadRequest(err.Error()))
		return
	}

	rec, err := a.Ledger.Resolve(data.Token, model.PurposePasswordReset)
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			abortError(c, apperror.NewBadRequest("Invalid or expired token."))
			return
		}

		abortError(c, apperror.NewInternal("Something went wrong, try again.", err))
		return
	}

	var user model.User
	if err := a.DB.Where("id = ?", rec.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortError(c, apperror.NewBadRequest("User not found."))
			return
		}

		abortError(c, apperror.NewInternal("Something went wrong, try again.", err))
		return
	}

	hash, err := a.Argon.Hash(data.NewPassword)
	if err != nil {
		abortError(c, apperror.NewInternal("Something went wrong, try again.", err))
		return
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := a.Ledger.Consume(tx, rec); err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("id = ?", user.ID).
			Update("password_hash", hash).
			Error
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			abortError(c, apperror.NewBadRequest("Token has expired."))
		case errors.Is(err, service.ErrTokenUsed):
			abortError(c, apperror.NewBadRequest("Token was used already"))
		default:
			abortError(c, apperror.NewInternal("Something went wrong, try again.", err))
		}
		return
	}

	statusMessage(c, http.StatusOK, "success", "Password reset successfully.")
}
