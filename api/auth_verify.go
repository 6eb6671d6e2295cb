package api

import (
	"errors"
	"net/http"
	"time"

	"openstudy/shop-api/apperror"
	"openstudy/shop-api/model"
	"openstudy/shop-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthVerify activates the account a verification token belongs to. Calling
// it again for an already verified user is a no-op success.
func (a *API) AuthVerify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		abortError(c, apperror.NewBadRequest("No verification token provided"))
		return
	}

	rec, err := a.Ledger.Resolve(token, model.PurposeEmailVerify)
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			abortError(c, apperror.NewBadRequest("Invalid token, try again."))
			return
		}

		abortError(c, apperror.NewInternal("Something went wrong, try again.", err))
		return
	}

	// Expiry wins over the already-verified shortcut, a stale link is
	// reported as such even when the account no longer needs it
	if time.Now().After(rec.ExpiresAt) {
		abortError(c, apperror.NewBadRequest("Token has expired, please request a new one."))
		return
	}

	var user model.User
	if err := a.DB.Where("id = ?", rec.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortError(c, apperror.NewBadRequest("Invalid user, try again."))
			return
		}

		abortError(c, apperror.NewInternal("Something went wrong, try again.", err))
		return
	}

	if user.Verified {
		statusMessage(c, http.StatusOK, "info", "You are already verified. Please log in.")
		return
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := a.Ledger.Consume(tx, rec); err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("id = ?", user.ID).
			Update("verified", true).
			Error
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			abortError(c, apperror.NewBadRequest("Token has expired, please request a new one."))
		case errors.Is(err, service.ErrTokenUsed):
			abortError(c, apperror.NewBadRequest("Token was used already"))
		default:
			abortError(c, apperror.NewInternal("Something went wrong, try again.", err))
		}
		return
	}

	// Best effort, a lost welcome mail never fails the verification
	go func() {
		if err := service.SendWelcomeMail(a.Mailer, &user); err != nil {
			zap.L().Warn("Failed to send welcome email", zap.Error(err))
		}
	}()

	statusMessage(c, http.StatusOK, "success", "Email verified successfully!")
}
