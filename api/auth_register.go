package api

import (
	"errors"
	"net/http"
	"strings"

	"openstudy/shop-api/apperror"
	"openstudy/shop-api/model"
	"openstudy/shop-api/service"
	"openstudy/shop-api/validators"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type registerBody struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

const duplicateEmailMsg = "Email already taken, try again with a different one."

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// Fallback for dialects gorm doesn't translate
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// AuthRegister creates an unverified account and mails the activation link.
// A failed mail send is a hard failure, but the created account stays and can
// be recovered through resend-verification or a later login attempt.
func (a *API) AuthRegister(c *gin.Context) {
	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		abortError(c, apperror.NewBadRequest("Invalid request body"))
		return
	}

	if data.FullName == "" {
		abortError(c, apperror.NewBadRequest("Full name can't be empty"))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		abortError(c, apperror.NewBadRequest(err.Error()))
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		abortError(c, apperror.NewBadRequest(err.Error()))
		return
	}

	var found bool

	r := a.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", data.Email).
		Find(&found)
	if r.Error != nil {
		abortError(c, apperror.NewInternal("Something went wrong, please try again.", r.Error))
		return
	}

	if found {
		abortError(c, apperror.NewBadRequest(duplicateEmailMsg))
		return
	}

	hash, err := a.Argon.Hash(data.Password)
	if err != nil {
		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	user := model.User{
		UUID:         uuid.NewString(),
		Role:         model.RoleUser,
		FullName:     data.FullName,
		Email:        data.Email,
		PasswordHash: hash,
	}

	if err := a.DB.Create(&user).Error; err != nil {
		// The count check above races with concurrent registrations,
		// the unique constraint is the source of truth
		if isDuplicateKeyErr(err) {
			abortError(c, apperror.NewBadRequest(duplicateEmailMsg))
			return
		}

		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
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

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Registration successful! Check your email to verify your account.",
	})
}
