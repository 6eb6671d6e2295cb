package api

import (
	"net/http"

	"openstudy/shop-api/apperror"
	"openstudy/shop-api/middleware"
	"openstudy/shop-api/model"

	"github.com/gin-gonic/gin"
)

type updateUserBody struct {
	FullName     *string `json:"full_name"`
	ProfilePic   *string `json:"profile_pic"`
	GithubLink   *string `json:"github_link"`
	LinkedinLink *string `json:"linkedin_link"`
}

// UserUpdate applies partial profile updates to the logged in user
func (a *API) UserUpdate(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var data updateUserBody
	if err := c.ShouldBind(&data); err != nil {
		abortError(c, apperror.NewBadRequest("Invalid request body"))
		return
	}

	updates := map[string]any{}

	if data.FullName != nil {
		if *data.FullName == "" {
			abortError(c, apperror.NewBadRequest("Full name can't be empty"))
			return
		}
		updates["full_name"] = *data.FullName
	}

	if data.ProfilePic != nil {
		updates["profile_pic"] = *data.ProfilePic
	}

	if data.GithubLink != nil {
		updates["github_link"] = *data.GithubLink
	}

	if data.LinkedinLink != nil {
		updates["linkedin_link"] = *data.LinkedinLink
	}

	if len(updates) == 0 {
		abortError(c, apperror.NewBadRequest("Nothing to update"))
		return
	}

	err := a.DB.Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(updates).
		Error
	if err != nil {
		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	var updated model.User
	if err := a.DB.Where("id = ?", user.ID).First(&updated).Error; err != nil {
		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	c.JSON(http.StatusOK, toUserResponse(&updated))
}
