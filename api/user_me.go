package api

import (
	"net/http"

	"openstudy/shop-api/middleware"
	"openstudy/shop-api/model"

	"github.com/gin-gonic/gin"
)

type userResponse struct {
	ID           int     `json:"id"`
	UUID         string  `json:"uuid"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	ProfilePic   *string `json:"profile_pic"`
	GithubLink   *string `json:"github_link"`
	LinkedinLink *string `json:"linkedin_link"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:           u.ID,
		UUID:         u.UUID,
		FullName:     u.FullName,
		Email:        u.Email,
		ProfilePic:   u.ProfilePic,
		GithubLink:   u.GithubLink,
		LinkedinLink: u.LinkedinLink,
	}
}

// UserMe returns the public profile of the logged in user
func (a *API) UserMe(c *gin.Context) {
	user := middleware.CurrentUser(c)

	c.JSON(http.StatusOK, toUserResponse(user))
}
