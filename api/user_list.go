package api

import (
	"net/http"
	"strconv"

	"openstudy/shop-api/apperror"
	"openstudy/shop-api/model"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// UserList returns a paginated user listing. Admin only.
func (a *API) UserList(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		abortError(c, apperror.NewBadRequest("Invalid page parameter"))
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		abortError(c, apperror.NewBadRequest("Invalid page_size parameter"))
		return
	}

	var total int64
	if err := a.DB.Model(&model.User{}).Count(&total).Error; err != nil {
		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if total > 0 && page > totalPages {
		abortError(c, apperror.NewBadRequest("Page out of range"))
		return
	}

	var users []model.User
	err = a.DB.
		Order("id asc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).
		Error
	if err != nil {
		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"users":       out,
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": totalPages,
	})
}
