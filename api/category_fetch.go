package api

import (
	"errors"
	"net/http"
	"strconv"

	"openstudy/shop-api/apperror"
	"openstudy/shop-api/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryList returns all categories. Responses are cached briefly.
func (a *API) CategoryList(c *gin.Context) {
	var categories []model.Category

	if err := a.DB.Order("name asc").Find(&categories).Error; err != nil {
		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	c.JSON(http.StatusOK, categories)
}

// CategoryFetch returns a single category by id
func (a *API) CategoryFetch(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortError(c, apperror.NewBadRequest("Invalid category id"))
		return
	}

	var category model.Category
	if err := a.DB.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortError(c, apperror.NewNotFound("Category not found"))
			return
		}

		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	c.JSON(http.StatusOK, category)
}
