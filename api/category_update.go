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

type updateCategoryBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryUpdate applies partial updates to a category. Admin only.
func (a *API) CategoryUpdate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortError(c, apperror.NewBadRequest("Invalid category id"))
		return
	}

	var data updateCategoryBody
	if err := c.ShouldBind(&data); err != nil {
		abortError(c, apperror.NewBadRequest("Invalid request body"))
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

	updates := map[string]any{}

	if data.Name != nil {
		if *data.Name == "" {
			abortError(c, apperror.NewBadRequest("Name can't be empty"))
			return
		}
		updates["name"] = *data.Name
	}

	if data.Description != nil {
		updates["description"] = *data.Description
	}

	if len(updates) == 0 {
		abortError(c, apperror.NewBadRequest("Nothing to update"))
		return
	}

	if err := a.DB.Model(&category).Updates(updates).Error; err != nil {
		if isDuplicateKeyErr(err) {
			abortError(c, apperror.NewBadRequest("A category with this name already exists"))
			return
		}

		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	c.JSON(http.StatusOK, category)
}
