package api

import (
	"net/http"

	"openstudy/shop-api/apperror"
	"openstudy/shop-api/model"

	"github.com/gin-gonic/gin"
)

type createCategoryBody struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CategoryCreate adds a new product category. Admin only.
func (a *API) CategoryCreate(c *gin.Context) {
	var data createCategoryBody
	if err := c.ShouldBind(&data); err != nil {
		abortError(c, apperror.NewBadRequest("Invalid request body"))
		return
	}

	if data.Name == "" {
		abortError(c, apperror.NewBadRequest("Name can't be empty"))
		return
	}

	category := model.Category{
		Name:        data.Name,
		Description: data.Description,
	}

	if err := a.DB.Create(&category).Error; err != nil {
		if isDuplicateKeyErr(err) {
			abortError(c, apperror.NewBadRequest("A category with this name already exists"))
			return
		}

		abortError(c, apperror.NewInternal("Something went wrong, please try again.", err))
		return
	}

	c.JSON(http.StatusCreated, category)
}
