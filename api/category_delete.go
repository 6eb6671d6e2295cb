package api

import (
	"net/http"
	"strconv"

	"openstudy/shop-api/apperror"
	"openstudy/shop-api/model"

	"github.com/gin-gonic/gin"
)

// CategoryDelete removes a category by id. Admin only.
func (a *API) CategoryDelete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortError(c, apperror.NewBadRequest("Invalid category id"))
		return
	}

	res := a.DB.Where("id = ?", id).Delete(&model.Category{})
	if res.Error != nil {
		abortError(c, apperror.NewInternal("Something went wrong, please try again.", res.Error))
		return
	}

	if res.RowsAffected == 0 {
		abortError(c, apperror.NewNotFound("Category not found"))
		return
	}

	statusMessage(c, http.StatusOK, "success", "Category deleted successfully.")
}
