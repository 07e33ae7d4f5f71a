package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdata/tatatertib/internal/middleware"
	"github.com/sekolahdata/tatatertib/internal/services"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{
		categoryService: services.NewCategoryService(db),
	}
}

// List returns the caller's severity categories
// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(middleware.GetScope(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, categories)
}

// Create adds a category
// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(middleware.GetScope(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// Update edits a category; recorded violations keep their frozen values
// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Update(middleware.GetScope(c), uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

// Delete removes a category
// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.categoryService.Delete(middleware.GetScope(c), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
