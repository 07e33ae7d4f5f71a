package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdata/tatatertib/internal/middleware"
	"github.com/sekolahdata/tatatertib/internal/services"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

type StaffHandler struct {
	userService *services.UserService
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{
		userService: services.NewUserService(db),
	}
}

// List returns the caller's school staff accounts
// GET /api/settings/users
func (h *StaffHandler) List(c *gin.Context) {
	users, err := h.userService.ListStaff(middleware.GetScope(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, users)
}

// Create adds a staff account to the caller's school
// POST /api/settings/users
func (h *StaffHandler) Create(c *gin.Context) {
	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.CreateStaff(middleware.GetScope(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// Delete removes a staff account from the caller's school
// DELETE /api/settings/users/:id
func (h *StaffHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid staff id")
		return
	}

	if err := h.userService.DeleteStaff(middleware.GetScope(c), middleware.GetUserID(c), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
