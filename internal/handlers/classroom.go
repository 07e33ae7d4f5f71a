package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdata/tatatertib/internal/middleware"
	"github.com/sekolahdata/tatatertib/internal/services"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

type ClassroomHandler struct {
	classroomService *services.ClassroomService
}

func NewClassroomHandler(db *gorm.DB) *ClassroomHandler {
	return &ClassroomHandler{
		classroomService: services.NewClassroomService(db),
	}
}

// List returns the caller's classrooms with student counts
// GET /api/classrooms
func (h *ClassroomHandler) List(c *gin.Context) {
	classrooms, err := h.classroomService.List(middleware.GetScope(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, classrooms)
}

// Create adds a classroom
// POST /api/classrooms
func (h *ClassroomHandler) Create(c *gin.Context) {
	var req services.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	classroom, err := h.classroomService.Create(middleware.GetScope(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, classroom)
}

// Delete removes an empty classroom
// DELETE /api/classrooms/:id
func (h *ClassroomHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid classroom id")
		return
	}

	if err := h.classroomService.Delete(middleware.GetScope(c), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ImportStudents bulk-creates students from a pasted name list
// POST /api/classrooms/:id/import
func (h *ClassroomHandler) ImportStudents(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid classroom id")
		return
	}

	var req services.ImportStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	count, err := h.classroomService.ImportStudents(middleware.GetScope(c), uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"imported": count})
}

// TransferStudents moves students into the classroom named in the path
// POST /api/classrooms/:id/transfer
func (h *ClassroomHandler) TransferStudents(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid classroom id")
		return
	}

	var req services.TransferStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.TargetClassroomID = uint(id)

	moved, err := h.classroomService.TransferStudents(middleware.GetScope(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"moved": moved})
}
