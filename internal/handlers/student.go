package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdata/tatatertib/internal/middleware"
	"github.com/sekolahdata/tatatertib/internal/services"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

type StudentHandler struct {
	studentService *services.StudentService
}

func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{
		studentService: services.NewStudentService(db),
	}
}

// History returns a student's violation record and accumulated points
// GET /api/students/:id/history
func (h *StudentHandler) History(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid student id")
		return
	}

	history, err := h.studentService.History(middleware.GetScope(c), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, history)
}

// NamesByClass returns student names of a classroom, for the entry form
// GET /api/classes/:name/students
func (h *StudentHandler) NamesByClass(c *gin.Context) {
	names, err := h.studentService.ListNamesByClass(middleware.GetScope(c), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, names)
}
