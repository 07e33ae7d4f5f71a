package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdata/tatatertib/internal/middleware"
	"github.com/sekolahdata/tatatertib/internal/services"
	"github.com/sekolahdata/tatatertib/internal/utils"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

type SchoolHandler struct {
	schoolService *services.SchoolService
	auditService  *services.AuditService
	uploadDir     string
}

func NewSchoolHandler(db *gorm.DB, uploadDir string) *SchoolHandler {
	return &SchoolHandler{
		schoolService: services.NewSchoolService(db),
		auditService:  services.NewAuditService(db),
		uploadDir:     uploadDir,
	}
}

// Provision creates a school, its first admin and the default catalogues
// POST /api/schools
func (h *SchoolHandler) Provision(c *gin.Context) {
	var req services.ProvisionSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.schoolService.Provision(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	callerID := middleware.GetUserID(c)
	h.auditService.Info("school", "provision", "provisioned school "+result.School.Name, &callerID, &result.School.ID, c.ClientIP())

	response.Created(c, result)
}

// List returns all schools
// GET /api/schools
func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.schoolService.List()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, schools)
}

// GetByID returns one school
// GET /api/schools/:id
func (h *SchoolHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid school id")
		return
	}

	school, err := h.schoolService.Get(middleware.GetScope(c), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, school)
}

// Delete removes an empty school
// DELETE /api/schools/:id
func (h *SchoolHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid school id")
		return
	}

	if err := h.schoolService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	callerID := middleware.GetUserID(c)
	h.auditService.Info("school", "delete", "deleted school "+c.Param("id"), &callerID, nil, c.ClientIP())

	response.Success(c, nil)
}

// GetProfile returns the caller's own school
// GET /api/settings/school
func (h *SchoolHandler) GetProfile(c *gin.Context) {
	sc := middleware.GetScope(c)
	school, err := h.schoolService.Get(sc, sc.MustSchoolID())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, school)
}

// UpdateProfile edits the caller's own school, optionally with a new logo
// PUT /api/settings/school
func (h *SchoolHandler) UpdateProfile(c *gin.Context) {
	var form struct {
		Name    *string `form:"name"`
		Address *string `form:"address"`
	}
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	req := services.UpdateSchoolRequest{Name: form.Name, Address: form.Address}

	if file, err := c.FormFile("logo"); err == nil {
		filename, err := utils.SaveImage(c, file, h.uploadDir)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		req.LogoFile = &filename
	}

	school, err := h.schoolService.UpdateProfile(middleware.GetScope(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, school)
}
