package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdata/tatatertib/internal/middleware"
	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/internal/services"
	"github.com/sekolahdata/tatatertib/internal/utils"
	"github.com/sekolahdata/tatatertib/pkg/logger"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

type ViolationHandler struct {
	violationService *services.ViolationService
	uploadDir        string
}

func NewViolationHandler(db *gorm.DB, uploadDir string) *ViolationHandler {
	return &ViolationHandler{
		violationService: services.NewViolationService(db, uploadDir),
		uploadDir:        uploadDir,
	}
}

// List returns the caller's violations, filtered and paginated
// GET /api/violations
func (h *ViolationHandler) List(c *gin.Context) {
	var req services.ViolationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.violationService.List(middleware.GetScope(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, result)
}

// GetByID returns one violation with its evidence
// GET /api/violations/:id
func (h *ViolationHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid violation id")
		return
	}

	violation, err := h.violationService.Get(middleware.GetScope(c), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, violation)
}

// Record creates a violation from the multipart entry form with up to the
// photo cap of evidence files
// POST /api/violations
func (h *ViolationHandler) Record(c *gin.Context) {
	var req services.RecordViolationRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	form, err := c.MultipartForm()
	if err == nil {
		files := form.File["photos"]
		if len(files) > models.MaxEvidencePhotos {
			logger.Debug().Int("dropped", len(files)-models.MaxEvidencePhotos).Msg("evidence uploads beyond the cap dropped")
			files = files[:models.MaxEvidencePhotos]
		}
		for _, file := range files {
			filename, err := utils.SaveImage(c, file, h.uploadDir)
			if err != nil {
				h.removeSaved(req.PhotoFilenames)
				response.BadRequest(c, err.Error())
				return
			}
			req.PhotoFilenames = append(req.PhotoFilenames, filename)
		}
	}

	violation, err := h.violationService.Record(middleware.GetScope(c), &req, middleware.GetUsername(c))
	if err != nil {
		h.removeSaved(req.PhotoFilenames)
		response.Error(c, err)
		return
	}
	response.Created(c, violation)
}

// removeSaved cleans up stored uploads when the record was not written.
func (h *ViolationHandler) removeSaved(filenames []string) {
	for _, filename := range filenames {
		if err := utils.RemoveStoredFile(h.uploadDir, filename); err != nil {
			logger.Warn().Err(err).Str("filename", filename).Msg("failed to remove orphaned upload")
		}
	}
}

// Delete removes a violation with its evidence
// DELETE /api/violations/:id
func (h *ViolationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid violation id")
		return
	}

	if err := h.violationService.Delete(middleware.GetScope(c), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
