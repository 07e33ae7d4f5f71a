package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdata/tatatertib/internal/middleware"
	"github.com/sekolahdata/tatatertib/internal/services"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(db *gorm.DB, uploadDir string) *ExportHandler {
	return &ExportHandler{
		exportService: services.NewExportService(services.NewViolationService(db, uploadDir)),
	}
}

// JSON returns the filtered violation set as a JSON list
// GET /api/export/violations/list
func (h *ExportHandler) JSON(c *gin.Context) {
	var req services.ViolationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, err := h.exportService.JSONList(middleware.GetScope(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, items)
}

// PDF streams the filtered violation set as a printable report
// GET /api/export/violations/pdf
func (h *ExportHandler) PDF(c *gin.Context) {
	var req services.ViolationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	content, err := h.exportService.PDF(middleware.GetScope(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+services.PDFFilename(time.Now()))
	c.Data(http.StatusOK, "application/pdf", content)
}
