package services

import (
	"time"

	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/pkg/logger"
	"gorm.io/gorm"
)

// AuditService records administrative actions to the database. Writes are
// best-effort: an audit insert failure is logged and never fails the request
// that triggered it.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) Info(module, action, message string, userID, schoolID *uint, ip string) {
	s.write("info", module, action, message, userID, schoolID, ip)
}

func (s *AuditService) Warning(module, action, message string, userID, schoolID *uint, ip string) {
	s.write("warning", module, action, message, userID, schoolID, ip)
}

func (s *AuditService) Error(module, action, message string, userID, schoolID *uint, ip string) {
	s.write("error", module, action, message, userID, schoolID, ip)
}

func (s *AuditService) write(level, module, action, message string, userID, schoolID *uint, ip string) {
	entry := &models.AuditLog{
		Level:     level,
		Module:    module,
		Action:    action,
		Message:   message,
		UserID:    userID,
		SchoolID:  schoolID,
		IP:        ip,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(entry).Error; err != nil {
		logger.Error().Err(err).Str("module", module).Str("action", action).Msg("failed to write audit log")
	}
}

type AuditLogListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Level    string `form:"level"`
	Module   string `form:"module"`
	Search   string `form:"search"`
}

type AuditLogListResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []models.AuditLog `json:"items"`
}

// List returns paginated audit entries, newest first.
func (s *AuditService) List(req *AuditLogListRequest) (*AuditLogListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	query := s.db.Model(&models.AuditLog{})
	if req.Level != "" {
		query = query.Where("level = ?", req.Level)
	}
	if req.Module != "" {
		query = query.Where("module = ?", req.Module)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("action LIKE ? OR message LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var items []models.AuditLog
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return &AuditLogListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

// Cleanup removes audit entries older than retentionDays and returns the
// number deleted.
func (s *AuditService) Cleanup(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}
