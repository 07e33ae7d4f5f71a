package services

import (
	"errors"
	"time"

	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/internal/scope"
	"github.com/sekolahdata/tatatertib/internal/utils"
	"github.com/sekolahdata/tatatertib/pkg/logger"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

// Form layouts for the occurrence timestamp. The entry form posts the
// date and time-of-day as separate fields.
const (
	occurredDateLayout = "02/01/2006"
	occurredTimeLayout = "15:04"
)

type ViolationService struct {
	db        *gorm.DB
	uploadDir string
}

func NewViolationService(db *gorm.DB, uploadDir string) *ViolationService {
	return &ViolationService{db: db, uploadDir: uploadDir}
}

type RecordViolationRequest struct {
	StudentName   string `form:"student_name" binding:"required"`
	ClassroomName string `form:"classroom_name" binding:"required"`
	CategoryID    uint   `form:"category_id" binding:"required"`
	RuleCode      string `form:"rule_code"`
	Description   string `form:"description"`
	Date          string `form:"date"`
	Time          string `form:"time"`

	// Stored evidence filenames, saved by the handler before the record is
	// written.
	PhotoFilenames []string `form:"-"`
}

// Record writes one violation with frozen category name and points, plus up
// to the photo cap of evidence rows, in a single transaction. Name lookups
// are scoped: a classroom of another school is simply not found, and a
// missing student is a soft validation failure so the form can redisplay.
func (s *ViolationService) Record(sc scope.Scope, req *RecordViolationRequest, recordedBy string) (*models.Violation, error) {
	schoolID, bound := sc.SchoolID()
	if !bound {
		return nil, response.NewForbidden("no school bound to this account")
	}

	var classroom models.Classroom
	if err := s.db.Where("name = ? AND school_id = ?", req.ClassroomName, schoolID).First(&classroom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("classroom not found")
		}
		return nil, err
	}

	var student models.Student
	err := s.db.Where("name = ? AND classroom_id = ? AND school_id = ?", req.StudentName, classroom.ID, schoolID).
		First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewBadRequest("student not found in that classroom")
		}
		return nil, err
	}

	var category models.ViolationCategory
	if err := s.db.Where("id = ? AND school_id = ?", req.CategoryID, schoolID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("category not found")
		}
		return nil, err
	}

	occurredAt := parseOccurredAt(req.Date, req.Time, time.Now())

	photos := req.PhotoFilenames
	if len(photos) > models.MaxEvidencePhotos {
		logger.Debug().
			Int("dropped", len(photos)-models.MaxEvidencePhotos).
			Msg("evidence photos beyond the cap dropped")
		photos = photos[:models.MaxEvidencePhotos]
	}

	violation := models.Violation{
		StudentID:    student.ID,
		CategoryName: category.Name,
		Points:       category.Points,
		RuleCode:     req.RuleCode,
		Description:  req.Description,
		OccurredAt:   occurredAt,
		RecordedBy:   recordedBy,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&violation).Error; err != nil {
			return err
		}
		for _, filename := range photos {
			photo := models.ViolationPhoto{ViolationID: violation.ID, Filename: filename}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
			violation.Photos = append(violation.Photos, photo)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &violation, nil
}

// parseOccurredAt combines the posted date and time-of-day. When either part
// is missing or malformed the whole pair falls back to now; the discarded
// input is logged since the client gets no error for it.
func parseOccurredAt(dateStr, timeStr string, now time.Time) time.Time {
	if dateStr == "" {
		return now
	}

	d, err := time.ParseInLocation(occurredDateLayout, dateStr, now.Location())
	if err != nil {
		logger.Warn().Str("date", dateStr).Msg("unparsable occurrence date, falling back to now")
		return now
	}

	tm, err := time.ParseInLocation(occurredTimeLayout, timeStr, now.Location())
	if err != nil {
		logger.Warn().Str("date", dateStr).Str("time", timeStr).Msg("unparsable occurrence time, falling back to now")
		return now
	}

	return time.Date(d.Year(), d.Month(), d.Day(), tm.Hour(), tm.Minute(), 0, 0, now.Location())
}

// Get returns one violation with its evidence, scoped through the student.
func (s *ViolationService) Get(sc scope.Scope, id uint) (*models.Violation, error) {
	query := s.db.Joins("JOIN students ON students.id = violations.student_id").
		Where("violations.id = ?", id)
	query = sc.WhereColumn(query, "students.school_id")

	var violation models.Violation
	if err := query.Preload("Photos").First(&violation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("violation not found")
		}
		return nil, err
	}
	return &violation, nil
}

// Delete removes a violation with its evidence rows. Stored files are
// removed best-effort after the transaction commits; a file that cannot be
// removed never resurrects the record.
func (s *ViolationService) Delete(sc scope.Scope, id uint) error {
	query := s.db.Joins("JOIN students ON students.id = violations.student_id").
		Where("violations.id = ?", id)
	query = sc.WhereColumn(query, "students.school_id")

	var violation models.Violation
	if err := query.First(&violation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("violation not found")
		}
		return err
	}

	var photos []models.ViolationPhoto
	if err := s.db.Where("violation_id = ?", violation.ID).Find(&photos).Error; err != nil {
		logger.Warn().Err(err).Uint("violation_id", violation.ID).Msg("failed to load evidence rows for file cleanup")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("violation_id = ?", violation.ID).Delete(&models.ViolationPhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&violation).Error
	})
	if err != nil {
		return err
	}

	for _, photo := range photos {
		if err := utils.RemoveStoredFile(s.uploadDir, photo.Filename); err != nil {
			logger.Warn().Err(err).Str("filename", photo.Filename).Msg("failed to remove evidence file")
		}
	}
	return nil
}

type ViolationListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	Category  string `form:"category"`
	DateRange string `form:"date_range"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type ViolationListItem struct {
	models.Violation
	StudentName   string `json:"student_name"`
	ClassroomName string `json:"classroom_name"`
}

type ViolationListResponse struct {
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Items    []ViolationListItem `json:"items"`
	Summary  map[string]int64    `json:"summary"`
}

// List returns the scope's violations, filtered and paginated, newest first
// with id as the deterministic tiebreaker, plus per-category counts over the
// same filtered set.
func (s *ViolationService) List(sc scope.Scope, req *ViolationListRequest) (*ViolationListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	var total int64
	s.listQuery(sc, req).Count(&total)

	var violations []models.Violation
	offset := (req.Page - 1) * req.PageSize
	err := s.listQuery(sc, req).
		Select("violations.*").
		Preload("Photos").
		Offset(offset).Limit(req.PageSize).
		Order("violations.occurred_at DESC, violations.id DESC").
		Find(&violations).Error
	if err != nil {
		return nil, err
	}

	items, err := s.attachStudentInfo(violations)
	if err != nil {
		return nil, err
	}

	summary, err := s.summarize(sc, req)
	if err != nil {
		return nil, err
	}

	return &ViolationListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
		Summary:  summary,
	}, nil
}

// ListAll returns the full filtered set without pagination, for the export
// endpoints which report over the same scoped selection as the listing.
func (s *ViolationService) ListAll(sc scope.Scope, req *ViolationListRequest) ([]ViolationListItem, error) {
	var violations []models.Violation
	err := s.listQuery(sc, req).
		Select("violations.*").
		Order("violations.occurred_at DESC, violations.id DESC").
		Find(&violations).Error
	if err != nil {
		return nil, err
	}
	return s.attachStudentInfo(violations)
}

func (s *ViolationService) listQuery(sc scope.Scope, req *ViolationListRequest) *gorm.DB {
	query := s.db.Model(&models.Violation{}).
		Joins("JOIN students ON students.id = violations.student_id").
		Joins("LEFT JOIN classrooms ON classrooms.id = students.classroom_id")
	query = sc.WhereColumn(query, "students.school_id")

	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where(
			"students.name LIKE ? OR classrooms.name LIKE ? OR violations.rule_code LIKE ? OR violations.description LIKE ?",
			like, like, like, like,
		)
	}
	if req.Category != "" {
		query = query.Where("violations.category_name = ?", req.Category)
	}

	var start, end *time.Time
	if req.DateRange != "" {
		start, end = ResolveDateRange(req.DateRange, time.Now())
	} else {
		start, end = ResolveDates(req.StartDate, req.EndDate, time.Local)
	}
	return applyOccurredRange(query, start, end)
}

// applyOccurredRange narrows a violation query to inclusive day bounds.
func applyOccurredRange(query *gorm.DB, start, end *time.Time) *gorm.DB {
	if start != nil {
		query = query.Where("violations.occurred_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("violations.occurred_at < ?", end.AddDate(0, 0, 1))
	}
	return query
}

func (s *ViolationService) attachStudentInfo(violations []models.Violation) ([]ViolationListItem, error) {
	items := make([]ViolationListItem, 0, len(violations))
	if len(violations) == 0 {
		return items, nil
	}

	studentIDs := make([]uint, 0, len(violations))
	for _, v := range violations {
		studentIDs = append(studentIDs, v.StudentID)
	}

	var students []models.Student
	if err := s.db.Where("id IN ?", studentIDs).Find(&students).Error; err != nil {
		return nil, err
	}
	studentByID := make(map[uint]models.Student, len(students))
	classroomIDs := make([]uint, 0, len(students))
	for _, st := range students {
		studentByID[st.ID] = st
		if st.ClassroomID != nil {
			classroomIDs = append(classroomIDs, *st.ClassroomID)
		}
	}

	classroomByID := make(map[uint]string)
	if len(classroomIDs) > 0 {
		var classrooms []models.Classroom
		if err := s.db.Where("id IN ?", classroomIDs).Find(&classrooms).Error; err != nil {
			return nil, err
		}
		for _, c := range classrooms {
			classroomByID[c.ID] = c.Name
		}
	}

	for _, v := range violations {
		item := ViolationListItem{Violation: v}
		if st, ok := studentByID[v.StudentID]; ok {
			item.StudentName = st.Name
			if st.ClassroomID != nil {
				item.ClassroomName = classroomByID[*st.ClassroomID]
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *ViolationService) summarize(sc scope.Scope, req *ViolationListRequest) (map[string]int64, error) {
	var rows []struct {
		CategoryName string
		Count        int64
	}
	err := s.listQuery(sc, req).
		Select("violations.category_name, COUNT(*) AS count").
		Group("violations.category_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := make(map[string]int64, len(rows))
	for _, row := range rows {
		summary[row.CategoryName] = row.Count
	}
	return summary, nil
}
