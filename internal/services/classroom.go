package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/internal/scope"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

type ClassroomService struct {
	db *gorm.DB
}

func NewClassroomService(db *gorm.DB) *ClassroomService {
	return &ClassroomService{db: db}
}

type ClassroomInfo struct {
	models.Classroom
	StudentCount int64 `json:"student_count"`
}

// List returns the scope's classrooms with their student counts.
func (s *ClassroomService) List(sc scope.Scope) ([]ClassroomInfo, error) {
	var classrooms []models.Classroom
	if err := sc.Where(s.db).Order("name").Find(&classrooms).Error; err != nil {
		return nil, err
	}

	infos := make([]ClassroomInfo, 0, len(classrooms))
	for _, c := range classrooms {
		var count int64
		s.db.Model(&models.Student{}).Where("classroom_id = ?", c.ID).Count(&count)
		infos = append(infos, ClassroomInfo{Classroom: c, StudentCount: count})
	}
	return infos, nil
}

// Get returns one classroom within the scope.
func (s *ClassroomService) Get(sc scope.Scope, id uint) (*models.Classroom, error) {
	var classroom models.Classroom
	if err := sc.Where(s.db).Where("id = ?", id).First(&classroom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("classroom not found")
		}
		return nil, err
	}
	return &classroom, nil
}

type CreateClassroomRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create adds a classroom to the caller's school. Names are unique within a
// school, not globally.
func (s *ClassroomService) Create(sc scope.Scope, req *CreateClassroomRequest) (*models.Classroom, error) {
	schoolID, bound := sc.SchoolID()
	if !bound {
		return nil, response.NewForbidden("no school bound to this account")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewBadRequest("classroom name is required")
	}

	var count int64
	s.db.Model(&models.Classroom{}).Where("name = ? AND school_id = ?", name, schoolID).Count(&count)
	if count > 0 {
		return nil, response.NewConflict("a classroom with that name already exists")
	}

	classroom := models.Classroom{Name: name, SchoolID: schoolID}
	if err := s.db.Create(&classroom).Error; err != nil {
		return nil, err
	}
	return &classroom, nil
}

// Delete removes an empty classroom. A classroom of another school is
// reported as missing; one that still owns students blocks the delete.
func (s *ClassroomService) Delete(sc scope.Scope, id uint) error {
	classroom, err := s.Get(sc, id)
	if err != nil {
		return err
	}

	var count int64
	s.db.Model(&models.Student{}).Where("classroom_id = ?", classroom.ID).Count(&count)
	if count > 0 {
		return response.NewConflict("classroom still has students")
	}

	return s.db.Delete(classroom).Error
}

type ImportStudentsRequest struct {
	RawNames string `json:"raw_names" binding:"required"`
}

// ImportStudents creates one student per non-blank line of a pasted name
// list. Each student gets a generated NIS; the random token is short, so a
// collision within a school is possible and surfaces as a storage error.
func (s *ClassroomService) ImportStudents(sc scope.Scope, classroomID uint, req *ImportStudentsRequest) (int, error) {
	classroom, err := s.Get(sc, classroomID)
	if err != nil {
		return 0, err
	}

	var names []string
	for _, line := range strings.Split(req.RawNames, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return 0, response.NewBadRequest("no student names supplied")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			nis, err := generateNIS()
			if err != nil {
				return err
			}
			student := models.Student{
				Name:        name,
				NIS:         nis,
				ClassroomID: &classroom.ID,
				SchoolID:    classroom.SchoolID,
			}
			if err := tx.Create(&student).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

type TransferStudentsRequest struct {
	TargetClassroomID uint   `json:"-"`
	StudentIDs        []uint `json:"student_ids" binding:"required"`
}

// TransferStudents moves the given students into the target classroom. A
// target outside the scope fails; student ids outside the scope are skipped,
// not rejected. Violation history stays attached to each student. Returns
// the number of students moved.
func (s *ClassroomService) TransferStudents(sc scope.Scope, req *TransferStudentsRequest) (int64, error) {
	target, err := s.Get(sc, req.TargetClassroomID)
	if err != nil {
		if isNotFound(err) {
			return 0, response.NewBadRequest("target classroom not found")
		}
		return 0, err
	}

	if len(req.StudentIDs) == 0 {
		return 0, nil
	}

	query := s.db.Model(&models.Student{}).Where("id IN ?", req.StudentIDs)
	query = sc.Where(query)
	result := query.Update("classroom_id", target.ID)
	return result.RowsAffected, result.Error
}

func isNotFound(err error) bool {
	var appErr *response.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus == 404
}

// generateNIS returns an 8 character hex student number.
func generateNIS() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
