package services

import (
	"errors"

	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/internal/scope"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

// Get returns one student within the scope.
func (s *StudentService) Get(sc scope.Scope, id uint) (*models.Student, error) {
	var student models.Student
	if err := sc.Where(s.db).Where("id = ?", id).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("student not found")
		}
		return nil, err
	}
	return &student, nil
}

type StudentHistory struct {
	Student     *models.Student    `json:"student"`
	Classroom   *models.Classroom  `json:"classroom,omitempty"`
	Violations  []models.Violation `json:"violations"`
	TotalPoints int                `json:"total_points"`
}

// History returns a student's full violation record, newest first, with
// accumulated points. Points come from the frozen per-violation values, so
// later category edits never change a student's historical total.
func (s *StudentService) History(sc scope.Scope, id uint) (*StudentHistory, error) {
	student, err := s.Get(sc, id)
	if err != nil {
		return nil, err
	}

	var violations []models.Violation
	if err := s.db.Preload("Photos").
		Where("student_id = ?", student.ID).
		Order("occurred_at DESC, id DESC").
		Find(&violations).Error; err != nil {
		return nil, err
	}

	total := 0
	for _, v := range violations {
		total += v.Points
	}

	history := &StudentHistory{
		Student:     student,
		Violations:  violations,
		TotalPoints: total,
	}

	if student.ClassroomID != nil {
		var classroom models.Classroom
		if err := s.db.First(&classroom, *student.ClassroomID).Error; err == nil {
			history.Classroom = &classroom
		}
	}
	return history, nil
}

type StudentName struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ListNamesByClass returns the students of a classroom looked up by name
// within the scope, for the violation entry form.
func (s *StudentService) ListNamesByClass(sc scope.Scope, className string) ([]StudentName, error) {
	var classroom models.Classroom
	if err := sc.Where(s.db).Where("name = ?", className).First(&classroom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("classroom not found")
		}
		return nil, err
	}

	var names []StudentName
	if err := s.db.Model(&models.Student{}).
		Select("id, name").
		Where("classroom_id = ?", classroom.ID).
		Order("name").
		Scan(&names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
