package services

import (
	"errors"

	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/internal/scope"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

// CategoryService manages a school's severity tiers. Editing or deleting a
// category never touches recorded violations; they keep their frozen name
// and points.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List(sc scope.Scope) ([]models.ViolationCategory, error) {
	var categories []models.ViolationCategory
	if err := sc.Where(s.db).Order("points").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) Get(sc scope.Scope, id uint) (*models.ViolationCategory, error) {
	var category models.ViolationCategory
	if err := sc.Where(s.db).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("category not found")
		}
		return nil, err
	}
	return &category, nil
}

type CreateCategoryRequest struct {
	Name   string `json:"name" binding:"required"`
	Points int    `json:"points" binding:"required,min=1"`
}

func (s *CategoryService) Create(sc scope.Scope, req *CreateCategoryRequest) (*models.ViolationCategory, error) {
	schoolID, bound := sc.SchoolID()
	if !bound {
		return nil, response.NewForbidden("no school bound to this account")
	}

	var count int64
	s.db.Model(&models.ViolationCategory{}).Where("name = ? AND school_id = ?", req.Name, schoolID).Count(&count)
	if count > 0 {
		return nil, response.NewConflict("a category with that name already exists")
	}

	category := models.ViolationCategory{Name: req.Name, Points: req.Points, SchoolID: schoolID}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

type UpdateCategoryRequest struct {
	Name   *string `json:"name"`
	Points *int    `json:"points"`
}

func (s *CategoryService) Update(sc scope.Scope, id uint, req *UpdateCategoryRequest) (*models.ViolationCategory, error) {
	category, err := s.Get(sc, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		var count int64
		s.db.Model(&models.ViolationCategory{}).
			Where("name = ? AND school_id = ? AND id <> ?", *req.Name, category.SchoolID, category.ID).
			Count(&count)
		if count > 0 {
			return nil, response.NewConflict("a category with that name already exists")
		}
		category.Name = *req.Name
	}
	if req.Points != nil {
		category.Points = *req.Points
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(sc scope.Scope, id uint) error {
	category, err := s.Get(sc, id)
	if err != nil {
		return err
	}
	return s.db.Delete(category).Error
}
