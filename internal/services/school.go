package services

import (
	"errors"

	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/internal/scope"
	"github.com/sekolahdata/tatatertib/internal/utils"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

type SchoolService struct {
	db *gorm.DB
}

func NewSchoolService(db *gorm.DB) *SchoolService {
	return &SchoolService{db: db}
}

type ProvisionSchoolRequest struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address"`
	AdminUsername string `json:"admin_username" binding:"required"`
	AdminPassword string `json:"admin_password" binding:"required,min=6"`
	AdminName     string `json:"admin_name"`
}

type ProvisionSchoolResult struct {
	School *models.School `json:"school"`
	Admin  *models.User   `json:"admin"`
}

// Provision creates a new school with its first admin account and seeds the
// default category and rule catalogues. Everything commits together or not at
// all.
func (s *SchoolService) Provision(req *ProvisionSchoolRequest) (*ProvisionSchoolResult, error) {
	var count int64
	s.db.Model(&models.School{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return nil, response.NewConflict("a school with that name already exists")
	}

	s.db.Model(&models.User{}).Where("username = ?", req.AdminUsername).Count(&count)
	if count > 0 {
		return nil, response.NewConflict("admin username is already taken")
	}

	hash, err := utils.HashPassword(req.AdminPassword)
	if err != nil {
		return nil, err
	}

	school := models.School{Name: req.Name, Address: req.Address}
	admin := models.User{
		Username:    req.AdminUsername,
		Password:    hash,
		DisplayName: req.AdminName,
		Role:        models.RoleSchoolAdmin,
		IsActive:    true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&school).Error; err != nil {
			return err
		}

		admin.SchoolID = &school.ID
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		for _, c := range models.DefaultCategories() {
			category := models.ViolationCategory{Name: c.Name, Points: c.Points, SchoolID: school.ID}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
		}
		for _, r := range models.DefaultRules() {
			rule := models.ViolationRule{Code: r.Code, Description: r.Description, SchoolID: school.ID}
			if err := tx.Create(&rule).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ProvisionSchoolResult{School: &school, Admin: &admin}, nil
}

// List returns all schools, for the super-admin overview.
func (s *SchoolService) List() ([]models.School, error) {
	var schools []models.School
	if err := s.db.Order("name").Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}

// Get returns the school visible to the given scope.
func (s *SchoolService) Get(sc scope.Scope, id uint) (*models.School, error) {
	query := s.db.Where("id = ?", id)
	if !sc.IsUnrestricted() {
		query = query.Where("id = ?", sc.MustSchoolID())
	}

	var school models.School
	if err := query.First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("school not found")
		}
		return nil, err
	}
	return &school, nil
}

type UpdateSchoolRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	LogoFile *string `json:"-"`
}

// UpdateProfile merges the set fields onto the caller's own school.
func (s *SchoolService) UpdateProfile(sc scope.Scope, req *UpdateSchoolRequest) (*models.School, error) {
	schoolID, bound := sc.SchoolID()
	if !bound {
		return nil, response.NewForbidden("no school bound to this account")
	}

	var school models.School
	if err := s.db.First(&school, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("school not found")
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != school.Name {
		var count int64
		s.db.Model(&models.School{}).Where("name = ? AND id <> ?", *req.Name, school.ID).Count(&count)
		if count > 0 {
			return nil, response.NewConflict("a school with that name already exists")
		}
		school.Name = *req.Name
	}
	if req.Address != nil {
		school.Address = *req.Address
	}
	if req.LogoFile != nil {
		school.LogoFile = *req.LogoFile
	}

	if err := s.db.Save(&school).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

// Delete removes a school only when it owns no classrooms, students or staff.
func (s *SchoolService) Delete(id uint) error {
	var school models.School
	if err := s.db.First(&school, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("school not found")
		}
		return err
	}

	var count int64
	s.db.Model(&models.Classroom{}).Where("school_id = ?", id).Count(&count)
	if count > 0 {
		return response.NewConflict("school still owns classrooms")
	}
	s.db.Model(&models.Student{}).Where("school_id = ?", id).Count(&count)
	if count > 0 {
		return response.NewConflict("school still owns students")
	}
	s.db.Model(&models.User{}).Where("school_id = ?", id).Count(&count)
	if count > 0 {
		return response.NewConflict("school still has staff accounts")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("school_id = ?", id).Delete(&models.ViolationCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("school_id = ?", id).Delete(&models.ViolationRule{}).Error; err != nil {
			return err
		}
		return tx.Delete(&school).Error
	})
}
