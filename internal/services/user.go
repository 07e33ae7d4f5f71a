package services

import (
	"errors"

	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/internal/scope"
	"github.com/sekolahdata/tatatertib/internal/utils"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

// UserService manages staff accounts within one school. Super-admin accounts
// are never visible or editable here.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ListStaff returns the staff accounts of the caller's school.
func (s *UserService) ListStaff(sc scope.Scope) ([]models.User, error) {
	var users []models.User
	query := s.db.Where("role = ?", models.RoleSchoolAdmin)
	query = sc.Where(query)
	if err := query.Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

type CreateStaffRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"display_name"`
}

// CreateStaff adds a school_admin account to the caller's school. The school
// binding always comes from the scope, never from the request.
func (s *UserService) CreateStaff(sc scope.Scope, req *CreateStaffRequest) (*models.User, error) {
	schoolID, bound := sc.SchoolID()
	if !bound {
		return nil, response.NewForbidden("no school bound to this account")
	}

	var count int64
	s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		return nil, response.NewConflict("username is already taken")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:    req.Username,
		Password:    hash,
		DisplayName: req.DisplayName,
		Role:        models.RoleSchoolAdmin,
		SchoolID:    &schoolID,
		IsActive:    true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteStaff removes a staff account from the caller's school. Accounts of
// other schools look like missing accounts; callers cannot delete themselves.
func (s *UserService) DeleteStaff(sc scope.Scope, callerID, id uint) error {
	if id == callerID {
		return response.NewBadRequest("cannot delete your own account")
	}

	query := s.db.Where("id = ? AND role = ?", id, models.RoleSchoolAdmin)
	query = sc.Where(query)

	var user models.User
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("staff account not found")
		}
		return err
	}

	return s.db.Delete(&user).Error
}
