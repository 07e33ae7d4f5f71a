package services

import (
	"errors"

	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/internal/scope"
	"github.com/sekolahdata/tatatertib/pkg/response"
	"gorm.io/gorm"
)

// RuleService manages a school's rule catalogue. Violations cite rules by
// code as free text, so deleting a rule leaves existing records intact.
type RuleService struct {
	db *gorm.DB
}

func NewRuleService(db *gorm.DB) *RuleService {
	return &RuleService{db: db}
}

func (s *RuleService) List(sc scope.Scope) ([]models.ViolationRule, error) {
	var rules []models.ViolationRule
	if err := sc.Where(s.db).Order("code").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (s *RuleService) Get(sc scope.Scope, id uint) (*models.ViolationRule, error) {
	var rule models.ViolationRule
	if err := sc.Where(s.db).Where("id = ?", id).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("rule not found")
		}
		return nil, err
	}
	return &rule, nil
}

type CreateRuleRequest struct {
	Code        string `json:"code" binding:"required"`
	Description string `json:"description"`
}

func (s *RuleService) Create(sc scope.Scope, req *CreateRuleRequest) (*models.ViolationRule, error) {
	schoolID, bound := sc.SchoolID()
	if !bound {
		return nil, response.NewForbidden("no school bound to this account")
	}

	var count int64
	s.db.Model(&models.ViolationRule{}).Where("code = ? AND school_id = ?", req.Code, schoolID).Count(&count)
	if count > 0 {
		return nil, response.NewConflict("a rule with that code already exists")
	}

	rule := models.ViolationRule{Code: req.Code, Description: req.Description, SchoolID: schoolID}
	if err := s.db.Create(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

type UpdateRuleRequest struct {
	Code        *string `json:"code"`
	Description *string `json:"description"`
}

func (s *RuleService) Update(sc scope.Scope, id uint, req *UpdateRuleRequest) (*models.ViolationRule, error) {
	rule, err := s.Get(sc, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != rule.Code {
		var count int64
		s.db.Model(&models.ViolationRule{}).
			Where("code = ? AND school_id = ? AND id <> ?", *req.Code, rule.SchoolID, rule.ID).
			Count(&count)
		if count > 0 {
			return nil, response.NewConflict("a rule with that code already exists")
		}
		rule.Code = *req.Code
	}
	if req.Description != nil {
		rule.Description = *req.Description
	}

	if err := s.db.Save(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *RuleService) Delete(sc scope.Scope, id uint) error {
	rule, err := s.Get(sc, id)
	if err != nil {
		return err
	}
	return s.db.Delete(rule).Error
}
