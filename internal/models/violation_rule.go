package models

import "time"

// ViolationRule is a citable rule ("pasal") in a school's code of conduct.
// Violations reference rules by code as free text, not by foreign key.
type ViolationRule struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"size:100;not null" json:"code"`
	Description string    `gorm:"size:500" json:"description"`
	SchoolID    uint      `gorm:"not null;index" json:"school_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ViolationRule) TableName() string { return "violation_rules" }
