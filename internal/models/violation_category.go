package models

import "time"

// ViolationCategory is a per-school severity tier mapping a name to a point
// value. Violations copy the name and points at creation time; editing or
// deleting a category never rewrites recorded violations.
type ViolationCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Points    int       `gorm:"not null" json:"points"`
	SchoolID  uint      `gorm:"not null;index" json:"school_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ViolationCategory) TableName() string { return "violation_categories" }
