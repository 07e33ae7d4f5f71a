package models

import "time"

// Classroom groups students within a school. Name uniqueness is per school,
// not global.
type Classroom struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_classrooms_school_name" json:"name"`
	SchoolID  uint      `gorm:"not null;index;uniqueIndex:idx_classrooms_school_name" json:"school_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Classroom) TableName() string { return "classrooms" }
