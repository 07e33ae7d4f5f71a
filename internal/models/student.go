package models

import "time"

// Student carries school_id directly even though it is derivable through the
// classroom; scoped queries filter on it without a join. The write boundary
// keeps the invariant student.school_id == classroom.school_id whenever a
// classroom is set.
type Student struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;index" json:"name"`
	NIS         string    `gorm:"column:nis;size:50;not null;uniqueIndex:idx_students_school_nis" json:"nis"`
	ClassroomID *uint     `gorm:"index" json:"classroom_id"`
	SchoolID    uint      `gorm:"not null;index;uniqueIndex:idx_students_school_nis" json:"school_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Student) TableName() string { return "students" }
