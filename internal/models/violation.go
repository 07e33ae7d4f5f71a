package models

import "time"

// MaxEvidencePhotos caps attachments per violation. Files beyond the cap are
// dropped, not rejected.
const MaxEvidencePhotos = 10

// Violation is one recorded incident. CategoryName and Points are frozen
// copies taken from the category at creation time; renaming, repricing or
// deleting the category later must not alter this record. Ownership is
// transitive through the student.
type Violation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    uint      `gorm:"not null;index" json:"student_id"`
	CategoryName string    `gorm:"size:100;not null;index" json:"category_name"`
	Points       int       `gorm:"not null" json:"points"`
	RuleCode     string    `gorm:"size:100" json:"rule_code"`
	Description  string    `gorm:"type:text" json:"description"`
	OccurredAt   time.Time `gorm:"not null;index" json:"occurred_at"`
	RecordedBy   string    `gorm:"size:100" json:"recorded_by"`
	CreatedAt    time.Time `json:"created_at"`

	Photos []ViolationPhoto `gorm:"constraint:OnDelete:CASCADE" json:"photos,omitempty"`
}

func (Violation) TableName() string { return "violations" }

// ViolationPhoto is an evidence attachment, referenced by stored filename.
type ViolationPhoto struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ViolationID uint      `gorm:"not null;index" json:"violation_id"`
	Filename    string    `gorm:"size:255;not null" json:"filename"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ViolationPhoto) TableName() string { return "violation_photos" }
