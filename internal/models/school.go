package models

import "time"

// School is the root of the tenancy tree. Every scoped entity traces
// ownership to exactly one school.
type School struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:200;not null" json:"name"`
	Address   string    `gorm:"size:500" json:"address"`
	LogoFile  string    `gorm:"size:255" json:"logo_file"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (School) TableName() string { return "schools" }
