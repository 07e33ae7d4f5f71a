package models

import (
	"fmt"

	"github.com/sekolahdata/tatatertib/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the configured database. The handle is passed explicitly into
// every service constructor; there is no package-level connection.
func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&School{},
		&User{},
		&Classroom{},
		&Student{},
		&ViolationCategory{},
		&ViolationRule{},
		&Violation{},
		&ViolationPhoto{},
		&RefreshToken{},
		&AuditLog{},
	)
}

// DefaultCategory is a severity tier seeded into every newly provisioned
// school. Schools edit their own set afterwards.
type DefaultCategory struct {
	Name   string
	Points int
}

func DefaultCategories() []DefaultCategory {
	return []DefaultCategory{
		{Name: "Ringan", Points: 5},
		{Name: "Sedang", Points: 15},
		{Name: "Berat", Points: 30},
	}
}

// DefaultRule is a starter entry for a new school's rule catalogue.
type DefaultRule struct {
	Code        string
	Description string
}

func DefaultRules() []DefaultRule {
	return []DefaultRule{
		{Code: "Pasal 1", Description: "Terlambat masuk sekolah"},
		{Code: "Pasal 2", Description: "Tidak mengenakan atribut seragam lengkap"},
		{Code: "Pasal 3", Description: "Meninggalkan kelas tanpa izin"},
	}
}
