package main

import (
	"os"

	"github.com/sekolahdata/tatatertib/internal/config"
	"github.com/sekolahdata/tatatertib/internal/handlers"
	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/internal/services"
	"github.com/sekolahdata/tatatertib/internal/utils"
	"github.com/sekolahdata/tatatertib/pkg/logger"
	"gorm.io/gorm"
)

// appServices holds the initialized handlers and background services.
type appServices struct {
	db *gorm.DB

	authHandler      *handlers.AuthHandler
	schoolHandler    *handlers.SchoolHandler
	staffHandler     *handlers.StaffHandler
	classroomHandler *handlers.ClassroomHandler
	studentHandler   *handlers.StudentHandler
	categoryHandler  *handlers.CategoryHandler
	ruleHandler      *handlers.RuleHandler
	violationHandler *handlers.ViolationHandler
	statsHandler     *handlers.StatsHandler
	exportHandler    *handlers.ExportHandler
	auditLogHandler  *handlers.AuditLogHandler
	healthHandler    *handlers.HealthHandler

	maintenance *services.MaintenanceService
}

// bootstrap wires the database, services and handlers. The DB handle is
// passed explicitly; nothing holds package-level state.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	db, err := models.InitDB(&cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	authService := services.NewAuthService(db, &cfg.JWT)
	username := os.Getenv("SUPER_ADMIN_USERNAME")
	if username == "" {
		username = "superadmin"
	}
	password := os.Getenv("SUPER_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
		logger.Warn().Msg("SUPER_ADMIN_PASSWORD not set, using default password")
	}
	if err := authService.CreateSuperAdminIfNotExists(username, password); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed super admin")
	}

	maintenance := services.NewMaintenanceService(db, authService, cfg.Log.RetentionDays)
	if err := maintenance.Start(); err != nil {
		logger.Warn().Err(err).Msg("Failed to start maintenance scheduler")
	}

	return &appServices{
		db:               db,
		authHandler:      handlers.NewAuthHandler(db, &cfg.JWT),
		schoolHandler:    handlers.NewSchoolHandler(db, cfg.Upload.Dir),
		staffHandler:     handlers.NewStaffHandler(db),
		classroomHandler: handlers.NewClassroomHandler(db),
		studentHandler:   handlers.NewStudentHandler(db),
		categoryHandler:  handlers.NewCategoryHandler(db),
		ruleHandler:      handlers.NewRuleHandler(db),
		violationHandler: handlers.NewViolationHandler(db, cfg.Upload.Dir),
		statsHandler:     handlers.NewStatsHandler(db),
		exportHandler:    handlers.NewExportHandler(db, cfg.Upload.Dir),
		auditLogHandler:  handlers.NewAuditLogHandler(db),
		healthHandler:    handlers.NewHealthHandler(db),
		maintenance:      maintenance,
	}
}
