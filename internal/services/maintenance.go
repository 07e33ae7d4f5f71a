package services

import (
	"github.com/robfig/cron/v3"
	"github.com/sekolahdata/tatatertib/pkg/logger"
	"gorm.io/gorm"
)

// MaintenanceService runs the nightly housekeeping: pruning old audit
// entries and expired refresh tokens.
type MaintenanceService struct {
	auth          *AuthService
	audit         *AuditService
	retentionDays int
	scheduler     *cron.Cron
}

func NewMaintenanceService(db *gorm.DB, auth *AuthService, retentionDays int) *MaintenanceService {
	return &MaintenanceService{
		auth:          auth,
		audit:         NewAuditService(db),
		retentionDays: retentionDays,
	}
}

// Start schedules the nightly run. Call Stop on shutdown.
func (s *MaintenanceService) Start() error {
	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc("30 2 * * *", s.RunOnce); err != nil {
		return err
	}
	s.scheduler.Start()
	logger.Info().Int("retention_days", s.retentionDays).Msg("maintenance scheduler started")
	return nil
}

func (s *MaintenanceService) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// RunOnce performs one housekeeping pass.
func (s *MaintenanceService) RunOnce() {
	tokens, err := s.auth.CleanupExpiredRefreshTokens()
	if err != nil {
		logger.Error().Err(err).Msg("refresh token cleanup failed")
	}

	entries, err := s.audit.Cleanup(s.retentionDays)
	if err != nil {
		logger.Error().Err(err).Msg("audit log cleanup failed")
	}

	logger.Info().
		Int64("refresh_tokens", tokens).
		Int64("audit_entries", entries).
		Msg("maintenance pass completed")
}
