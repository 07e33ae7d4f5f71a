package services

import (
	"testing"
	"time"

	"github.com/sekolahdata/tatatertib/internal/models"
)

func TestMaintenanceService_RunOnce(t *testing.T) {
	db := setupTestDB(t)
	auth := newAuthService(t, db)
	svc := NewMaintenanceService(db, auth, 30)

	mustCreate(t, db, &models.RefreshToken{
		UserID:    1,
		TokenHash: "expired-hash",
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	mustCreate(t, db, &models.RefreshToken{
		UserID:    1,
		TokenHash: "live-hash",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	revokedAt := time.Now().Add(-time.Minute)
	mustCreate(t, db, &models.RefreshToken{
		UserID:    1,
		TokenHash: "revoked-hash",
		ExpiresAt: time.Now().Add(time.Hour),
		RevokedAt: &revokedAt,
	})
	mustCreate(t, db, &models.AuditLog{
		Level:     "info",
		Module:    "auth",
		Action:    "login",
		CreatedAt: time.Now().AddDate(0, 0, -60),
	})
	mustCreate(t, db, &models.AuditLog{
		Level:     "info",
		Module:    "auth",
		Action:    "login",
		CreatedAt: time.Now(),
	})

	svc.RunOnce()

	var tokenCount, auditCount int64
	db.Model(&models.RefreshToken{}).Count(&tokenCount)
	db.Model(&models.AuditLog{}).Count(&auditCount)
	if tokenCount != 1 {
		t.Errorf("expected 1 refresh token left, got %d", tokenCount)
	}
	if auditCount != 1 {
		t.Errorf("expected 1 audit entry left, got %d", auditCount)
	}
}
