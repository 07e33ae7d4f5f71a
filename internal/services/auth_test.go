package services

import (
	"testing"

	"github.com/sekolahdata/tatatertib/internal/config"
	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/internal/utils"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	utils.SetJWTSecret("test-secret")
	return NewAuthService(db, &config.JWTConfig{Secret: "test-secret", ExpireHour: 24})
}

func seedUser(t *testing.T, db *gorm.DB, username, password, role string, schoolID *uint, active bool) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username: username,
		Password: hash,
		Role:     role,
		SchoolID: schoolID,
		IsActive: active,
	}
	mustCreate(t, db, user)
	return user
}

func TestAuthService_LoginSuccess(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	seedUser(t, db, "admin1", "secret123", models.RoleSchoolAdmin, uintPtr(1), true)

	result, err := svc.Login(&LoginRequest{Username: "admin1", Password: "secret123"}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}
	if result.User.LastLogin == nil {
		t.Error("expected last login to be recorded")
	}

	claims, err := utils.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("failed to parse issued token: %v", err)
	}
	if claims.Role != models.RoleSchoolAdmin {
		t.Errorf("expected role %s in claims, got %s", models.RoleSchoolAdmin, claims.Role)
	}
	if claims.SchoolID == nil || *claims.SchoolID != 1 {
		t.Errorf("expected school id 1 in claims, got %v", claims.SchoolID)
	}
}

func TestAuthService_LoginGenericFailureMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	seedUser(t, db, "admin1", "secret123", models.RoleSchoolAdmin, uintPtr(1), true)

	_, wrongPass := svc.Login(&LoginRequest{Username: "admin1", Password: "nope"}, "", "")
	_, unknownUser := svc.Login(&LoginRequest{Username: "ghost", Password: "nope"}, "", "")

	if wrongPass == nil || unknownUser == nil {
		t.Fatal("expected both logins to fail")
	}
	// The two failure modes must be indistinguishable to the client.
	if wrongPass.Error() != unknownUser.Error() {
		t.Errorf("failure messages differ: %q vs %q", wrongPass.Error(), unknownUser.Error())
	}
}

func TestAuthService_LoginFailuresAudited(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	seedUser(t, db, "admin1", "secret123", models.RoleSchoolAdmin, uintPtr(1), true)

	svc.Login(&LoginRequest{Username: "admin1", Password: "nope"}, "10.0.0.9", "")
	svc.Login(&LoginRequest{Username: "ghost", Password: "nope"}, "10.0.0.9", "")

	var entries []models.AuditLog
	db.Where("action = ?", "login_failed").Order("id").Find(&entries)
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[0].Message == entries[1].Message {
		t.Error("audit log should record which half of the check failed")
	}
}

func TestAuthService_LoginInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	seedUser(t, db, "admin1", "secret123", models.RoleSchoolAdmin, uintPtr(1), false)

	if _, err := svc.Login(&LoginRequest{Username: "admin1", Password: "secret123"}, "", ""); err == nil {
		t.Fatal("expected login to fail for inactive user")
	}
}

func TestAuthService_RefreshRotation(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	seedUser(t, db, "admin1", "secret123", models.RoleSchoolAdmin, uintPtr(1), true)

	login, err := svc.Login(&LoginRequest{Username: "admin1", Password: "secret123"}, "", "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	refreshed, err := svc.Refresh(login.RefreshToken, "", "")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("expected a new refresh token after rotation")
	}

	// The rotated token must be unusable.
	if _, err := svc.Refresh(login.RefreshToken, "", ""); err == nil {
		t.Error("expected reuse of rotated refresh token to fail")
	}

	// The replacement still works.
	if _, err := svc.Refresh(refreshed.RefreshToken, "", ""); err != nil {
		t.Errorf("expected replacement token to refresh, got %v", err)
	}
}

func TestAuthService_RevokeRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	seedUser(t, db, "admin1", "secret123", models.RoleSchoolAdmin, uintPtr(1), true)

	login, err := svc.Login(&LoginRequest{Username: "admin1", Password: "secret123"}, "", "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.RevokeRefreshToken(login.RefreshToken); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, err := svc.Refresh(login.RefreshToken, "", ""); err == nil {
		t.Error("expected revoked token to be rejected")
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	user := seedUser(t, db, "admin1", "secret123", models.RoleSchoolAdmin, uintPtr(1), true)

	if err := svc.ChangePassword(user.ID, "wrong", "newpass456"); err == nil {
		t.Error("expected change with wrong old password to fail")
	}
	if err := svc.ChangePassword(user.ID, "secret123", "newpass456"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := svc.Login(&LoginRequest{Username: "admin1", Password: "newpass456"}, "", ""); err != nil {
		t.Errorf("expected login with new password to succeed, got %v", err)
	}
}

func TestAuthService_CreateSuperAdminIfNotExists(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)

	if err := svc.CreateSuperAdminIfNotExists("root", "rootpass"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	// Second call is a no-op.
	if err := svc.CreateSuperAdminIfNotExists("root2", "otherpass"); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleSuperAdmin).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one super admin, got %d", count)
	}
}
