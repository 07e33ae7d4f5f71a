package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdata/tatatertib/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-for-middleware-testing")
}

func uintPtr(v uint) *uint { return &v }

func protectedRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return router
}

func TestAuthRequired_NoHeader(t *testing.T) {
	router := protectedRouter(AuthRequired())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_InvalidFormat(t *testing.T) {
	router := protectedRouter(AuthRequired())

	testCases := []string{
		"InvalidToken",
		"Basic token123",
		"Bearer",
	}

	for _, authHeader := range testCases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", authHeader)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected status %d, got %d", authHeader, http.StatusUnauthorized, w.Code)
		}
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	router := protectedRouter(AuthRequired())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid.jwt.token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_ValidTokenSetsScope(t *testing.T) {
	token, _ := utils.GenerateToken(1, "bk_admin", "school_admin", uintPtr(5), 24)

	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		sc := GetScope(c)
		id, bound := sc.SchoolID()
		c.JSON(200, gin.H{"school_id": id, "bound": bound})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if body := w.Body.String(); body != `{"bound":true,"school_id":5}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestSchoolAdminRequired_RejectsSuperAdmin(t *testing.T) {
	token, _ := utils.GenerateToken(1, "root", "super_admin", nil, 24)

	router := protectedRouter(AuthRequired(), SchoolAdminRequired())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestSchoolAdminRequired_RejectsAdminWithoutSchool(t *testing.T) {
	// Malformed principal: role claims school_admin but carries no school.
	token, _ := utils.GenerateToken(1, "odd", "school_admin", nil, 24)

	router := protectedRouter(AuthRequired(), SchoolAdminRequired())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestSchoolAdminRequired_AllowsSchoolAdmin(t *testing.T) {
	token, _ := utils.GenerateToken(1, "bk_admin", "school_admin", uintPtr(2), 24)

	router := protectedRouter(AuthRequired(), SchoolAdminRequired())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestSuperAdminRequired(t *testing.T) {
	superToken, _ := utils.GenerateToken(1, "root", "super_admin", nil, 24)
	schoolToken, _ := utils.GenerateToken(2, "bk_admin", "school_admin", uintPtr(2), 24)

	router := protectedRouter(AuthRequired(), SuperAdminRequired())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+superToken)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("super_admin: expected status %d, got %d", http.StatusOK, w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+schoolToken)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("school_admin: expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestGetScope_SuperAdminUnrestricted(t *testing.T) {
	token, _ := utils.GenerateToken(1, "root", "super_admin", nil, 24)

	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"unrestricted": GetScope(c).IsUnrestricted()})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if body := w.Body.String(); body != `{"unrestricted":true}` {
		t.Errorf("unexpected body: %s", body)
	}
}
