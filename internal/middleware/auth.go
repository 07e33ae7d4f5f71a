package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdata/tatatertib/internal/models"
	"github.com/sekolahdata/tatatertib/internal/scope"
	"github.com/sekolahdata/tatatertib/internal/utils"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
	ContextSchoolID = "school_id"
)

// AuthRequired is a middleware that checks for a valid JWT token
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		if claims.SchoolID != nil {
			c.Set(ContextSchoolID, *claims.SchoolID)
		}

		c.Next()
	}
}

// SchoolAdminRequired gates routes that operate on school-scoped data. The
// principal must be a school_admin bound to a school.
func SchoolAdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextRole)
		_, hasSchool := c.Get(ContextSchoolID)
		if role != models.RoleSchoolAdmin || !hasSchool {
			c.JSON(http.StatusForbidden, gin.H{"error": "school admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// SuperAdminRequired gates tenant provisioning routes.
func SuperAdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextRole)
		if role != models.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "super admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetScope derives the typed access scope from the authenticated principal.
// Handlers pass it explicitly into every scoped service call.
func GetScope(c *gin.Context) scope.Scope {
	if role, _ := c.Get(ContextRole); role == models.RoleSuperAdmin {
		return scope.Unrestricted()
	}
	if id, exists := c.Get(ContextSchoolID); exists {
		return scope.BoundToSchool(id.(uint))
	}
	// No school, no super_admin role: scope that matches nothing.
	return scope.Scope{}
}

// GetUserID gets the current user ID from context
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetUsername gets the current username from context
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(ContextUsername); exists {
		return username.(string)
	}
	return ""
}

// GetRole gets the current user role from context
func GetRole(c *gin.Context) string {
	if role, exists := c.Get(ContextRole); exists {
		return role.(string)
	}
	return ""
}
