package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sekolahdata/tatatertib/internal/middleware"
	"github.com/sekolahdata/tatatertib/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.Use(middleware.CORS())

	r.GET("/health", svc.healthHandler.Check)

	// Credential endpoints get a per-IP limiter.
	authLimiter := middleware.NewRateLimiter(5, 10)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authLimiter.Middleware(), svc.authHandler.Login)
			auth.POST("/refresh", authLimiter.Middleware(), svc.authHandler.Refresh)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/auth/me", svc.authHandler.Me)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)
		}

		// School-scoped surface.
		school := api.Group("")
		school.Use(middleware.AuthRequired(), middleware.SchoolAdminRequired())
		{
			school.GET("/violations", svc.violationHandler.List)
			school.POST("/violations", svc.violationHandler.Record)
			school.GET("/export/violations/pdf", svc.exportHandler.PDF)
			school.GET("/export/violations/list", svc.exportHandler.JSON)
			school.GET("/violations/:id", svc.violationHandler.GetByID)
			school.DELETE("/violations/:id", svc.violationHandler.Delete)

			school.GET("/classrooms", svc.classroomHandler.List)
			school.POST("/classrooms", svc.classroomHandler.Create)
			school.DELETE("/classrooms/:id", svc.classroomHandler.Delete)
			school.POST("/classrooms/:id/import", svc.classroomHandler.ImportStudents)
			school.POST("/classrooms/:id/transfer", svc.classroomHandler.TransferStudents)

			school.GET("/students/:id/history", svc.studentHandler.History)
			school.GET("/classes/:name/students", svc.studentHandler.NamesByClass)

			school.GET("/statistics", svc.statsHandler.Overview)
			school.GET("/statistics/top-violators", svc.statsHandler.TopViolators)
			school.GET("/statistics/trend", svc.statsHandler.Trend)
			school.GET("/statistics/today", svc.statsHandler.Today)

			school.GET("/categories", svc.categoryHandler.List)
			school.POST("/categories", svc.categoryHandler.Create)
			school.PUT("/categories/:id", svc.categoryHandler.Update)
			school.DELETE("/categories/:id", svc.categoryHandler.Delete)

			school.GET("/rules", svc.ruleHandler.List)
			school.POST("/rules", svc.ruleHandler.Create)
			school.PUT("/rules/:id", svc.ruleHandler.Update)
			school.DELETE("/rules/:id", svc.ruleHandler.Delete)

			school.GET("/settings/school", svc.schoolHandler.GetProfile)
			school.PUT("/settings/school", svc.schoolHandler.UpdateProfile)
			school.GET("/settings/users", svc.staffHandler.List)
			school.POST("/settings/users", svc.staffHandler.Create)
			school.DELETE("/settings/users/:id", svc.staffHandler.Delete)
		}

		// Provisioning surface.
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.SuperAdminRequired())
		{
			admin.GET("/schools", svc.schoolHandler.List)
			admin.POST("/schools", svc.schoolHandler.Provision)
			admin.GET("/schools/:id", svc.schoolHandler.GetByID)
			admin.DELETE("/schools/:id", svc.schoolHandler.Delete)
			admin.GET("/audit-logs", svc.auditLogHandler.List)
		}
	}
}
