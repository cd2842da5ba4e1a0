package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pr17-lab/sata-backend/internal/app/controllers"
	"github.com/pr17-lab/sata-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	analyticsController *controllers.AnalyticsController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/health", healthController.Check)
	v1.GET("/health/detailed", healthController.DetailedCheck)

	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.List)
			students.GET("/:id", studentController.Get)
			students.POST("", studentController.Create)
			students.PUT("/:id", studentController.Update)
			students.DELETE("/:id", studentController.Delete)
			students.GET("/:id/academic-records", studentController.AcademicRecords)
		}

		analytics := authenticated.Group("/analytics")
		{
			analytics.GET("/gpa-trend/:id", analyticsController.GPATrend)
			analytics.GET("/subject-performance", analyticsController.SubjectPerformance)
			analytics.GET("/semester-comparison", analyticsController.SemesterComparison)
			analytics.GET("/student/:id/summary", analyticsController.StudentSummary)
			analytics.GET("/cohort-stats", analyticsController.CohortStats)
			analytics.GET("/overview", analyticsController.Overview)
		}
	}
}
