package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/seojin/hakwonhub/internal/app/controllers"
	"github.com/seojin/hakwonhub/internal/app/models"
	"github.com/seojin/hakwonhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	guardianController *controllers.GuardianController,
	classController *controllers.ClassController,
	attendanceController *controllers.AttendanceController,
	invoiceController *controllers.InvoiceController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// Everything else requires a valid session; the tenant scope comes from
	// the token claims.
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/users/me", authController.Me)

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.POST("", studentController.CreateStudent)
			students.GET("/:id", studentController.GetStudent)
			students.PATCH("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)

			students.GET("/:id/guardians", guardianController.ListStudentGuardians)
			students.POST("/:id/guardians", guardianController.LinkGuardian)
			students.GET("/:id/invoices", invoiceController.ListStudentInvoices)
		}

		guardians := authenticated.Group("/guardians")
		{
			guardians.POST("", guardianController.CreateGuardian)
			guardians.GET("/:id", guardianController.GetGuardian)
			guardians.PATCH("/:id", guardianController.UpdateGuardian)
			guardians.DELETE("/:id", guardianController.DeleteGuardian)
		}

		classes := authenticated.Group("/classes")
		{
			classes.GET("", classController.ListClasses)
			classes.POST("", classController.CreateClass)
			classes.GET("/:id", classController.GetClass)
			classes.POST("/:id/enroll", classController.Enroll)
			classes.POST("/:id/withdraw", classController.Withdraw)

			classes.GET("/:id/sessions", attendanceController.ListClassSessions)
		}

		sessions := authenticated.Group("/attendance/sessions")
		{
			sessions.POST("", attendanceController.CreateSession)
			sessions.GET("/:id", attendanceController.GetSession)
			sessions.PATCH("/:id", attendanceController.UpdateSession)
			sessions.DELETE("/:id", attendanceController.DeleteSession)
		}

		// Billing is restricted to admin accounts
		invoices := authenticated.Group("/invoices")
		invoices.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			invoices.POST("", invoiceController.CreateInvoice)
			invoices.GET("/:id", invoiceController.GetInvoice)
			invoices.POST("/:id/payments", invoiceController.RecordPayment)
		}

		dashboard := authenticated.Group("/dashboard")
		{
			dashboard.GET("/stats", dashboardController.GetStats)
			dashboard.GET("/preferences", dashboardController.GetPreferences)
			dashboard.POST("/preferences", dashboardController.SavePreferences)
		}
	}
}
