package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"practice-admin-server/internal/config"
	"practice-admin-server/internal/handlers"
	"practice-admin-server/internal/middleware"
	"practice-admin-server/internal/models"
	"practice-admin-server/internal/notify"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, mailer *notify.Mailer) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	patientHandler := handlers.NewPatientHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, mailer)
	symptomHandler := handlers.NewSymptomHandler(db)
	carePlanHandler := handlers.NewCarePlanHandler(db)
	analyticsHandler := handlers.NewAnalyticsHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// Patient records, with symptom journal and care plans as sub-resources
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.GET("", patientHandler.ListPatients)
			patientRoutes.POST("", patientHandler.CreatePatient)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.PUT("/:id", patientHandler.UpdatePatient)
			patientRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), patientHandler.DeletePatient)

			patientRoutes.GET("/:id/symptoms", symptomHandler.ListSymptomEntries)
			patientRoutes.POST("/:id/symptoms", symptomHandler.CreateSymptomEntry)

			patientRoutes.GET("/:id/care-plans", carePlanHandler.ListCarePlans)
			patientRoutes.POST("/:id/care-plans", carePlanHandler.CreateCarePlan)
		}

		private.PUT("/care-plans/:id/status", carePlanHandler.UpdateCarePlanStatus)

		// Provider directory
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.ListDoctors)
			doctorRoutes.POST("", doctorHandler.CreateDoctor)
			doctorRoutes.GET("/:id", doctorHandler.GetDoctorByID)
			doctorRoutes.PUT("/:id", doctorHandler.UpdateDoctor)
			doctorRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), doctorHandler.DeleteDoctor)
		}

		// Appointment lifecycle and scheduling analytics
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.ListAppointments)
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)

			// Analytics endpoints registered before :id so the router keeps them distinct
			appointmentRoutes.GET("/analytics/wait-time", appointmentHandler.GetWaitTimePrediction)
			appointmentRoutes.GET("/analytics/recommended-slots", appointmentHandler.GetRecommendedSlots)

			appointmentRoutes.PUT("/:id/status", appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
			appointmentRoutes.POST("/:id/start", appointmentHandler.StartAppointment)
		}

		// Dashboard rollups
		analyticsRoutes := private.Group("/analytics")
		{
			analyticsRoutes.GET("/appointments", analyticsHandler.GetAppointmentAnalytics)
			analyticsRoutes.GET("/patients", analyticsHandler.GetPatientAnalytics)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
