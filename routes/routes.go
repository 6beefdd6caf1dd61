package routes

import (
	"net/http"
	"time"

	patientRepo "panchakarma/database/repository/patient"
	practitionerRepo "panchakarma/database/repository/practitioner"
	"panchakarma/handlers"
	"panchakarma/middleware"
	"panchakarma/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPatientRoutes registers patient-facing endpoints: registration,
// profile, booking lifecycle, journeys and feedback.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle, practitioners practitionerRepo.PractitionerRepository, patients patientRepo.PatientRepository) {
	api := r.Group("/api/patients")
	{
		api.POST("/register", middleware.FirebaseTokenMiddleware(utils.AuthClient), hb.RegisterPatientHandler)

		protected := api.Group("")
		protected.Use(middleware.FirebaseAuthMiddleware(utils.AuthClient, practitioners, patients))
		protected.Use(middleware.RequireRole("patient"))
		protected.GET("/me", hb.GetPatientProfileHandler)
		protected.GET("/sessions", hb.PatientSessionsHandler)
		protected.POST("/sessions", hb.RequestSessionHandler)
		protected.POST("/sessions/:sessionID/order", hb.CreatePaymentOrderHandler)
		protected.POST("/payments/confirm", hb.ConfirmPaymentHandler)
		protected.DELETE("/sessions/:sessionID", hb.CancelSessionHandler)
		protected.PUT("/sessions/:sessionID/reschedule", hb.RescheduleSessionHandler)
		protected.GET("/journeys", hb.ListJourneysHandler)
		protected.PUT("/journeys/:journeyID/tasks/:taskIndex/complete", hb.CompleteTaskHandler)
		protected.POST("/feedback", hb.SubmitFeedbackHandler)
	}
}

// RegisterPractitionerRoutes registers practitioner endpoints: registration,
// profile and schedule management, and the session dashboard.
func RegisterPractitionerRoutes(r *gin.Engine, hb *handlers.HandlerBundle, practitioners practitionerRepo.PractitionerRepository, patients patientRepo.PatientRepository) {
	api := r.Group("/api/practitioners")
	{
		api.POST("/register", middleware.FirebaseTokenMiddleware(utils.AuthClient), hb.RegisterPractitionerHandler)

		// Public browsing endpoints for patients picking a practitioner.
		api.GET("", hb.ListPractitionersHandler)
		api.GET("/id/:practitionerUID", hb.GetPractitionerHandler)
		api.GET("/id/:practitionerUID/availability", hb.GetAvailabilityHandler)

		protected := api.Group("")
		protected.Use(middleware.FirebaseAuthMiddleware(utils.AuthClient, practitioners, patients))
		protected.Use(middleware.RequireRole("practitioner", "admin"))
		protected.PATCH("/me", hb.UpdatePractitionerHandler)
		protected.PUT("/me/recurring", hb.SetRecurringHandler)
		protected.PUT("/me/overrides", hb.SetOverrideHandler)
		protected.GET("/me/sessions", hb.PractitionerSessionsHandler)
		protected.PUT("/me/sessions/:sessionID/complete", hb.CompleteSessionHandler)
		protected.GET("/me/feedback", hb.PractitionerFeedbackHandler)
	}
}

// RegisterNotificationRoutes registers the shared inbox endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle, practitioners practitionerRepo.PractitionerRepository, patients patientRepo.PatientRepository) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.FirebaseAuthMiddleware(utils.AuthClient, practitioners, patients))
		api.GET("", hb.ListNotificationsHandler)
		api.GET("/preferences", hb.GetNotificationPreferencesHandler)
		api.PUT("/preferences", hb.SaveNotificationPreferencesHandler)
	}
}

// RegisterAdminRoutes registers the verification queue endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, practitioners practitionerRepo.PractitionerRepository, patients patientRepo.PatientRepository) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.FirebaseAuthMiddleware(utils.AuthClient, practitioners, patients))
		api.Use(middleware.RequireRole("admin"))
		api.GET("/practitioners/pending", hb.AdminPendingPractitionersHandler)
		api.PUT("/practitioners/approve/:practitionerUID", hb.AdminApprovePractitionerHandler)
		api.GET("/patients", hb.AdminPatientsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, practitioners practitionerRepo.PractitionerRepository, patients patientRepo.PatientRepository) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPatientRoutes(r, hb, practitioners, patients)
	RegisterPractitionerRoutes(r, hb, practitioners, patients)
	RegisterNotificationRoutes(r, hb, practitioners, patients)
	RegisterAdminRoutes(r, hb, practitioners, patients)
}
