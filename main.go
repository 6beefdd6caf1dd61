package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"panchakarma/config"
	"panchakarma/cron"
	"panchakarma/database"
	availabilityRepoPkg "panchakarma/database/repository/availability"
	feedbackRepoPkg "panchakarma/database/repository/feedback"
	journeyRepoPkg "panchakarma/database/repository/journey"
	notificationRepoPkg "panchakarma/database/repository/notification"
	patientRepoPkg "panchakarma/database/repository/patient"
	practitionerRepoPkg "panchakarma/database/repository/practitioner"
	schedulerRepoPkg "panchakarma/database/repository/scheduler"
	sessionRepoPkg "panchakarma/database/repository/session"
	"panchakarma/handlers"
	"panchakarma/middleware"
	"panchakarma/routes"
	"panchakarma/services/booking"
	"panchakarma/services/journey"
	"panchakarma/services/notification"
	"panchakarma/services/payment"
	"panchakarma/services/practitioner"
	"panchakarma/services/scheduling"
	"panchakarma/services/tasks"
	"panchakarma/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	practitionerRepo := practitionerRepoPkg.NewMongoPractitionerRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	schedulerRepo := schedulerRepoPkg.NewMongoSchedulerRepo()
	journeyRepo := journeyRepoPkg.NewMongoJourneyRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	feedbackRepo := feedbackRepoPkg.NewMongoFeedbackRepo()

	// services.
	availabilityService := &scheduling.DefaultAvailabilityService{
		Profiles:    availabilityRepo,
		Sessions:    sessionRepo,
		Cache:       utils.GetCacheClient(),
		HorizonDays: config.AppConfig.AvailabilityHorizonDays,
		CacheTTL:    time.Duration(config.AppConfig.AvailabilityCacheSeconds) * time.Second,
	}

	notificationService := &notification.DefaultNotificationService{
		Repo:          notificationRepo,
		Patients:      patientRepo,
		Practitioners: practitionerRepo,
		FCM:           utils.FCMClient,
	}

	journeyService := &journey.DefaultJourneyService{
		Repo: journeyRepo,
	}

	reminderScheduler := tasks.NewReminderScheduler(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	sessionService := &booking.DefaultSessionService{
		Sessions:      sessionRepo,
		Patients:      patientRepo,
		Practitioners: practitionerRepo,
		Scheduler:     schedulerRepo,
		Availability:  availabilityService,
		Journeys:      journeyService,
		Gateway:       payment.NewRazorpayGateway(config.AppConfig.RazorpayKeyID, config.AppConfig.RazorpayKeySecret),
		Notifier:      notificationService,
		Reminders:     reminderScheduler,
		Categories:    config.AppConfig.TherapyCategories,
		RazorpayKeyID: config.AppConfig.RazorpayKeyID,
	}

	practitionerService := &practitioner.DefaultPractitionerService{
		Repo:         practitionerRepo,
		Profiles:     availabilityRepo,
		Availability: availabilityService,
		Notifier:     notificationService,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions:      sessionService,
		Practitioners: practitionerService,
		Availability:  availabilityService,
		Journeys:      journeyService,
		Notifications: notificationService,
		Patients:      patientRepo,
		Feedback:      feedbackRepo,
	}

	routes.RegisterRoutes(router, handlerBundle, practitionerRepo, patientRepo)

	// Start the reminder worker.
	cron.InitReminderWorker(sessionRepo, notificationService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
