package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonbook/cache"
	"salonbook/config"
	"salonbook/cron"
	"salonbook/database"
	appointmentRepoPkg "salonbook/database/repository/appointment"
	reportRepoPkg "salonbook/database/repository/report"
	userRepoPkg "salonbook/database/repository/user"
	"salonbook/handlers"
	"salonbook/middleware"
	"salonbook/routes"
	"salonbook/services/appointment"
	"salonbook/services/notification"
	"salonbook/services/report"
	"salonbook/services/user"
	"salonbook/utils"
	"salonbook/views"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	repRepo := reportRepoPkg.NewMongoReportRepo()
	usrRepo := userRepoPkg.NewMongoUserRepo()

	// view cache backend.
	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	var viewCache cache.ViewCache
	var redisClients []*redis.Client
	var memCache *cache.MemoryViewCache
	if config.AppConfig.CacheBackend == "redis" {
		client := utils.GetCacheClient()
		viewCache = cache.NewRedisViewCache(client)
		redisClients = append(redisClients, client)
	} else {
		memCache = cache.NewMemoryViewCache(config.AppConfig.CacheCapacity)
		memCache.StartJanitor(rootCtx, time.Minute)
		viewCache = memCache
	}

	invalidator := views.NewInvalidator(viewCache, logger)
	materializer := views.NewMaterializer(apptRepo, repRepo, usrRepo, viewCache, views.JSONPresenter{})

	// services.
	userService := user.NewUserService(usrRepo, invalidator, logger)
	appointmentService := appointment.NewAppointmentService(apptRepo, repRepo, usrRepo, invalidator, logger)
	reportService := report.NewReportService(repRepo, apptRepo, invalidator, logger)
	notificationService := notification.NewSMTPNotificationService()

	// handlers.
	authHandler := handlers.NewAuthHandler(userService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, materializer)
	reportHandler := handlers.NewReportHandler(reportService, materializer)
	userHandler := handlers.NewUserHandler(userService, materializer)
	adminHandler := handlers.NewAdminHandler(userService, reportService, materializer)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: usrRepo,

		// Auth endpoints.
		RegisterHandler: authHandler.RegisterHandler,
		LoginHandler:    authHandler.LoginHandler,

		// Appointment endpoints.
		CreateAppointmentHandler: appointmentHandler.CreateHandler,
		AcceptAppointmentHandler: appointmentHandler.AcceptHandler,
		CancelAppointmentHandler: appointmentHandler.CancelHandler,
		ModifyAppointmentHandler: appointmentHandler.ModifyHandler,
		DeleteAppointmentHandler: appointmentHandler.DeleteHandler,
		GetAppointmentHandler:    appointmentHandler.GetHandler,
		MyAppointmentsHandler:    appointmentHandler.MyAppointmentsHandler,

		// Report endpoints.
		CreateReportHandler:   reportHandler.CreateHandler,
		RespondReportHandler:  reportHandler.RespondHandler,
		FlagReportHandler:     reportHandler.FlagHandler,
		MarkSeenReportHandler: reportHandler.MarkSeenHandler,
		GetReportHandler:      reportHandler.GetHandler,
		MyReportsHandler:      reportHandler.MyReportsHandler,

		// User endpoints.
		ViewUserHandler:      userHandler.ViewUserHandler,
		UpdateProfileHandler: userHandler.UpdateProfileHandler,

		// Admin endpoints.
		DashboardHandler:          adminHandler.DashboardHandler,
		ManageAppointmentsHandler: adminHandler.ManageAppointmentsHandler,
		AllAppointmentsHandler:    adminHandler.AllAppointmentsHandler,
		ManageReportsHandler:      adminHandler.ManageReportsHandler,
		UpdateReportHandler:       adminHandler.UpdateReportHandler,
		DeleteReportHandler:       adminHandler.DeleteReportHandler,
		ManageUsersHandler:        adminHandler.ManageUsersHandler,
		UserAppointmentsHandler:   adminHandler.UserAppointmentsHandler,
		WarnUserHandler:           adminHandler.WarnUserHandler,
		ClearWarningHandler:       adminHandler.ClearWarningHandler,
		SetActiveUserHandler:      adminHandler.SetActiveHandler,
		DeleteUserHandler:         adminHandler.DeleteUserHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder pipeline and health monitor.
	cron.InitReminderWorker(notificationService)
	cron.InitReminderScheduler(apptRepo, func(ctx context.Context, userID string) (string, string, error) {
		u, err := usrRepo.GetByID(ctx, userID)
		if err != nil || u == nil {
			return "", "", err
		}
		return u.Email, u.FullName(), nil
	})
	utils.StartHealthMonitor(redisClients, database.MongoClient, memCache)

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
