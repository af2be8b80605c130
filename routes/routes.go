package routes

import (
	"net/http"
	"time"

	"salonbook/handlers"
	"salonbook/middleware"
	"salonbook/models"
	"salonbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the public registration and sign-in
// endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
	}
}

// RegisterAppointmentRoutes registers the appointment lifecycle
// endpoints. All of them require authentication.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/mine", hb.MyAppointmentsHandler)
		api.POST("", hb.CreateAppointmentHandler)
		api.GET("/:id", hb.GetAppointmentHandler)
		api.PUT("/:id", hb.ModifyAppointmentHandler)
		api.POST("/:id/accept", hb.AcceptAppointmentHandler)
		api.POST("/:id/cancel", hb.CancelAppointmentHandler)
		api.DELETE("/:id", hb.DeleteAppointmentHandler)
	}
}

// RegisterReportRoutes registers the feedback report endpoints.
func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/mine", hb.MyReportsHandler)
		api.POST("", hb.CreateReportHandler)
		api.GET("/:id", hb.GetReportHandler)
		api.POST("/:id/respond", hb.RespondReportHandler)
		api.POST("/:id/flag", hb.FlagReportHandler)
		api.POST("/seen", hb.MarkSeenReportHandler)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/:id", hb.ViewUserHandler)
		api.PUT("/:id", hb.UpdateProfileHandler)
	}
}

// RegisterAdminRoutes registers the admin boards and moderation
// endpoints. Everything here requires an admin account.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	api.Use(middleware.RequireAdmin())
	{
		api.GET("/dashboard", hb.DashboardHandler)
		api.GET("/appointments", hb.ManageAppointmentsHandler)
		api.GET("/appointments/all", hb.AllAppointmentsHandler)
		api.GET("/reports", hb.ManageReportsHandler)
		api.PUT("/reports/:id", hb.UpdateReportHandler)
		api.DELETE("/reports/:id", hb.DeleteReportHandler)
		api.GET("/users", hb.ManageUsersHandler)
		api.GET("/users/:id/appointments", hb.UserAppointmentsHandler)
		api.POST("/users/:id/warn", hb.WarnUserHandler)
		api.DELETE("/users/:id/warn", hb.ClearWarningHandler)
		api.PUT("/users/:id/active", hb.SetActiveUserHandler)

		super := api.Group("")
		super.Use(middleware.RequireTypes(models.UserTypeAdminSuper))
		super.DELETE("/users/:id", hb.DeleteUserHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes wires the full route table.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterReportRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
