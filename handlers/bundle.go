package handlers

import (
	userRepoPkg "salonbook/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc

	// Appointment endpoints
	CreateAppointmentHandler gin.HandlerFunc
	AcceptAppointmentHandler gin.HandlerFunc
	CancelAppointmentHandler gin.HandlerFunc
	ModifyAppointmentHandler gin.HandlerFunc
	DeleteAppointmentHandler gin.HandlerFunc
	GetAppointmentHandler    gin.HandlerFunc
	MyAppointmentsHandler    gin.HandlerFunc

	// Report endpoints
	CreateReportHandler   gin.HandlerFunc
	RespondReportHandler  gin.HandlerFunc
	FlagReportHandler     gin.HandlerFunc
	MarkSeenReportHandler gin.HandlerFunc
	GetReportHandler      gin.HandlerFunc
	MyReportsHandler      gin.HandlerFunc

	// User endpoints
	ViewUserHandler      gin.HandlerFunc
	UpdateProfileHandler gin.HandlerFunc

	// Admin endpoints
	DashboardHandler          gin.HandlerFunc
	ManageAppointmentsHandler gin.HandlerFunc
	AllAppointmentsHandler    gin.HandlerFunc
	ManageReportsHandler      gin.HandlerFunc
	UpdateReportHandler       gin.HandlerFunc
	DeleteReportHandler       gin.HandlerFunc
	ManageUsersHandler        gin.HandlerFunc
	UserAppointmentsHandler   gin.HandlerFunc
	WarnUserHandler           gin.HandlerFunc
	ClearWarningHandler       gin.HandlerFunc
	SetActiveUserHandler      gin.HandlerFunc
	DeleteUserHandler         gin.HandlerFunc
}
