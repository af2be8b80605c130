// Package appointment implements the appointment lifecycle: creation,
// the requested/accepted/cancelled transitions, modification and
// deletion, with every mutation validated before it touches the store
// and fanned out to the view cache after it commits.
package appointment

import (
	"context"

	appointmentRepo "salonbook/database/repository/appointment"
	reportRepo "salonbook/database/repository/report"
	userRepo "salonbook/database/repository/user"
	"salonbook/models"
	"salonbook/views"

	"go.uber.org/zap"
)

// CreateInput carries the fields a consumer submits when booking.
type CreateInput struct {
	ProviderID   string `json:"provider_id" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Slot         string `json:"slot" binding:"required"`
	Venue        string `json:"venue" binding:"required"`
	ServiceName  string `json:"service_name" binding:"required"`
	Duration     int    `json:"duration" binding:"required"`
	NberServices int    `json:"nber_services" binding:"required"`
	Materials    string `json:"materials"`
}

// ModifyInput carries the reschedulable fields. Participants stay fixed;
// only the when, where and what of the booking can change.
type ModifyInput struct {
	Date         string `json:"date" binding:"required"`
	Slot         string `json:"slot" binding:"required"`
	Venue        string `json:"venue" binding:"required"`
	ServiceName  string `json:"service_name" binding:"required"`
	Duration     int    `json:"duration" binding:"required"`
	NberServices int    `json:"nber_services" binding:"required"`
	Materials    string `json:"materials"`
}

// AppointmentService is the lifecycle contract handlers program against.
type AppointmentService interface {
	Create(ctx context.Context, actor *models.User, in CreateInput) (*models.AppointmentDetail, error)
	Accept(ctx context.Context, actor *models.User, id string) error
	Cancel(ctx context.Context, actor *models.User, id string) error
	Modify(ctx context.Context, actor *models.User, id string, in ModifyInput) (*models.AppointmentDetail, error)
	Delete(ctx context.Context, actor *models.User, id string) error
	Get(ctx context.Context, actor *models.User, id string) (*models.AppointmentDetail, error)
}

// DefaultAppointmentService wires the repositories, the invalidation
// coordinator and the logger.
type DefaultAppointmentService struct {
	Repo        appointmentRepo.AppointmentRepository
	Reports     reportRepo.ReportRepository
	Users       userRepo.UserRepository
	Invalidator *views.Invalidator
	Logger      *zap.Logger
}

func NewAppointmentService(repo appointmentRepo.AppointmentRepository, reports reportRepo.ReportRepository, users userRepo.UserRepository, inv *views.Invalidator, logger *zap.Logger) AppointmentService {
	return &DefaultAppointmentService{
		Repo:        repo,
		Reports:     reports,
		Users:       users,
		Invalidator: inv,
		Logger:      logger,
	}
}
