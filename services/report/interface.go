// Package report implements the feedback report lifecycle: a consumer
// files one report per past appointment, the professional responds or
// flags it, and admins move it through its statuses.
package report

import (
	"context"
	"time"

	appointmentRepo "salonbook/database/repository/appointment"
	reportRepo "salonbook/database/repository/report"
	"salonbook/models"
	"salonbook/views"

	"go.uber.org/zap"
)

// CreateInput is the consumer's report submission.
type CreateInput struct {
	AppointmentID  string `json:"appointment_id" binding:"required"`
	FeedbackClient string `json:"feedback_client" binding:"required"`
}

// UpdateInput is the admin's status and feedback edit.
type UpdateInput struct {
	Status               string `json:"status" binding:"required"`
	FeedbackProfessional string `json:"feedback_professional"`
}

// ReportService is the report contract handlers program against.
type ReportService interface {
	Create(ctx context.Context, actor *models.User, in CreateInput) (*models.Report, error)
	Respond(ctx context.Context, actor *models.User, id, feedback string) error
	AdminUpdate(ctx context.Context, actor *models.User, id string, in UpdateInput) error
	SetFlag(ctx context.Context, actor *models.User, id string, flagged bool) error
	MarkSeen(ctx context.Context, actor *models.User, ids []string) error
	Delete(ctx context.Context, actor *models.User, id string) error
	Get(ctx context.Context, actor *models.User, id string) (*models.ReportDetail, error)
}

type DefaultReportService struct {
	Repo         reportRepo.ReportRepository
	Appointments appointmentRepo.AppointmentRepository
	Invalidator  *views.Invalidator
	Logger       *zap.Logger
	Now          func() time.Time
}

func NewReportService(repo reportRepo.ReportRepository, appts appointmentRepo.AppointmentRepository, inv *views.Invalidator, logger *zap.Logger) ReportService {
	return &DefaultReportService{
		Repo:         repo,
		Appointments: appts,
		Invalidator:  inv,
		Logger:       logger,
		Now:          time.Now,
	}
}
