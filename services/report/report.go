package report

import (
	"context"
	"time"

	"salonbook/models"
	"salonbook/pkg/fault"

	"go.uber.org/zap"
)

var validStatuses = map[string]bool{
	models.ReportOpen:   true,
	models.ReportClosed: true,
	models.ReportGrieve: true,
	models.ReportDone:   true,
}

// Create files a report against an appointment. Only the consumer of
// the appointment may file, only after the appointment date has passed,
// and only once: a second report for the same appointment is a conflict.
func (s *DefaultReportService) Create(ctx context.Context, actor *models.User, in CreateInput) (*models.Report, error) {
	appt, err := s.Appointments.GetByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, fault.NewStoreError("get appointment", err)
	}
	if appt == nil {
		return nil, fault.NewNotFoundError("appointment", in.AppointmentID)
	}
	if actor.ID != appt.ConsumerID {
		return nil, fault.NewAuthorizationError(fault.CodeNotParticipant, "only the consumer of appointment %s may report it", in.AppointmentID)
	}
	if !s.datePassed(appt.Date) {
		return nil, fault.NewConflictError(fault.CodeAppointmentNotPast, "appointment %s has not taken place yet", in.AppointmentID)
	}

	existing, err := s.Repo.GetByAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, fault.NewStoreError("get report", err)
	}
	if existing != nil {
		return nil, fault.NewConflictError(fault.CodeReportExists, "appointment %s already has report %s", in.AppointmentID, existing.ID)
	}

	report := &models.Report{
		AppointmentID:  in.AppointmentID,
		Status:         models.ReportOpen,
		FeedbackClient: in.FeedbackClient,
		DateReport:     time.Now(),
	}
	id, err := s.Repo.Create(ctx, report)
	if err != nil {
		return nil, fault.NewStoreError("create report", err)
	}

	s.invalidate(ctx, id, appt.ConsumerID)
	return report, nil
}

// Respond records the professional's feedback on a report. Only the
// provider of the reported appointment may respond.
func (s *DefaultReportService) Respond(ctx context.Context, actor *models.User, id, feedback string) error {
	detail, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}
	if actor.ID != detail.ProviderID {
		return fault.NewAuthorizationError(fault.CodeNotProvider, "only the provider may respond to report %s", id)
	}

	report := detail.Report
	report.FeedbackProfessional = feedback
	if err := s.Repo.Update(ctx, &report); err != nil {
		return fault.NewStoreError("update report", err)
	}
	s.invalidate(ctx, id, detail.ConsumerID)
	return nil
}

// AdminUpdate moves a report to a new status and optionally edits the
// professional feedback on its behalf.
func (s *DefaultReportService) AdminUpdate(ctx context.Context, actor *models.User, id string, in UpdateInput) error {
	if !actor.IsAdmin() {
		return fault.NewAuthorizationError(fault.CodeUnauthorized, "admin access required")
	}
	if !validStatuses[in.Status] {
		return fault.NewValidationError(fault.CodeInvalidStatus, "unknown report status %q", in.Status)
	}

	detail, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}
	report := detail.Report
	report.Status = in.Status
	if in.FeedbackProfessional != "" {
		report.FeedbackProfessional = in.FeedbackProfessional
	}
	if err := s.Repo.Update(ctx, &report); err != nil {
		return fault.NewStoreError("update report", err)
	}
	s.invalidate(ctx, id, detail.ConsumerID)
	return nil
}

// SetFlag raises or clears the professional's grievance flag.
func (s *DefaultReportService) SetFlag(ctx context.Context, actor *models.User, id string, flagged bool) error {
	detail, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}
	if actor.ID != detail.ProviderID && !actor.IsAdmin() {
		return fault.NewAuthorizationError(fault.CodeNotProvider, "only the provider may flag report %s", id)
	}

	if err := s.Repo.SetFlag(ctx, id, flagged); err != nil {
		return fault.NewStoreError("flag report", err)
	}
	s.invalidate(ctx, id, detail.ConsumerID)
	return nil
}

// MarkSeen records that the consumer has seen the responses on their
// reports. The ids must all belong to the actor.
func (s *DefaultReportService) MarkSeen(ctx context.Context, actor *models.User, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		detail, err := s.mustGet(ctx, id)
		if err != nil {
			return err
		}
		if actor.ID != detail.ConsumerID {
			return fault.NewAuthorizationError(fault.CodeNotParticipant, "report %s does not belong to user %s", id, actor.ID)
		}
	}

	if err := s.Repo.MarkSeenByClient(ctx, ids); err != nil {
		return fault.NewStoreError("mark reports seen", err)
	}
	for _, id := range ids {
		s.invalidate(ctx, id, actor.ID)
	}
	return nil
}

// Delete removes a report. Admin only; deleting the report is what
// unblocks deletion of its appointment.
func (s *DefaultReportService) Delete(ctx context.Context, actor *models.User, id string) error {
	if !actor.IsAdmin() {
		return fault.NewAuthorizationError(fault.CodeUnauthorized, "admin access required")
	}
	detail, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fault.NewStoreError("delete report", err)
	}
	s.invalidate(ctx, id, detail.ConsumerID)
	return nil
}

// Get returns one report. Non-admins may only read reports on
// appointments they participate in.
func (s *DefaultReportService) Get(ctx context.Context, actor *models.User, id string) (*models.ReportDetail, error) {
	detail, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != detail.ConsumerID && actor.ID != detail.ProviderID && !actor.IsAdmin() {
		return nil, fault.NewAuthorizationError(fault.CodeNotParticipant, "user %s is not part of report %s", actor.ID, id)
	}
	return detail, nil
}

// datePassed reports whether the appointment day is strictly before
// today. An unparseable date never counts as past.
func (s *DefaultReportService) datePassed(date string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return d.Before(s.Now().Truncate(24 * time.Hour))
}

func (s *DefaultReportService) mustGet(ctx context.Context, id string) (*models.ReportDetail, error) {
	detail, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fault.NewStoreError("get report", err)
	}
	if detail == nil {
		return nil, fault.NewNotFoundError("report", id)
	}
	return detail, nil
}

func (s *DefaultReportService) invalidate(ctx context.Context, id, consumerID string) {
	if err := s.Invalidator.ReportChanged(ctx, id, consumerID); err != nil {
		s.Logger.Warn("report view invalidation incomplete",
			zap.String("report_id", id),
			zap.Error(err))
	}
}
