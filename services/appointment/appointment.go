package appointment

import (
	"context"
	"time"

	"salonbook/models"
	"salonbook/pkg/fault"
	"salonbook/services/scheduling"

	"go.uber.org/zap"
)

// Create validates the requested slot, duration and service count,
// prices the service line off the provider's pay rate and stores the
// appointment in the requested state. Validation runs before any write
// so a rejected booking leaves the store untouched.
func (s *DefaultAppointmentService) Create(ctx context.Context, actor *models.User, in CreateInput) (*models.AppointmentDetail, error) {
	if err := scheduling.Validate(in.Slot, in.Duration, in.NberServices); err != nil {
		return nil, err
	}

	provider, err := s.Users.GetByID(ctx, in.ProviderID)
	if err != nil {
		return nil, fault.NewStoreError("get provider", err)
	}
	if provider == nil || provider.UserType != models.UserTypeProfessional {
		return nil, fault.NewNotFoundError("provider", in.ProviderID)
	}

	now := time.Now()
	appt := &models.Appointment{
		ConsumerID:   actor.ID,
		ProviderID:   provider.ID,
		ConsumerName: actor.FullName(),
		ProviderName: provider.FullName(),
		Status:       models.AppointmentRequested,
		Date:         in.Date,
		Slot:         in.Slot,
		Venue:        in.Venue,
		NberServices: in.NberServices,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	svc := &models.Service{
		Name:      in.ServiceName,
		Duration:  in.Duration,
		Price:     scheduling.Price(in.Duration, in.NberServices, provider.PayRate),
		Materials: in.Materials,
	}

	id, err := s.Repo.Create(ctx, appt, svc)
	if err != nil {
		return nil, fault.NewStoreError("create appointment", err)
	}

	s.invalidate(ctx, id, appt.ConsumerID, appt.ProviderID)
	return &models.AppointmentDetail{Appointment: *appt, Service: *svc}, nil
}

// Accept moves a requested appointment to accepted. Only the provider
// may accept; admins cannot accept on a provider's behalf.
func (s *DefaultAppointmentService) Accept(ctx context.Context, actor *models.User, id string) error {
	detail, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}
	if actor.ID != detail.ProviderID {
		return fault.NewAuthorizationError(fault.CodeNotProvider, "only the provider may accept appointment %s", id)
	}
	if detail.Status != models.AppointmentRequested {
		return fault.NewConflictError(fault.CodeInvalidTransition, "cannot accept a %s appointment", detail.Status)
	}

	if err := s.Repo.UpdateStatus(ctx, id, models.AppointmentAccepted); err != nil {
		return fault.NewStoreError("update status", err)
	}
	s.invalidate(ctx, id, detail.ConsumerID, detail.ProviderID)
	return nil
}

// Cancel moves a requested appointment to cancelled. Only a participant
// may cancel, and only while the appointment is still requested; once
// the provider has accepted, the booking can only be deleted.
func (s *DefaultAppointmentService) Cancel(ctx context.Context, actor *models.User, id string) error {
	detail, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}
	if !detail.IsParticipant(actor.ID) {
		return fault.NewAuthorizationError(fault.CodeNotParticipant, "user %s is not part of appointment %s", actor.ID, id)
	}
	if detail.Status != models.AppointmentRequested {
		return fault.NewConflictError(fault.CodeInvalidTransition, "cannot cancel a %s appointment", detail.Status)
	}

	if err := s.Repo.UpdateStatus(ctx, id, models.AppointmentCancelled); err != nil {
		return fault.NewStoreError("update status", err)
	}
	s.invalidate(ctx, id, detail.ConsumerID, detail.ProviderID)
	return nil
}

// Modify reschedules an appointment: new date, slot, venue or service
// line. The new slot is validated and the price recomputed exactly as
// on creation, before any write.
func (s *DefaultAppointmentService) Modify(ctx context.Context, actor *models.User, id string, in ModifyInput) (*models.AppointmentDetail, error) {
	if err := scheduling.Validate(in.Slot, in.Duration, in.NberServices); err != nil {
		return nil, err
	}

	detail, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if !detail.IsParticipant(actor.ID) && !actor.IsAdmin() {
		return nil, fault.NewAuthorizationError(fault.CodeNotParticipant, "user %s is not part of appointment %s", actor.ID, id)
	}
	if detail.Status == models.AppointmentCancelled {
		return nil, fault.NewConflictError(fault.CodeInvalidTransition, "cannot modify a cancelled appointment")
	}

	provider, err := s.Users.GetByID(ctx, detail.ProviderID)
	if err != nil {
		return nil, fault.NewStoreError("get provider", err)
	}
	var payRate *float64
	if provider != nil {
		payRate = provider.PayRate
	}

	appt := detail.Appointment
	appt.Date = in.Date
	appt.Slot = in.Slot
	appt.Venue = in.Venue
	appt.NberServices = in.NberServices
	appt.UpdatedAt = time.Now()

	svc := detail.Service
	svc.Name = in.ServiceName
	svc.Duration = in.Duration
	svc.Price = scheduling.Price(in.Duration, in.NberServices, payRate)
	svc.Materials = in.Materials

	if err := s.Repo.Update(ctx, &appt, &svc); err != nil {
		return nil, fault.NewStoreError("update appointment", err)
	}
	s.invalidate(ctx, id, appt.ConsumerID, appt.ProviderID)
	return &models.AppointmentDetail{Appointment: appt, Service: svc}, nil
}

// Delete removes an appointment and its service line. An appointment
// with a report attached cannot be deleted; the report must go first.
func (s *DefaultAppointmentService) Delete(ctx context.Context, actor *models.User, id string) error {
	detail, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}
	if !detail.IsParticipant(actor.ID) && !actor.IsAdmin() {
		return fault.NewAuthorizationError(fault.CodeUnauthorized, "user %s may not delete appointment %s", actor.ID, id)
	}

	report, err := s.Reports.GetByAppointment(ctx, id)
	if err != nil {
		return fault.NewStoreError("get report", err)
	}
	if report != nil {
		return fault.NewConflictError(fault.CodeReportLinked, "appointment %s has report %s attached", id, report.ID)
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fault.NewStoreError("delete appointment", err)
	}
	s.invalidate(ctx, id, detail.ConsumerID, detail.ProviderID)
	return nil
}

// Get returns one appointment. Non-admins may only read appointments
// they participate in.
func (s *DefaultAppointmentService) Get(ctx context.Context, actor *models.User, id string) (*models.AppointmentDetail, error) {
	detail, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if !detail.IsParticipant(actor.ID) && !actor.IsAdmin() {
		return nil, fault.NewAuthorizationError(fault.CodeNotParticipant, "user %s is not part of appointment %s", actor.ID, id)
	}
	return detail, nil
}

func (s *DefaultAppointmentService) mustGet(ctx context.Context, id string) (*models.AppointmentDetail, error) {
	detail, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fault.NewStoreError("get appointment", err)
	}
	if detail == nil {
		return nil, fault.NewNotFoundError("appointment", id)
	}
	return detail, nil
}

// invalidate fans the mutation out to the view cache. A purge failure
// is logged but never fails the committed write.
func (s *DefaultAppointmentService) invalidate(ctx context.Context, id, consumerID, providerID string) {
	if err := s.Invalidator.AppointmentChanged(ctx, id, consumerID, providerID); err != nil {
		s.Logger.Warn("appointment view invalidation incomplete",
			zap.String("appointment_id", id),
			zap.Error(err))
	}
}
