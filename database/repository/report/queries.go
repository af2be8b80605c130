package reportRepo

import (
	"context"
	"fmt"

	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID returns a report joined with participant names from its
// appointment, or nil if no report exists.
func (r *mongoReportRepo) GetByID(ctx context.Context, id string) (*models.ReportDetail, error) {
	var report models.Report
	err := r.reportColl.FindOne(ctx, bson.M{"id": id}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	detail, err := r.join(ctx, report)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// GetByAppointment returns the report linked to an appointment, or nil.
func (r *mongoReportRepo) GetByAppointment(ctx context.Context, appointmentID string) (*models.Report, error) {
	var report models.Report
	err := r.reportColl.FindOne(ctx, bson.M{"appointment_id": appointmentID}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find report by appointment: %w", err)
	}
	return &report, nil
}

// ListAll returns every report with participant names, newest first.
func (r *mongoReportRepo) ListAll(ctx context.Context) ([]models.ReportDetail, error) {
	return r.listJoined(ctx, bson.M{}, nil)
}

// ListByUser returns the reports whose appointment involves userID as
// consumer or provider, newest first.
func (r *mongoReportRepo) ListByUser(ctx context.Context, userID string) ([]models.ReportDetail, error) {
	match := func(appt *models.Appointment) bool {
		return appt != nil && appt.IsParticipant(userID)
	}
	return r.listJoined(ctx, bson.M{}, match)
}

func (r *mongoReportRepo) listJoined(ctx context.Context, filter bson.M, keep func(*models.Appointment) bool) ([]models.ReportDetail, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_report", Value: -1}})
	cursor, err := r.reportColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}

	details := make([]models.ReportDetail, 0, len(reports))
	for _, report := range reports {
		appt, err := r.findAppointment(ctx, report.AppointmentID)
		if err != nil {
			return nil, err
		}
		if keep != nil && !keep(appt) {
			continue
		}
		detail := models.ReportDetail{Report: report}
		if appt != nil {
			detail.ConsumerID = appt.ConsumerID
			detail.ProviderID = appt.ProviderID
			detail.ConsumerName = appt.ConsumerName
			detail.ProviderName = appt.ProviderName
		}
		details = append(details, detail)
	}
	return details, nil
}

func (r *mongoReportRepo) join(ctx context.Context, report models.Report) (*models.ReportDetail, error) {
	detail := models.ReportDetail{Report: report}
	appt, err := r.findAppointment(ctx, report.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appt != nil {
		detail.ConsumerID = appt.ConsumerID
		detail.ProviderID = appt.ProviderID
		detail.ConsumerName = appt.ConsumerName
		detail.ProviderName = appt.ProviderName
	}
	return &detail, nil
}

func (r *mongoReportRepo) findAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.apptColl.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find linked appointment: %w", err)
	}
	return &appt, nil
}
