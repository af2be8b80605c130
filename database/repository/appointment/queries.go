package appointmentRepo

import (
	"context"
	"fmt"

	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID returns the appointment joined with its service line, or nil if
// no appointment exists.
func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.AppointmentDetail, error) {
	var appt models.Appointment
	err := r.apptColl.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find appointment: %w", err)
	}

	detail := models.AppointmentDetail{Appointment: appt}
	err = r.serviceColl.FindOne(ctx, bson.M{"appointment_id": id}).Decode(&detail.Service)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("find service: %w", err)
	}
	return &detail, nil
}

// ListAll returns every appointment with its service line, ordered by date
// then slot.
func (r *mongoAppointmentRepo) ListAll(ctx context.Context) ([]models.AppointmentDetail, error) {
	return r.list(ctx, bson.M{})
}

// ListByConsumer returns the appointments booked by a client.
func (r *mongoAppointmentRepo) ListByConsumer(ctx context.Context, userID string) ([]models.AppointmentDetail, error) {
	return r.list(ctx, bson.M{"consumer_id": userID})
}

// ListByProvider returns the appointments assigned to a professional.
func (r *mongoAppointmentRepo) ListByProvider(ctx context.Context, userID string) ([]models.AppointmentDetail, error) {
	return r.list(ctx, bson.M{"provider_id": userID})
}

// ListByDate returns the appointments on a given "YYYY-MM-DD" date.
func (r *mongoAppointmentRepo) ListByDate(ctx context.Context, date string) ([]models.AppointmentDetail, error) {
	return r.list(ctx, bson.M{"date": date})
}

func (r *mongoAppointmentRepo) list(ctx context.Context, filter bson.M) ([]models.AppointmentDetail, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "slot", Value: 1}})
	cursor, err := r.apptColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	if len(appts) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(appts))
	for _, a := range appts {
		ids = append(ids, a.ID)
	}
	svcCursor, err := r.serviceColl.Find(ctx, bson.M{"appointment_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer svcCursor.Close(ctx)

	var services []models.Service
	if err := svcCursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	byAppt := make(map[string]models.Service, len(services))
	for _, s := range services {
		byAppt[s.AppointmentID] = s
	}

	details := make([]models.AppointmentDetail, 0, len(appts))
	for _, a := range appts {
		details = append(details, models.AppointmentDetail{
			Appointment: a,
			Service:     byAppt[a.ID],
		})
	}
	return details, nil
}
