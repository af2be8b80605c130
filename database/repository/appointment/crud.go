package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts an appointment and its service line in one transaction
// and returns the appointment ID.
func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment, svc *models.Service) (string, error) {
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	svc.AppointmentID = appt.ID
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt

	err := r.withTxn(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.apptColl.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment: %w", err)
		}
		if _, err := r.serviceColl.InsertOne(sc, svc); err != nil {
			return fmt.Errorf("insert service: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return appt.ID, nil
}

// Update replaces the appointment fields and its service line in one
// transaction.
func (r *mongoAppointmentRepo) Update(ctx context.Context, appt *models.Appointment, svc *models.Service) error {
	appt.UpdatedAt = time.Now()

	return r.withTxn(ctx, func(sc mongo.SessionContext) error {
		apptUpdate := bson.M{"$set": bson.M{
			"consumer_id":   appt.ConsumerID,
			"consumer_name": appt.ConsumerName,
			"provider_id":   appt.ProviderID,
			"provider_name": appt.ProviderName,
			"status":        appt.Status,
			"date":          appt.Date,
			"slot":          appt.Slot,
			"venue":         appt.Venue,
			"nber_services": appt.NberServices,
			"updated_at":    appt.UpdatedAt,
		}}
		res, err := r.apptColl.UpdateOne(sc, bson.M{"id": appt.ID}, apptUpdate)
		if err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
		if res.MatchedCount == 0 {
			return mongo.ErrNoDocuments
		}

		svcUpdate := bson.M{"$set": bson.M{
			"name":      svc.Name,
			"duration":  svc.Duration,
			"price":     svc.Price,
			"materials": svc.Materials,
		}}
		if _, err := r.serviceColl.UpdateOne(sc, bson.M{"appointment_id": appt.ID}, svcUpdate); err != nil {
			return fmt.Errorf("update service: %w", err)
		}
		return nil
	})
}

// UpdateStatus sets only the status field.
func (r *mongoAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.apptColl.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the service line first, then the appointment, inside one
// transaction.
func (r *mongoAppointmentRepo) Delete(ctx context.Context, id string) error {
	return r.withTxn(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.serviceColl.DeleteOne(sc, bson.M{"appointment_id": id}); err != nil {
			return fmt.Errorf("delete service: %w", err)
		}
		res, err := r.apptColl.DeleteOne(sc, bson.M{"id": id})
		if err != nil {
			return fmt.Errorf("delete appointment: %w", err)
		}
		if res.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}
		return nil
	})
}
