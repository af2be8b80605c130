package appointmentRepo

import (
	"context"
	"fmt"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository persists appointments and their owned service
// lines. Create, Update and Delete touch both collections and must be
// all-or-nothing.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment, svc *models.Service) (string, error)
	Update(ctx context.Context, appt *models.Appointment, svc *models.Service) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.AppointmentDetail, error)
	ListAll(ctx context.Context) ([]models.AppointmentDetail, error)
	ListByConsumer(ctx context.Context, userID string) ([]models.AppointmentDetail, error)
	ListByProvider(ctx context.Context, userID string) ([]models.AppointmentDetail, error)
	ListByDate(ctx context.Context, date string) ([]models.AppointmentDetail, error)
}

type mongoAppointmentRepo struct {
	apptColl    *mongo.Collection
	serviceColl *mongo.Collection
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by
// MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoAppointmentRepo{
		apptColl:    db.Collection("appointments"),
		serviceColl: db.Collection("services"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}
