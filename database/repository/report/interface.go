package reportRepo

import (
	"context"
	"fmt"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReportRepository persists feedback reports. GetByAppointment returning a
// non-nil report is what blocks appointment deletion.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) (string, error)
	Update(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.ReportDetail, error)
	GetByAppointment(ctx context.Context, appointmentID string) (*models.Report, error)
	ListAll(ctx context.Context) ([]models.ReportDetail, error)
	ListByUser(ctx context.Context, userID string) ([]models.ReportDetail, error)
	SetFlag(ctx context.Context, id string, flagged bool) error
	MarkSeenByClient(ctx context.Context, ids []string) error
}

type mongoReportRepo struct {
	reportColl *mongo.Collection
	apptColl   *mongo.Collection
}

// NewMongoReportRepo returns a ReportRepository backed by MongoDB.
func NewMongoReportRepo() ReportRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoReportRepo{
		reportColl: db.Collection("reports"),
		apptColl:   db.Collection("appointments"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}
