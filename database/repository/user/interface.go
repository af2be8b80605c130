package userRepo

import (
	"context"
	"fmt"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// User list filters used by the admin views.
const (
	FilterAll           = "all"
	FilterClients       = "clients"
	FilterProfessionals = "professionals"
	FilterAdmins        = "admins"
	FilterWarned        = "warned"
	FilterDeactivated   = "deactivated"
)

// UserRepository persists user accounts. GetByID is also the pricing
// path's source for a provider's pay rate.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (string, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filter string) ([]models.User, error)
	SetWarning(ctx context.Context, id, warning string, count int) error
	SetActive(ctx context.Context, id string, active bool) error
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo returns a UserRepository backed by MongoDB.
func NewMongoUserRepo() UserRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoUserRepo{coll: db.Collection("users")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}
