// Package user implements account management: registration, sign-in,
// profile updates and the admin moderation operations (warnings,
// activation, removal).
package user

import (
	"context"

	userRepo "salonbook/database/repository/user"
	"salonbook/models"
	"salonbook/views"

	"go.uber.org/zap"
)

// RegisterInput is the sign-up submission.
type RegisterInput struct {
	Username    string   `json:"username" binding:"required"`
	Password    string   `json:"password" binding:"required,min=8"`
	UserType    string   `json:"user_type" binding:"required"`
	Fname       string   `json:"fname" binding:"required"`
	Lname       string   `json:"lname" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	PhoneNumber string   `json:"phone_number"`
	Address     string   `json:"address"`
	Age         int      `json:"age"`
	Specialty   string   `json:"specialty"`
	PayRate     *float64 `json:"pay_rate"`
}

// UpdateInput is the profile edit submission.
type UpdateInput struct {
	Fname       string   `json:"fname"`
	Lname       string   `json:"lname"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	Address     string   `json:"address"`
	Age         int      `json:"age"`
	Specialty   string   `json:"specialty"`
	PayRate     *float64 `json:"pay_rate"`
}

// AuthResponse is the sign-in result.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// UserService is the account contract handlers program against.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*AuthResponse, error)
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, filter string) ([]models.User, error)
	Update(ctx context.Context, actor *models.User, id string, in UpdateInput) (*models.User, error)
	Warn(ctx context.Context, actor *models.User, id, warning string) error
	ClearWarning(ctx context.Context, actor *models.User, id string) error
	SetActive(ctx context.Context, actor *models.User, id string, active bool) error
	Delete(ctx context.Context, actor *models.User, id string) error
}

type DefaultUserService struct {
	Repo        userRepo.UserRepository
	Invalidator *views.Invalidator
	Logger      *zap.Logger
}

func NewUserService(repo userRepo.UserRepository, inv *views.Invalidator, logger *zap.Logger) UserService {
	return &DefaultUserService{Repo: repo, Invalidator: inv, Logger: logger}
}
