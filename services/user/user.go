package user

import (
	"context"
	"time"

	"salonbook/models"
	"salonbook/pkg/fault"
	"salonbook/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

var registrableTypes = map[string]bool{
	models.UserTypeClient:       true,
	models.UserTypeProfessional: true,
}

// Register creates an account. Self-service registration only covers
// clients and professionals; admin accounts are provisioned by an
// existing super admin through Update.
func (s *DefaultUserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if !registrableTypes[in.UserType] {
		return nil, fault.NewValidationError(fault.CodeInvalidStatus, "cannot self-register as %q", in.UserType)
	}

	existing, err := s.Repo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fault.NewStoreError("get user", err)
	}
	if existing != nil {
		return nil, fault.NewConflictError(fault.CodeUsernameTaken, "username %s is taken", in.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Active:      true,
		UserType:    in.UserType,
		Username:    in.Username,
		Fname:       in.Fname,
		Lname:       in.Lname,
		Email:       in.Email,
		Password:    string(hash),
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		Age:         in.Age,
		Specialty:   in.Specialty,
		PayRate:     in.PayRate,
		CreatedAt:   time.Now(),
	}
	if _, err := s.Repo.Create(ctx, u); err != nil {
		return nil, fault.NewStoreError("create user", err)
	}

	s.invalidate(ctx, u.ID)
	return u, nil
}

// Authenticate verifies the credentials and issues a signed token. A
// deactivated account cannot sign in.
func (s *DefaultUserService) Authenticate(ctx context.Context, username, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		s.Logger.Error("authenticate: user lookup failed", zap.Error(err))
		return nil, fault.NewStoreError("get user", err)
	}
	if u == nil {
		return nil, fault.NewAuthorizationError(fault.CodeUnauthorized, "invalid username or password")
	}
	if !u.Active {
		return nil, fault.NewAuthorizationError(fault.CodeUnauthorized, "account is deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, fault.NewAuthorizationError(fault.CodeUnauthorized, "invalid username or password")
	}

	token, err := utils.GenerateToken(u.ID, u.Email, tokenLifetime)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: *u}, nil
}

func (s *DefaultUserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fault.NewStoreError("get user", err)
	}
	if u == nil {
		return nil, fault.NewNotFoundError("user", id)
	}
	return u, nil
}

func (s *DefaultUserService) List(ctx context.Context, filter string) ([]models.User, error) {
	list, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, fault.NewStoreError("list users", err)
	}
	return list, nil
}

// Update edits a profile. Users edit their own; admins edit anyone.
// Only admins may change the pay rate, since it drives pricing.
func (s *DefaultUserService) Update(ctx context.Context, actor *models.User, id string, in UpdateInput) (*models.User, error) {
	if actor.ID != id && !actor.IsAdmin() {
		return nil, fault.NewAuthorizationError(fault.CodeUnauthorized, "cannot edit another user's profile")
	}

	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Fname != "" {
		u.Fname = in.Fname
	}
	if in.Lname != "" {
		u.Lname = in.Lname
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.PhoneNumber != "" {
		u.PhoneNumber = in.PhoneNumber
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	if in.Age != 0 {
		u.Age = in.Age
	}
	if in.Specialty != "" {
		u.Specialty = in.Specialty
	}
	if in.PayRate != nil && actor.IsAdmin() {
		u.PayRate = in.PayRate
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, fault.NewStoreError("update user", err)
	}
	s.invalidate(ctx, id)
	return u, nil
}

// Warn attaches a warning to an account and bumps its warning count.
func (s *DefaultUserService) Warn(ctx context.Context, actor *models.User, id, warning string) error {
	if !actor.IsAdmin() {
		return fault.NewAuthorizationError(fault.CodeUnauthorized, "admin access required")
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.SetWarning(ctx, id, warning, u.WarningCount+1); err != nil {
		return fault.NewStoreError("set warning", err)
	}
	s.invalidate(ctx, id)
	return nil
}

// ClearWarning removes the active warning text. The count is kept as
// the account's history.
func (s *DefaultUserService) ClearWarning(ctx context.Context, actor *models.User, id string) error {
	if !actor.IsAdmin() {
		return fault.NewAuthorizationError(fault.CodeUnauthorized, "admin access required")
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.SetWarning(ctx, id, "", u.WarningCount); err != nil {
		return fault.NewStoreError("clear warning", err)
	}
	s.invalidate(ctx, id)
	return nil
}

// SetActive toggles an account on or off. Deactivation blocks sign-in
// but keeps the record and its appointments.
func (s *DefaultUserService) SetActive(ctx context.Context, actor *models.User, id string, active bool) error {
	if !actor.IsAdmin() {
		return fault.NewAuthorizationError(fault.CodeUnauthorized, "admin access required")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.Repo.SetActive(ctx, id, active); err != nil {
		return fault.NewStoreError("set active", err)
	}
	s.invalidate(ctx, id)
	return nil
}

// Delete removes an account entirely. Super admin only.
func (s *DefaultUserService) Delete(ctx context.Context, actor *models.User, id string) error {
	if actor.UserType != models.UserTypeAdminSuper {
		return fault.NewAuthorizationError(fault.CodeUnauthorized, "super admin access required")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fault.NewStoreError("delete user", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *DefaultUserService) invalidate(ctx context.Context, id string) {
	if err := s.Invalidator.UserChanged(ctx, id); err != nil {
		s.Logger.Warn("user view invalidation incomplete",
			zap.String("user_id", id),
			zap.Error(err))
	}
}
