package user

import (
	"context"
	"errors"
	"testing"
	"time"

	userRepo "salonbook/database/repository/user"
	"salonbook/models"
	"salonbook/pkg/fault"
	"salonbook/views"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	users map[string]models.User
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	r.users[u.ID] = *u
	return u.ID, nil
}

func (r *memUserRepo) Update(_ context.Context, u *models.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) SetWarning(_ context.Context, id, warning string, count int) error {
	u := r.users[id]
	u.Warning = warning
	u.WarningCount = count
	r.users[id] = u
	return nil
}

func (r *memUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u := r.users[id]
	u.Active = active
	r.users[id] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copy := u
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context, filter string) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		switch filter {
		case userRepo.FilterWarned:
			if u.WarningCount == 0 {
				continue
			}
		case userRepo.FilterDeactivated:
			if u.Active {
				continue
			}
		}
		out = append(out, u)
	}
	return out, nil
}

type nopCache struct{}

func (nopCache) GetOrCompute(_ context.Context, _ string, _ time.Duration, produce func() ([]byte, error)) ([]byte, error) {
	return produce()
}
func (nopCache) Purge(context.Context, string) error { return nil }

func newService() (UserService, *memUserRepo) {
	repo := &memUserRepo{users: map[string]models.User{}}
	inv := views.NewInvalidator(nopCache{}, zap.NewNop())
	return NewUserService(repo, inv, zap.NewNop()), repo
}

func registered(t *testing.T, svc UserService) *models.User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{
		Username: "ada", Password: "long-enough-pass", UserType: models.UserTypeClient,
		Fname: "Ada", Lname: "K", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return u
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newService()
	u := registered(t, svc)

	stored := repo.users[u.ID]
	if stored.Password == "long-enough-pass" {
		t.Fatal("password stored in clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("long-enough-pass")) != nil {
		t.Error("stored hash does not verify")
	}
	if !stored.Active {
		t.Error("new account should be active")
	}
}

func TestRegisterRejectsAdminType(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "mallory", Password: "long-enough-pass", UserType: models.UserTypeAdmin,
		Fname: "M", Lname: "Y", Email: "m@example.com",
	})
	var verr *fault.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newService()
	registered(t, svc)
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "ada", Password: "long-enough-pass", UserType: models.UserTypeClient,
		Fname: "Other", Lname: "A", Email: "other@example.com",
	})
	var cerr *fault.ConflictError
	if !errors.As(err, &cerr) || cerr.Code != fault.CodeUsernameTaken {
		t.Fatalf("err = %v, want usernameTaken", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newService()
	registered(t, svc)

	resp, err := svc.Authenticate(context.Background(), "ada", "long-enough-pass")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a signed token")
	}

	_, err = svc.Authenticate(context.Background(), "ada", "wrong")
	var aerr *fault.AuthorizationError
	if !errors.As(err, &aerr) {
		t.Fatalf("err = %v, want AuthorizationError", err)
	}
}

func TestAuthenticateDeactivated(t *testing.T) {
	svc, repo := newService()
	u := registered(t, svc)
	stored := repo.users[u.ID]
	stored.Active = false
	repo.users[u.ID] = stored

	_, err := svc.Authenticate(context.Background(), "ada", "long-enough-pass")
	var aerr *fault.AuthorizationError
	if !errors.As(err, &aerr) {
		t.Fatalf("err = %v, want AuthorizationError for deactivated account", err)
	}
}

func TestWarnIncrementsCount(t *testing.T) {
	svc, repo := newService()
	u := registered(t, svc)
	admin := &models.User{ID: "ad1", UserType: models.UserTypeAdmin}

	if err := svc.Warn(context.Background(), admin, u.ID, "late cancellations"); err != nil {
		t.Fatalf("Warn: %v", err)
	}
	if err := svc.Warn(context.Background(), admin, u.ID, "no-show"); err != nil {
		t.Fatalf("Warn: %v", err)
	}

	stored := repo.users[u.ID]
	if stored.WarningCount != 2 {
		t.Errorf("warning count = %d, want 2", stored.WarningCount)
	}
	if stored.Warning != "no-show" {
		t.Errorf("warning = %q, want latest text", stored.Warning)
	}

	if err := svc.ClearWarning(context.Background(), admin, u.ID); err != nil {
		t.Fatalf("ClearWarning: %v", err)
	}
	stored = repo.users[u.ID]
	if stored.Warning != "" || stored.WarningCount != 2 {
		t.Errorf("clear should drop text but keep count, got %q/%d", stored.Warning, stored.WarningCount)
	}
}

func TestWarnRequiresAdmin(t *testing.T) {
	svc, _ := newService()
	u := registered(t, svc)
	err := svc.Warn(context.Background(), u, u.ID, "self warn")
	var aerr *fault.AuthorizationError
	if !errors.As(err, &aerr) {
		t.Fatalf("err = %v, want AuthorizationError", err)
	}
}

func TestUpdatePayRateAdminOnly(t *testing.T) {
	svc, repo := newService()
	u := registered(t, svc)
	rate := 21.5

	if _, err := svc.Update(context.Background(), u, u.ID, UpdateInput{PayRate: &rate}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if repo.users[u.ID].PayRate != nil {
		t.Error("non-admin must not set pay rate")
	}

	admin := &models.User{ID: "ad1", UserType: models.UserTypeAdminSuper}
	if _, err := svc.Update(context.Background(), admin, u.ID, UpdateInput{PayRate: &rate}); err != nil {
		t.Fatalf("Update as admin: %v", err)
	}
	if got := repo.users[u.ID].PayRate; got == nil || *got != rate {
		t.Errorf("pay rate = %v, want %v", got, rate)
	}
}

func TestDeleteRequiresSuperAdmin(t *testing.T) {
	svc, repo := newService()
	u := registered(t, svc)

	admin := &models.User{ID: "ad1", UserType: models.UserTypeAdmin}
	err := svc.Delete(context.Background(), admin, u.ID)
	var aerr *fault.AuthorizationError
	if !errors.As(err, &aerr) {
		t.Fatalf("err = %v, want AuthorizationError for plain admin", err)
	}

	super := &models.User{ID: "ad2", UserType: models.UserTypeAdminSuper}
	if err := svc.Delete(context.Background(), super, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.users[u.ID]; ok {
		t.Error("user still present after delete")
	}
}
