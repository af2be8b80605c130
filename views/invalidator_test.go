package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

// recordingCache records purged keys and can fail a key a fixed number
// of times before succeeding.
type recordingCache struct {
	purged    []string
	failKey   string
	failTimes int
	failures  int
}

func (c *recordingCache) GetOrCompute(_ context.Context, key string, _ time.Duration, produce func() ([]byte, error)) ([]byte, error) {
	return produce()
}

func (c *recordingCache) Purge(_ context.Context, key string) error {
	if key == c.failKey && c.failures < c.failTimes {
		c.failures++
		return errors.New("transient")
	}
	c.purged = append(c.purged, key)
	return nil
}

func (c *recordingCache) has(key string) bool {
	for _, k := range c.purged {
		if k == key {
			return true
		}
	}
	return false
}

func TestAppointmentChangedPurgesFanOut(t *testing.T) {
	fake := &recordingCache{}
	inv := NewInvalidator(fake, zap.NewNop())

	if err := inv.AppointmentChanged(context.Background(), "a1", "c1", "p1"); err != nil {
		t.Fatalf("AppointmentChanged: %v", err)
	}

	want := []string{
		ManageAppointmentsKey("admin_user", "all"),
		ManageAppointmentsKey("admin_user", "requested"),
		ManageAppointmentsKey("admin_user", "accepted"),
		ManageAppointmentsKey("admin_user", "cancelled"),
		ManageAppointmentsKey("admin_super", "all"),
		ManageAppointmentsKey("admin_super", "requested"),
		ManageAppointmentsKey("admin_super", "accepted"),
		ManageAppointmentsKey("admin_super", "cancelled"),
		MyAppointmentsKey("c1"),
		MyAppointmentsKey("p1"),
		SingleAppointmentKey("a1"),
		AllAppointmentsKey(),
		UserAppointmentsKey("c1"),
		UserAppointmentsKey("p1"),
		DashboardKey("admin_user"),
		DashboardKey("admin_super"),
	}
	for _, key := range want {
		if !fake.has(key) {
			t.Errorf("expected purge of %q", key)
		}
	}
	if len(fake.purged) != len(want) {
		t.Errorf("purged %d keys, want %d: %v", len(fake.purged), len(want), fake.purged)
	}
}

func TestReportChangedPurgesFanOut(t *testing.T) {
	fake := &recordingCache{}
	inv := NewInvalidator(fake, zap.NewNop())

	if err := inv.ReportChanged(context.Background(), "r1", "c1"); err != nil {
		t.Fatalf("ReportChanged: %v", err)
	}

	want := []string{
		ManageReportsKey("all"),
		ManageReportsKey("open"),
		ManageReportsKey("closed"),
		ManageReportsKey("flagged"),
		UserReportsKey("c1"),
		SingleReportKey("r1"),
		DashboardKey("admin_user"),
		DashboardKey("admin_super"),
	}
	for _, key := range want {
		if !fake.has(key) {
			t.Errorf("expected purge of %q", key)
		}
	}
	if len(fake.purged) != len(want) {
		t.Errorf("purged %d keys, want %d: %v", len(fake.purged), len(want), fake.purged)
	}
}

func TestUserChangedPurgesEveryReturnType(t *testing.T) {
	fake := &recordingCache{}
	inv := NewInvalidator(fake, zap.NewNop())

	if err := inv.UserChanged(context.Background(), "u1"); err != nil {
		t.Fatalf("UserChanged: %v", err)
	}

	for _, rt := range ViewUserReturnTypes {
		if !fake.has(ViewUserKey("u1", rt)) {
			t.Errorf("expected purge of viewUser for return type %q", rt)
		}
	}
	for _, filter := range UserFilters {
		if !fake.has(ManageUsersKey(filter)) {
			t.Errorf("expected purge of manageUsers filter %q", filter)
		}
	}
	if !fake.has(UserAppointmentsKey("u1")) || !fake.has(UserReportsKey("u1")) {
		t.Error("expected purge of the user's appointment and report views")
	}
	for _, role := range AdminRoles {
		if !fake.has(DashboardKey(role)) {
			t.Errorf("expected purge of dashboard for role %q", role)
		}
	}
}

func TestPurgeRetriesTransientFailure(t *testing.T) {
	fake := &recordingCache{failKey: SingleReportKey("r1"), failTimes: 2}
	inv := NewInvalidator(fake, zap.NewNop())

	if err := inv.ReportChanged(context.Background(), "r1", "c1"); err != nil {
		t.Fatalf("ReportChanged after transient failures: %v", err)
	}
	if !fake.has(SingleReportKey("r1")) {
		t.Error("expected retried purge to eventually succeed")
	}
}

func TestPurgeSurfacesPersistentFailure(t *testing.T) {
	fake := &recordingCache{failKey: SingleReportKey("r1"), failTimes: 10}
	inv := NewInvalidator(fake, zap.NewNop())

	err := inv.ReportChanged(context.Background(), "r1", "c1")
	if err == nil {
		t.Fatal("expected error when a key never purges")
	}
	// The remaining keys must still have been purged.
	if !fake.has(UserReportsKey("c1")) {
		t.Error("expected other keys to purge despite the failure")
	}
}
