package views

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"salonbook/cache"
	"salonbook/models"
)

type fakeAppointmentRepo struct {
	details []models.AppointmentDetail
	calls   int
}

func (f *fakeAppointmentRepo) Create(context.Context, *models.Appointment, *models.Service) (string, error) {
	return "", nil
}
func (f *fakeAppointmentRepo) Update(context.Context, *models.Appointment, *models.Service) error {
	return nil
}
func (f *fakeAppointmentRepo) UpdateStatus(context.Context, string, string) error { return nil }
func (f *fakeAppointmentRepo) Delete(context.Context, string) error               { return nil }

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.AppointmentDetail, error) {
	for i := range f.details {
		if f.details[i].ID == id {
			return &f.details[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) ListAll(context.Context) ([]models.AppointmentDetail, error) {
	f.calls++
	return f.details, nil
}

func (f *fakeAppointmentRepo) ListByConsumer(_ context.Context, userID string) ([]models.AppointmentDetail, error) {
	f.calls++
	var out []models.AppointmentDetail
	for _, d := range f.details {
		if d.ConsumerID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByProvider(_ context.Context, userID string) ([]models.AppointmentDetail, error) {
	var out []models.AppointmentDetail
	for _, d := range f.details {
		if d.ProviderID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByDate(context.Context, string) ([]models.AppointmentDetail, error) {
	return nil, nil
}

type fakeReportRepo struct {
	reports []models.Report
}

func (f *fakeReportRepo) Create(_ context.Context, r *models.Report) (string, error) {
	f.reports = append(f.reports, *r)
	return r.ID, nil
}
func (f *fakeReportRepo) Update(context.Context, *models.Report) error      { return nil }
func (f *fakeReportRepo) Delete(context.Context, string) error              { return nil }
func (f *fakeReportRepo) SetFlag(context.Context, string, bool) error       { return nil }
func (f *fakeReportRepo) MarkSeenByClient(context.Context, []string) error  { return nil }
func (f *fakeReportRepo) GetByID(context.Context, string) (*models.ReportDetail, error) {
	return nil, nil
}

func (f *fakeReportRepo) GetByAppointment(_ context.Context, appointmentID string) (*models.Report, error) {
	for i := range f.reports {
		if f.reports[i].AppointmentID == appointmentID {
			return &f.reports[i], nil
		}
	}
	return nil, nil
}

func (f *fakeReportRepo) ListAll(context.Context) ([]models.ReportDetail, error) { return nil, nil }
func (f *fakeReportRepo) ListByUser(context.Context, string) ([]models.ReportDetail, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users []models.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) (string, error) { return u.ID, nil }
func (f *fakeUserRepo) Update(context.Context, *models.User) error               { return nil }
func (f *fakeUserRepo) Delete(context.Context, string) error                     { return nil }
func (f *fakeUserRepo) SetWarning(context.Context, string, string, int) error    { return nil }
func (f *fakeUserRepo) SetActive(context.Context, string, bool) error            { return nil }

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) List(context.Context, string) ([]models.User, error) { return f.users, nil }

func newTestMaterializer(appts *fakeAppointmentRepo, reports *fakeReportRepo) *Materializer {
	m := NewMaterializer(appts, reports, &fakeUserRepo{}, cache.NewMemoryViewCache(64), JSONPresenter{})
	m.Now = func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }
	return m
}

func detail(id, consumer, provider, status, date string) models.AppointmentDetail {
	return models.AppointmentDetail{
		Appointment: models.Appointment{
			ID:         id,
			ConsumerID: consumer,
			ProviderID: provider,
			Status:     status,
			Date:       date,
			Slot:       "10-11",
		},
	}
}

func TestMyAppointmentsMemoizes(t *testing.T) {
	appts := &fakeAppointmentRepo{details: []models.AppointmentDetail{
		detail("a1", "c1", "p1", models.AppointmentAccepted, "2025-06-20"),
	}}
	m := newTestMaterializer(appts, &fakeReportRepo{})

	first, err := m.MyAppointments(context.Background(), "c1")
	if err != nil {
		t.Fatalf("MyAppointments: %v", err)
	}
	second, err := m.MyAppointments(context.Background(), "c1")
	if err != nil {
		t.Fatalf("MyAppointments: %v", err)
	}
	if string(first) != string(second) {
		t.Error("cached payload differs from first render")
	}
	if appts.calls != 1 {
		t.Errorf("repository hit %d times, want 1", appts.calls)
	}
}

func TestMyAppointmentsCanWriteReport(t *testing.T) {
	appts := &fakeAppointmentRepo{details: []models.AppointmentDetail{
		detail("past", "c1", "p1", models.AppointmentAccepted, "2025-06-01"),
		detail("future", "c1", "p1", models.AppointmentAccepted, "2025-06-20"),
		detail("reported", "c1", "p1", models.AppointmentAccepted, "2025-06-02"),
	}}
	reports := &fakeReportRepo{reports: []models.Report{
		{ID: "r1", AppointmentID: "reported", Status: models.ReportOpen},
	}}
	m := newTestMaterializer(appts, reports)

	payload, err := m.MyAppointments(context.Background(), "c1")
	if err != nil {
		t.Fatalf("MyAppointments: %v", err)
	}
	var views []AppointmentView
	if err := json.Unmarshal(payload, &views); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := map[string]bool{}
	for _, v := range views {
		got[v.ID] = v.CanWriteReport
	}
	if !got["past"] {
		t.Error("past unreported appointment should allow a report")
	}
	if got["future"] {
		t.Error("future appointment must not allow a report")
	}
	if got["reported"] {
		t.Error("already-reported appointment must not allow a second report")
	}
}

func TestManageAppointmentsFiltersByStatus(t *testing.T) {
	appts := &fakeAppointmentRepo{details: []models.AppointmentDetail{
		detail("a1", "c1", "p1", models.AppointmentRequested, "2025-06-20"),
		detail("a2", "c2", "p1", models.AppointmentAccepted, "2025-06-21"),
	}}
	m := newTestMaterializer(appts, &fakeReportRepo{})

	payload, err := m.ManageAppointments(context.Background(), models.UserTypeAdmin, models.AppointmentRequested)
	if err != nil {
		t.Fatalf("ManageAppointments: %v", err)
	}
	var list []models.AppointmentDetail
	if err := json.Unmarshal(payload, &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 1 || list[0].ID != "a1" {
		t.Errorf("filtered list = %+v, want only a1", list)
	}
}

func TestSingleAppointmentMissingIsNotFound(t *testing.T) {
	m := newTestMaterializer(&fakeAppointmentRepo{}, &fakeReportRepo{})
	if _, err := m.SingleAppointment(context.Background(), "ghost"); err == nil {
		t.Fatal("expected not-found error")
	}
}
