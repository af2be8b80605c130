package views

import (
	"context"
	"encoding/json"
	"time"

	"salonbook/cache"
	appointmentRepo "salonbook/database/repository/appointment"
	reportRepo "salonbook/database/repository/report"
	userRepo "salonbook/database/repository/user"
	"salonbook/models"
	"salonbook/pkg/fault"
)

// Presenter turns a view name and its data into the byte payload stored
// in the cache. The materializer treats the payload as opaque.
type Presenter interface {
	Render(view string, data any) ([]byte, error)
}

// JSONPresenter renders every view as its JSON encoding.
type JSONPresenter struct{}

func (JSONPresenter) Render(_ string, data any) ([]byte, error) {
	return json.Marshal(data)
}

// Materializer builds the cached read views. Every method goes through
// the view cache: a hit returns the stored payload, a miss queries the
// repositories, renders through the presenter and stores the result.
type Materializer struct {
	Appointments appointmentRepo.AppointmentRepository
	Reports      reportRepo.ReportRepository
	Users        userRepo.UserRepository
	Cache        cache.ViewCache
	Presenter    Presenter
	Now          func() time.Time
}

func NewMaterializer(a appointmentRepo.AppointmentRepository, r reportRepo.ReportRepository, u userRepo.UserRepository, c cache.ViewCache, p Presenter) *Materializer {
	return &Materializer{
		Appointments: a,
		Reports:      r,
		Users:        u,
		Cache:        c,
		Presenter:    p,
		Now:          time.Now,
	}
}

// AppointmentView decorates an appointment with per-viewer affordances.
// CanWriteReport is set for consumers whose accepted appointment is in
// the past and has no report yet.
type AppointmentView struct {
	models.AppointmentDetail
	CanWriteReport bool `json:"can_write_report,omitempty"`
}

// MyAppointments renders the appointment list for a participant: the
// appointments they consume plus, for professionals, the ones they
// provide.
func (m *Materializer) MyAppointments(ctx context.Context, userID string) ([]byte, error) {
	return m.Cache.GetOrCompute(ctx, MyAppointmentsKey(userID), TTLEntity, func() ([]byte, error) {
		asConsumer, err := m.Appointments.ListByConsumer(ctx, userID)
		if err != nil {
			return nil, fault.NewStoreError("list appointments", err)
		}
		asProvider, err := m.Appointments.ListByProvider(ctx, userID)
		if err != nil {
			return nil, fault.NewStoreError("list appointments", err)
		}

		out := make([]AppointmentView, 0, len(asConsumer)+len(asProvider))
		for _, d := range asConsumer {
			v := AppointmentView{AppointmentDetail: d}
			canWrite, err := m.canWriteReport(ctx, &d)
			if err != nil {
				return nil, err
			}
			v.CanWriteReport = canWrite
			out = append(out, v)
		}
		for _, d := range asProvider {
			out = append(out, AppointmentView{AppointmentDetail: d})
		}
		return m.Presenter.Render("myAppointments", out)
	})
}

// canWriteReport reports whether the consumer may still file a report:
// the appointment was accepted, its date has passed and no report
// exists for it.
func (m *Materializer) canWriteReport(ctx context.Context, d *models.AppointmentDetail) (bool, error) {
	if d.Status != models.AppointmentAccepted {
		return false, nil
	}
	date, err := time.Parse("2006-01-02", d.Date)
	if err != nil || !date.Before(m.Now().Truncate(24*time.Hour)) {
		return false, nil
	}
	existing, err := m.Reports.GetByAppointment(ctx, d.ID)
	if err != nil {
		return false, fault.NewStoreError("get report", err)
	}
	return existing == nil, nil
}

// AllAppointments renders the full appointment list for admin boards.
func (m *Materializer) AllAppointments(ctx context.Context) ([]byte, error) {
	return m.Cache.GetOrCompute(ctx, AllAppointmentsKey(), TTLGlobalList, func() ([]byte, error) {
		list, err := m.Appointments.ListAll(ctx)
		if err != nil {
			return nil, fault.NewStoreError("list appointments", err)
		}
		return m.Presenter.Render("allAppointmentsList", list)
	})
}

// ManageAppointments renders the admin appointment board for a role,
// filtered by status. Unknown statuses fall back to the unfiltered list.
func (m *Materializer) ManageAppointments(ctx context.Context, role, status string) ([]byte, error) {
	return m.Cache.GetOrCompute(ctx, ManageAppointmentsKey(role, status), TTLEntity, func() ([]byte, error) {
		list, err := m.Appointments.ListAll(ctx)
		if err != nil {
			return nil, fault.NewStoreError("list appointments", err)
		}
		if status != "" && status != "all" {
			filtered := list[:0]
			for _, d := range list {
				if d.Status == status {
					filtered = append(filtered, d)
				}
			}
			list = filtered
		}
		return m.Presenter.Render("manageAppointments", list)
	})
}

// SingleAppointment renders one appointment with its service line.
func (m *Materializer) SingleAppointment(ctx context.Context, id string) ([]byte, error) {
	return m.Cache.GetOrCompute(ctx, SingleAppointmentKey(id), TTLEntity, func() ([]byte, error) {
		detail, err := m.Appointments.GetByID(ctx, id)
		if err != nil {
			return nil, fault.NewStoreError("get appointment", err)
		}
		if detail == nil {
			return nil, fault.NewNotFoundError("appointment", id)
		}
		return m.Presenter.Render("singleAppointment", detail)
	})
}

// UserAppointments renders a user's appointments for the admin user
// detail page.
func (m *Materializer) UserAppointments(ctx context.Context, userID string) ([]byte, error) {
	return m.Cache.GetOrCompute(ctx, UserAppointmentsKey(userID), TTLEntity, func() ([]byte, error) {
		asConsumer, err := m.Appointments.ListByConsumer(ctx, userID)
		if err != nil {
			return nil, fault.NewStoreError("list appointments", err)
		}
		asProvider, err := m.Appointments.ListByProvider(ctx, userID)
		if err != nil {
			return nil, fault.NewStoreError("list appointments", err)
		}
		return m.Presenter.Render("userAppointments", append(asConsumer, asProvider...))
	})
}

// ManageReports renders the admin report board filtered by status.
// "flagged" filters on the professional's flag bit rather than the
// stored status; "closed" covers both closed and done reports.
func (m *Materializer) ManageReports(ctx context.Context, status string) ([]byte, error) {
	return m.Cache.GetOrCompute(ctx, ManageReportsKey(status), TTLEntity, func() ([]byte, error) {
		list, err := m.Reports.ListAll(ctx)
		if err != nil {
			return nil, fault.NewStoreError("list reports", err)
		}
		switch status {
		case "flagged":
			filtered := list[:0]
			for _, r := range list {
				if r.FlaggedByProfessional {
					filtered = append(filtered, r)
				}
			}
			list = filtered
		case "open":
			filtered := list[:0]
			for _, r := range list {
				if r.Status == models.ReportOpen || r.Status == models.ReportGrieve {
					filtered = append(filtered, r)
				}
			}
			list = filtered
		case "closed":
			filtered := list[:0]
			for _, r := range list {
				if r.Status == models.ReportClosed || r.Status == models.ReportDone {
					filtered = append(filtered, r)
				}
			}
			list = filtered
		}
		return m.Presenter.Render("manageReports", list)
	})
}

// UserReports renders the reports a user participates in.
func (m *Materializer) UserReports(ctx context.Context, userID string) ([]byte, error) {
	return m.Cache.GetOrCompute(ctx, UserReportsKey(userID), TTLEntity, func() ([]byte, error) {
		list, err := m.Reports.ListByUser(ctx, userID)
		if err != nil {
			return nil, fault.NewStoreError("list reports", err)
		}
		return m.Presenter.Render("userReports", list)
	})
}

// SingleReport renders one report with its participant names.
func (m *Materializer) SingleReport(ctx context.Context, id string) ([]byte, error) {
	return m.Cache.GetOrCompute(ctx, SingleReportKey(id), TTLEntity, func() ([]byte, error) {
		detail, err := m.Reports.GetByID(ctx, id)
		if err != nil {
			return nil, fault.NewStoreError("get report", err)
		}
		if detail == nil {
			return nil, fault.NewNotFoundError("report", id)
		}
		return m.Presenter.Render("singleReportView", detail)
	})
}

// ManageUsers renders the admin user board for a filter.
func (m *Materializer) ManageUsers(ctx context.Context, filter string) ([]byte, error) {
	return m.Cache.GetOrCompute(ctx, ManageUsersKey(filter), TTLGlobalList, func() ([]byte, error) {
		list, err := m.Users.List(ctx, filter)
		if err != nil {
			return nil, fault.NewStoreError("list users", err)
		}
		return m.Presenter.Render("manageUsers", list)
	})
}

// ViewUser renders one user profile for an audience. Each returnType is
// a distinct cache entry because the payload differs per audience.
func (m *Materializer) ViewUser(ctx context.Context, id, returnType string) ([]byte, error) {
	return m.Cache.GetOrCompute(ctx, ViewUserKey(id, returnType), TTLEntity, func() ([]byte, error) {
		user, err := m.Users.GetByID(ctx, id)
		if err != nil {
			return nil, fault.NewStoreError("get user", err)
		}
		if user == nil {
			return nil, fault.NewNotFoundError("user", id)
		}
		if returnType == "public" {
			// Public profiles hide contact and moderation details.
			user.Email = ""
			user.PhoneNumber = ""
			user.Address = ""
			user.Warning = ""
			user.WarningCount = 0
		}
		return m.Presenter.Render("viewUser", user)
	})
}

// DashboardView aggregates counts for the admin landing page.
type DashboardView struct {
	Role          string `json:"role"`
	Appointments  int    `json:"appointments"`
	Requested     int    `json:"requested"`
	OpenReports   int    `json:"open_reports"`
	Clients       int    `json:"clients"`
	Professionals int    `json:"professionals"`
}

// Dashboard renders the admin landing counts. It is the most expensive
// view so it gets the longest expiry.
func (m *Materializer) Dashboard(ctx context.Context, role string) ([]byte, error) {
	return m.Cache.GetOrCompute(ctx, DashboardKey(role), TTLStatic, func() ([]byte, error) {
		appts, err := m.Appointments.ListAll(ctx)
		if err != nil {
			return nil, fault.NewStoreError("list appointments", err)
		}
		reports, err := m.Reports.ListAll(ctx)
		if err != nil {
			return nil, fault.NewStoreError("list reports", err)
		}
		clients, err := m.Users.List(ctx, userRepo.FilterClients)
		if err != nil {
			return nil, fault.NewStoreError("list users", err)
		}
		pros, err := m.Users.List(ctx, userRepo.FilterProfessionals)
		if err != nil {
			return nil, fault.NewStoreError("list users", err)
		}

		view := DashboardView{
			Role:          role,
			Appointments:  len(appts),
			Clients:       len(clients),
			Professionals: len(pros),
		}
		for _, a := range appts {
			if a.Status == models.AppointmentRequested {
				view.Requested++
			}
		}
		for _, r := range reports {
			if r.Status == models.ReportOpen || r.Status == models.ReportGrieve {
				view.OpenReports++
			}
		}
		return m.Presenter.Render("dashboard", view)
	})
}
