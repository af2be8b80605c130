// Package views builds the cached read models served to clients and
// coordinates their invalidation when the underlying records change.
package views

import (
	"fmt"
	"time"

	"salonbook/models"
)

// Expiry bands for cached views. Entity views go stale quickly, global
// lists a little slower, near-static pages slowest.
const (
	TTLEntity     = 60 * time.Second
	TTLGlobalList = 120 * time.Second
	TTLStatic     = 300 * time.Second
	TTLMessages   = 10 * time.Second
)

// Status filters accepted by the admin appointment board.
var AppointmentStatusFilters = []string{
	"all",
	models.AppointmentRequested,
	models.AppointmentAccepted,
	models.AppointmentCancelled,
}

// Status filters accepted by the admin report board. "flagged" is a
// filter over the flagged_by_professional bit, not a stored status.
var ReportStatusFilters = []string{"all", "open", "closed", "flagged"}

// Filters accepted by the admin user board.
var UserFilters = []string{"all", "clients", "professionals", "admins", "warned", "deactivated"}

// AdminRoles are the roles whose admin boards must be purged together,
// since each role sees its own rendering of the same records.
var AdminRoles = []string{models.UserTypeAdmin, models.UserTypeAdminSuper}

// Return types for the single-user view. Each audience gets its own
// cache entry because the rendered payload differs per audience.
var ViewUserReturnTypes = []string{"admin", "self", "public"}

func ManageAppointmentsKey(role, status string) string {
	return fmt.Sprintf("manageAppointments:%s:%s", role, status)
}

func MyAppointmentsKey(userID string) string {
	return fmt.Sprintf("myAppointments:%s", userID)
}

func SingleAppointmentKey(id string) string {
	return fmt.Sprintf("singleAppointment:%s", id)
}

func AllAppointmentsKey() string {
	return "allAppointmentsList"
}

func ManageReportsKey(status string) string {
	return fmt.Sprintf("manageReports:%s", status)
}

func UserReportsKey(userID string) string {
	return fmt.Sprintf("userReports:%s", userID)
}

func SingleReportKey(id string) string {
	return fmt.Sprintf("singleReportView:%s", id)
}

func ManageUsersKey(filter string) string {
	return fmt.Sprintf("manageUsers:%s", filter)
}

func ViewUserKey(id, returnType string) string {
	return fmt.Sprintf("viewUser:%s:%s", id, returnType)
}

func UserAppointmentsKey(userID string) string {
	return fmt.Sprintf("userAppointments:%s", userID)
}

func DashboardKey(role string) string {
	return fmt.Sprintf("dashboard:%s", role)
}
