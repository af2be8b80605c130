package models

import "time"

// Report statuses.
const (
	ReportOpen   = "open"
	ReportClosed = "closed"
	ReportGrieve = "grieve"
	ReportDone   = "done"
)

// Report is a feedback record a consumer files against a past appointment.
// At most one report exists per appointment, and its existence blocks
// deletion of the appointment.
type Report struct {
	ID                    string    `bson:"id" json:"id"`
	AppointmentID         string    `bson:"appointment_id" json:"appointment_id"`
	Status                string    `bson:"status" json:"status"`
	FeedbackClient        string    `bson:"feedback_client" json:"feedback_client"`
	FeedbackProfessional  string    `bson:"feedback_professional,omitempty" json:"feedback_professional,omitempty"`
	FlaggedByProfessional bool      `bson:"flagged_by_professional" json:"flagged_by_professional"`
	ClientSeen            bool      `bson:"client_seen" json:"client_seen"`
	DateReport            time.Time `bson:"date_report" json:"date_report"`
}

// ReportDetail is a report joined with participant names from its
// appointment, used by the single-report and admin list views.
type ReportDetail struct {
	Report       `bson:",inline"`
	ConsumerID   string `bson:"consumer_id" json:"consumer_id"`
	ProviderID   string `bson:"provider_id" json:"provider_id"`
	ConsumerName string `bson:"consumer_name" json:"consumer_name"`
	ProviderName string `bson:"provider_name" json:"provider_name"`
}
