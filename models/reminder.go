package models

// ReminderPayload is the queued payload for an appointment reminder email.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Date          string `json:"date"`
	Slot          string `json:"slot"`
	Venue         string `json:"venue"`
}
