package models

import "time"

// Appointment statuses. An appointment starts as requested; accepted and
// cancelled are the only stored transitions. Deletion removes the record.
const (
	AppointmentRequested = "requested"
	AppointmentAccepted  = "accepted"
	AppointmentCancelled = "cancelled"
)

// Venues an appointment can occupy.
var Venues = []string{"room1", "room2", "chair1", "chair2", "cmn_room"}

// Appointment represents a booking between a consumer and a provider.
// Consumer and provider names are denormalized at write time so list views
// do not need a user lookup.
type Appointment struct {
	ID           string    `bson:"id" json:"id"`
	ConsumerID   string    `bson:"consumer_id" json:"consumer_id"`
	ProviderID   string    `bson:"provider_id" json:"provider_id"`
	ConsumerName string    `bson:"consumer_name" json:"consumer_name"`
	ProviderName string    `bson:"provider_name" json:"provider_name"`
	Status       string    `bson:"status" json:"status"`
	Date         string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Slot         string    `bson:"slot" json:"slot"` // "H-H+1"
	Venue        string    `bson:"venue" json:"venue"`
	NberServices int       `bson:"nber_services" json:"nber_services"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// IsParticipant reports whether userID is the consumer or the provider.
func (a *Appointment) IsParticipant(userID string) bool {
	return userID == a.ConsumerID || userID == a.ProviderID
}

// AppointmentDetail is an appointment joined with its owned service line,
// the shape list and detail views consume.
type AppointmentDetail struct {
	Appointment `bson:",inline"`
	Service     Service `bson:"service" json:"service"`
}
