package models

// Service is the single service line owned by an appointment (1:1, cascade
// deleted with it). Duration is in hours; price is computed at write time
// from duration, service count and the provider's pay rate.
type Service struct {
	ID            string  `bson:"id" json:"id"`
	AppointmentID string  `bson:"appointment_id" json:"appointment_id"`
	Name          string  `bson:"name" json:"name"`
	Duration      int     `bson:"duration" json:"duration"`
	Price         float64 `bson:"price" json:"price"`
	Materials     string  `bson:"materials,omitempty" json:"materials,omitempty"`
}
