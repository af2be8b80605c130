// Package notification sends appointment reminder emails.
package notification

import (
	"context"
	"fmt"

	"salonbook/config"
	"salonbook/models"

	"gopkg.in/gomail.v2"
)

// NotificationService defines the reminder delivery contract.
type NotificationService interface {
	SendAppointmentReminder(ctx context.Context, p models.ReminderPayload) error
}

// SMTPNotificationService delivers reminders over SMTP.
type SMTPNotificationService struct {
	host string
	port int
	user string
	pass string
}

func NewSMTPNotificationService() *SMTPNotificationService {
	return &SMTPNotificationService{
		host: config.AppConfig.SMTPHost,
		port: config.AppConfig.SMTPPort,
		user: config.AppConfig.SMTPUser,
		pass: config.AppConfig.SMTPPass,
	}
}

// SendAppointmentReminder emails a reminder about tomorrow's booking.
func (s *SMTPNotificationService) SendAppointmentReminder(_ context.Context, p models.ReminderPayload) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.user)
	m.SetHeader("To", p.Email)
	m.SetHeader("Subject", "Appointment reminder")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nThis is a reminder of your appointment on %s, slot %s, at %s.\n\nSee you there!",
		p.Name, p.Date, p.Slot, p.Venue))

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	return d.DialAndSend(m)
}
