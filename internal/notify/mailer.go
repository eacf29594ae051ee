// Package notify dispatches appointment notification emails. Delivery is
// fire-and-forget: failures are logged and never propagate to the CRUD
// operation that triggered them.
package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"time"

	"practice-admin-server/internal/config"
)

// Mailer sends notification emails over SMTP. With no host configured it
// degrades to logging the would-be message, which keeps local development
// working without a mail server.
type Mailer struct {
	cfg config.MailerConfig
}

// NewMailer creates a Mailer from the loaded configuration.
func NewMailer(cfg config.MailerConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendAppointmentCreated notifies the patient and doctor about a newly booked
// appointment. Call it from a goroutine; errors are logged, not returned.
func (m *Mailer) SendAppointmentCreated(patientEmail, patientName, doctorEmail, doctorName string, date time.Time) {
	subject := "Appointment scheduled"
	when := date.Format("Monday, 2 January 2006 at 15:04")

	if patientEmail != "" {
		body := fmt.Sprintf("Dear %s,\n\nYour appointment with %s has been scheduled for %s.\n", patientName, doctorName, when)
		m.send(patientEmail, subject, body)
	}
	if doctorEmail != "" {
		body := fmt.Sprintf("Dear %s,\n\nAn appointment with %s has been scheduled for %s.\n", doctorName, patientName, when)
		m.send(doctorEmail, subject, body)
	}
}

func (m *Mailer) send(to, subject, body string) {
	if m.cfg.Host == "" {
		log.Printf("mailer (dry-run): to=%s subject=%q", to, subject)
		return
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.cfg.DefaultFrom, to, subject, body))
	addr := m.cfg.Host + ":" + m.cfg.Port

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.DefaultFrom, []string{to}, msg); err != nil {
		log.Printf("mailer: failed to send to %s: %v", to, err)
	}
}
