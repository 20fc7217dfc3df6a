package services

import (
	"log"

	"github.com/maheynails/studio-api/internal/models"
)

// EmailService sends booking emails. Delivery is currently a logging stub
// that always reports success; swap in a real provider (Resend, SendGrid)
// behind the same methods when credentials are available.
// TODO: wire a real provider once the studio picks one.
type EmailService struct {
	StudioEmail string
}

func NewEmailService(studioEmail string) *EmailService {
	return &EmailService{StudioEmail: studioEmail}
}

type EmailResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SendCustomerConfirmation notifies the customer that their booking was
// received. Runs in a goroutine so it never blocks the API response.
func (s *EmailService) SendCustomerConfirmation(apt *models.Appointment) EmailResult {
	go func(apt models.Appointment) {
		log.Printf("Customer confirmation email would be sent to %q for booking %s (%s at %s)",
			apt.Email, apt.AppointmentID, apt.AppointmentDate.Format("2006-01-02"), apt.AppointmentTime)
	}(*apt)
	return EmailResult{Success: true, Message: "Email sent successfully"}
}

// SendStudioNotification notifies the studio inbox about a new booking.
func (s *EmailService) SendStudioNotification(apt *models.Appointment) EmailResult {
	go func(apt models.Appointment) {
		log.Printf("Studio notification email would be sent to %q for booking %s from %s (%s)",
			s.StudioEmail, apt.AppointmentID, apt.CustomerName, apt.ServiceType)
	}(*apt)
	return EmailResult{Success: true, Message: "Notification sent successfully"}
}
