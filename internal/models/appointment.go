package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses. Appointments start as pending and are moved by staff;
// they are never physically deleted.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDone      = "done"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppointmentID   string             `bson:"appointmentId" json:"appointmentId"`
	CustomerName    string             `bson:"customerName" json:"customerName"`
	PhoneNumber     string             `bson:"phoneNumber" json:"phoneNumber"`
	AnotherNumber   string             `bson:"anotherNumber,omitempty" json:"anotherNumber,omitempty"`
	Email           string             `bson:"email,omitempty" json:"email,omitempty"`
	ServiceType     string             `bson:"serviceType" json:"serviceType"`
	AppointmentDate time.Time          `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime string             `bson:"appointmentTime" json:"appointmentTime"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Address         string             `bson:"address,omitempty" json:"address,omitempty"`
	BookingStatus   string             `bson:"bookingStatus" json:"bookingStatus"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidServiceTypes is the closed list of bookable services. The booking
// handler rejects anything else.
var ValidServiceTypes = []string{
	"Nail Extensions",
	"Nail Art(simple/advanced)",
	"Gel Polish",
	"press-on nails",
	"gel extensions",
	"acrylic nail",
	"gel-x nails",
	"custom nail art",
	"manicure",
	"pedicure",
	"refill",
}

func IsValidServiceType(serviceType string) bool {
	for _, s := range ValidServiceTypes {
		if s == serviceType {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is one of the booking statuses staff may
// set through the admin update route.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDone, StatusCancelled:
		return true
	}
	return false
}
