package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maheynails/studio-api/internal/models"
	"github.com/maheynails/studio-api/internal/monitoring"
	"github.com/maheynails/studio-api/internal/utils"
)

type bookAppointmentRequest struct {
	CustomerName    string `json:"customerName"`
	PhoneNumber     string `json:"phoneNumber"`
	AnotherNumber   string `json:"anotherNumber"`
	Email           string `json:"email"`
	ServiceType     string `json:"serviceType"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Notes           string `json:"notes"`
	Address         string `json:"address"`
}

// parseAppointmentDate accepts the plain date the booking form sends as well
// as full RFC3339 timestamps; only the calendar day matters for slotting.
func parseAppointmentDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// BookAppointment handles the public booking form. At most one active
// appointment may occupy a (date, time) slot; the check is a query before
// insert, so two racing requests can still both land. Known gap.
func (h *Handler) BookAppointment(c *gin.Context) {
	var req bookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if req.CustomerName == "" || req.PhoneNumber == "" || req.ServiceType == "" ||
		req.AppointmentDate == "" || req.AppointmentTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	if !models.IsValidServiceType(req.ServiceType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid service type"})
		return
	}

	date, err := parseAppointmentDate(req.AppointmentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
		return
	}

	collection := h.DB.Collection("appointments")

	// Slot check: any non-cancelled, non-done appointment on the same
	// date+time blocks the booking.
	err = collection.FindOne(c.Request.Context(), bson.M{
		"appointmentDate": date,
		"appointmentTime": req.AppointmentTime,
		"bookingStatus":   bson.M{"$nin": []string{models.StatusCancelled, models.StatusDone}},
	}).Err()
	if err == nil {
		monitoring.BookingsTotal.WithLabelValues("conflict").Inc()
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Time slot already booked"})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		monitoring.BookingsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to check availability"})
		return
	}

	now := time.Now()
	apt := models.Appointment{
		ID:              primitive.NewObjectID(),
		AppointmentID:   utils.GenerateAppointmentID(),
		CustomerName:    req.CustomerName,
		PhoneNumber:     req.PhoneNumber,
		AnotherNumber:   strings.TrimSpace(req.AnotherNumber),
		Email:           strings.TrimSpace(req.Email),
		ServiceType:     req.ServiceType,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		Notes:           strings.TrimSpace(req.Notes),
		Address:         strings.TrimSpace(req.Address),
		BookingStatus:   models.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := collection.InsertOne(c.Request.Context(), apt); err != nil {
		monitoring.BookingsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to book appointment"})
		return
	}

	customerEmail := h.EmailSvc.SendCustomerConfirmation(&apt)
	studioEmail := h.EmailSvc.SendStudioNotification(&apt)

	monitoring.BookingsTotal.WithLabelValues("booked").Inc()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Appointment booked successfully",
		"data": gin.H{
			"id":              apt.ID,
			"appointmentId":   apt.AppointmentID,
			"customerName":    apt.CustomerName,
			"phoneNumber":     apt.PhoneNumber,
			"serviceType":     apt.ServiceType,
			"appointmentDate": apt.AppointmentDate,
			"appointmentTime": apt.AppointmentTime,
			"bookingStatus":   apt.BookingStatus,
			"createdAt":       apt.CreatedAt,
		},
		"emails": gin.H{
			"customer": customerEmail.Success,
			"studio":   studioEmail.Success,
		},
	})
}

// GetAppointments lists bookings for staff, optionally filtered by day or by
// the human-readable appointment reference.
func (h *Handler) GetAppointments(c *gin.Context) {
	filter := bson.M{}

	if dateStr := c.Query("date"); dateStr != "" {
		if date, err := time.Parse("2006-01-02", dateStr); err == nil {
			filter["appointmentDate"] = bson.M{
				"$gte": date,
				"$lt":  date.AddDate(0, 0, 1),
			}
		}
	}
	if aptID := c.Query("appointmentId"); aptID != "" {
		filter["appointmentId"] = aptID
	}
	if status := c.Query("status"); status != "" {
		filter["bookingStatus"] = status
	}

	findOptions := options.Find().SetSort(bson.D{
		{Key: "appointmentDate", Value: 1},
		{Key: "appointmentTime", Value: 1},
	})

	collection := h.DB.Collection("appointments")
	cursor, err := collection.Find(c.Request.Context(), filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve appointments"})
		return
	}
	defer cursor.Close(context.Background())

	var appointments []models.Appointment
	if err = cursor.All(c.Request.Context(), &appointments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode appointments"})
		return
	}
	if appointments == nil {
		appointments = make([]models.Appointment, 0)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": appointments})
}

// UpdateAppointment lets staff adjust status, date or time after a customer
// calls in.
func (h *Handler) UpdateAppointment(c *gin.Context) {
	appointmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid appointment ID"})
		return
	}

	var req struct {
		BookingStatus   *string `json:"bookingStatus,omitempty"`
		AppointmentDate *string `json:"appointmentDate,omitempty"`
		AppointmentTime *string `json:"appointmentTime,omitempty"`
		Notes           *string `json:"notes,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updateFields := bson.M{}
	if req.BookingStatus != nil {
		if !models.IsValidStatus(*req.BookingStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking status"})
			return
		}
		updateFields["bookingStatus"] = *req.BookingStatus
	}
	if req.AppointmentDate != nil {
		date, err := parseAppointmentDate(*req.AppointmentDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
			return
		}
		updateFields["appointmentDate"] = date
	}
	if req.AppointmentTime != nil {
		updateFields["appointmentTime"] = *req.AppointmentTime
	}
	if req.Notes != nil {
		updateFields["notes"] = *req.Notes
	}

	if len(updateFields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No fields to update"})
		return
	}
	updateFields["updatedAt"] = time.Now()

	collection := h.DB.Collection("appointments")
	result, err := collection.UpdateOne(c.Request.Context(),
		bson.M{"_id": appointmentID}, bson.M{"$set": updateFields})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update appointment"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Appointment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment updated successfully"})
}

// CancelAppointment flips a booking to cancelled and re-sends the customer
// email so they know the slot was released.
func (h *Handler) CancelAppointment(c *gin.Context) {
	appointmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid appointment ID"})
		return
	}

	collection := h.DB.Collection("appointments")

	var apt models.Appointment
	err = collection.FindOne(c.Request.Context(), bson.M{"_id": appointmentID}).Decode(&apt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Appointment not found"})
		return
	}

	_, err = collection.UpdateOne(c.Request.Context(),
		bson.M{"_id": appointmentID},
		bson.M{"$set": bson.M{"bookingStatus": models.StatusCancelled, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel appointment"})
		return
	}

	apt.BookingStatus = models.StatusCancelled
	h.EmailSvc.SendCustomerConfirmation(&apt)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment cancelled successfully"})
}
