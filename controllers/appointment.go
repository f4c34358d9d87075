package controllers

import (
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mediconsult/booking-api/calendly"
	"github.com/mediconsult/booking-api/db"
	"github.com/mediconsult/booking-api/models"
	"github.com/mediconsult/booking-api/notifier"
	"github.com/mediconsult/booking-api/redis"
	"github.com/mediconsult/booking-api/triage"
	"github.com/mediconsult/booking-api/utils"
)

var (
	Classifier *triage.Classifier
	Calendly   *calendly.Client
)

// Setup wires the external clients used by the booking controllers.
func Setup(classifier *triage.Classifier, cal *calendly.Client) {
	Classifier = classifier
	Calendly = cal
}

type BookingRequest struct {
	PatientName   string `json:"patient_name"`
	PatientEmail  string `json:"patient_email"`
	Issues        string `json:"issues"`
	PreferredTime string `json:"preferred_time"`
}

// BookAppointment godoc
// @Summary Submit a consultation request
// @Description Triage the symptoms, reserve a scheduling link and create a pending appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param booking body BookingRequest true "Booking"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /appointments [post]
func BookAppointment(c *fiber.Ctx) error {
	req := new(BookingRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cannot parse JSON",
		})
	}

	// Validation happens before any persistence or external call.
	if req.PatientName == "" || req.PatientEmail == "" || req.Issues == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "All fields are required",
		})
	}
	if !emailRegex.MatchString(req.PatientEmail) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email format",
		})
	}

	// Classification is total: a failing external classifier degrades to
	// the keyword rule inside Classify.
	priority := Classifier.Classify(c.Context(), req.Issues)

	preferred := req.PreferredTime
	if preferred == "" {
		preferred = time.Now().Format(time.RFC3339)
	}

	reservation, err := Calendly.ReserveSlot(req.PatientName, req.PatientEmail, preferred)
	if err != nil {
		// Scheduling-link generation never blocks the booking.
		log.Printf("Failed to reserve scheduling link for %s: %v", req.PatientEmail, err)
		reservation = &calendly.Reservation{}
	}

	appointment := models.Appointment{
		PatientName:   req.PatientName,
		PatientEmail:  req.PatientEmail,
		Issues:        req.Issues,
		PreferredTime: req.PreferredTime,
		Priority:      priority,
		Status:        models.StatusPending,
		SchedulingURL: reservation.SchedulingURL,
	}

	if err := db.DB.Create(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}
	redis.InvalidateList()

	subject, body := notifier.BookingReceivedPatient(req.PatientName, string(priority), reservation.SchedulingURL)
	notifier.Send(req.PatientEmail, subject, body)
	if doctor := notifier.DoctorEmail(); doctor != "" {
		subject, body = notifier.BookingReceivedDoctor(req.PatientName, req.PatientEmail, req.Issues, string(priority), req.PreferredTime)
		notifier.Send(doctor, subject, body)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":        true,
		"message":        "Appointment initiated. Please complete booking on Calendly.",
		"appointment_id": appointment.ID,
		"scheduling_url": reservation.SchedulingURL,
		"priority":       priority,
	})
}

// GetAllAppointments godoc
// @Summary List appointments for the dashboard
// @Description Newest first, re-sorted by triage priority
// @Tags appointments
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /appointments [get]
func GetAllAppointments(c *fiber.Ctx) error {
	if cached, ok := redis.GetList(); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
	}

	var appointments []models.Appointment
	if err := db.DB.Order("created_at DESC").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	sortByPriority(appointments)

	body, err := json.Marshal(fiber.Map{
		"success":      true,
		"appointments": appointments,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to encode appointments",
			Error:   err.Error(),
		})
	}
	redis.SetList(body)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// sortByPriority re-sorts a newest-first listing by triage rank; the sort
// is stable so recency still breaks ties within a tier.
func sortByPriority(appointments []models.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return models.PriorityRank(appointments[i].Priority) < models.PriorityRank(appointments[j].Priority)
	})
}

// ApproveAppointment godoc
// @Summary Approve a pending appointment
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /appointments/{id}/approve [post]
func ApproveAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Appointment not found",
		})
	}

	now := time.Now()
	if appointment.MeetLink == "" {
		appointment.MeetLink = utils.GenerateMeetLink()
	}
	appointment.DoctorApproved = true
	appointment.ApprovedAt = &now

	if err := appointment.UpdateStatus(db.DB, models.StatusApproved); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	redis.InvalidateList()

	subject, body := notifier.ApprovedPatient(appointment.PatientName, appointment.PreferredTime, appointment.MeetLink, appointment.ConfirmedTime != nil)
	notifier.Send(appointment.PatientEmail, subject, body)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Appointment approved",
	})
}

// RejectAppointment godoc
// @Summary Reject a pending appointment
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /appointments/{id}/reject [post]
func RejectAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Appointment not found",
		})
	}

	now := time.Now()
	appointment.DoctorApproved = false
	appointment.RejectedAt = &now

	if err := appointment.UpdateStatus(db.DB, models.StatusRejected); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	redis.InvalidateList()

	subject, body := notifier.RejectedPatient(appointment.PatientName)
	notifier.Send(appointment.PatientEmail, subject, body)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Appointment rejected",
	})
}

// GetAvailability proxies the doctor's Calendly availability schedule for
// the dashboard.
func GetAvailability(c *fiber.Ctx) error {
	data, err := Calendly.Availability(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability schedules",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
