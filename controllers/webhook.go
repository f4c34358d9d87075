package controllers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mediconsult/booking-api/db"
	"github.com/mediconsult/booking-api/models"
	"github.com/mediconsult/booking-api/notifier"
	"github.com/mediconsult/booking-api/redis"
)

// webhookEnvelope is the Calendly event wrapper.
type webhookEnvelope struct {
	Event   string         `json:"event"`
	Payload webhookPayload `json:"payload"`
}

type webhookPayload struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	URI            string `json:"uri"`
	ScheduledEvent struct {
		URI string `json:"uri"`
	} `json:"scheduled_event"`
	Cancellation struct {
		Reason string `json:"reason"`
	} `json:"cancellation"`
}

// HandleCalendlyWebhook authenticates and dispatches scheduling-provider
// events. Known events reconcile appointment state; unknown event types
// are acknowledged and ignored.
func HandleCalendlyWebhook(c *fiber.Ctx) error {
	body := c.Body()

	if err := verifyWebhookSignature(body, c.Get("Calendly-Webhook-Signature")); err != nil {
		log.Printf("Rejected webhook event: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid signature",
		})
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cannot parse webhook payload",
		})
	}

	log.Printf("Calendly webhook received: %s", envelope.Event)

	switch envelope.Event {
	case "invitee.created":
		handleInviteeCreated(c.Context(), envelope.Payload)
	case "invitee.canceled":
		handleInviteeCanceled(envelope.Payload)
	default:
		log.Printf("Unhandled webhook event type: %s", envelope.Event)
	}

	return c.JSON(fiber.Map{"success": true})
}

// verifyWebhookSignature authenticates the raw body with HMAC-SHA256
// against the header value. Verification is mandatory: running without a
// signing key requires the explicit WEBHOOK_ALLOW_UNVERIFIED=true opt-out,
// and every event accepted that way is logged.
func verifyWebhookSignature(body []byte, signature string) error {
	key := os.Getenv("CALENDLY_WEBHOOK_SIGNING_KEY")
	if key == "" {
		if os.Getenv("WEBHOOK_ALLOW_UNVERIFIED") == "true" {
			log.Println("Warning: accepting unverified webhook event (no signing key configured)")
			return nil
		}
		return errors.New("webhook signing key not configured and unverified events not allowed")
	}
	if signature == "" {
		return errors.New("missing webhook signature header")
	}

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return errors.New("webhook signature mismatch")
	}
	return nil
}

// handleInviteeCreated reconciles a finalized booking: the most recent
// appointment for the invitee's email gets the external references, the
// resolved meeting link and the confirmed time, and moves to scheduled.
// The email match is best-effort; with two concurrently pending
// appointments for one address the newest wins.
func handleInviteeCreated(ctx context.Context, payload webhookPayload) {
	email, name := payload.Email, payload.Name
	if email == "" && payload.URI != "" {
		// Some payload versions omit the invitee fields; recover them
		// from the invitee resource itself.
		invitee, err := Calendly.FetchInvitee(ctx, payload.URI)
		if err != nil {
			log.Printf("Failed to fetch invitee %s: %v", payload.URI, err)
			return
		}
		email, name = invitee.Email, invitee.Name
	}

	var appointment models.Appointment
	err := db.DB.Where("patient_email = ?", email).
		Order("created_at DESC").
		First(&appointment).Error
	if err != nil {
		log.Printf("Appointment not found for email %s, dropping event", email)
		return
	}

	event, err := Calendly.FetchEvent(ctx, payload.ScheduledEvent.URI)
	if err != nil {
		// Reconciliation incomplete; the event is dropped, not retried.
		log.Printf("Failed to fetch event details for %s: %v", email, err)
		return
	}

	appointment.InviteeURI = payload.URI
	appointment.EventURI = payload.ScheduledEvent.URI
	appointment.MeetLink = event.JoinURL
	appointment.ConfirmedTime = &event.StartTime

	if err := appointment.UpdateStatus(db.DB, models.StatusScheduled); err != nil {
		log.Printf("Failed to reconcile appointment %d: %v", appointment.ID, err)
		return
	}
	redis.InvalidateList()

	subject, body := notifier.BookingConfirmedPatient(name, event.StartTime, event.JoinURL)
	notifier.Send(email, subject, body)
	if doctor := notifier.DoctorEmail(); doctor != "" {
		subject, body = notifier.BookingConfirmedDoctor(name, email, event.StartTime, event.JoinURL)
		notifier.Send(doctor, subject, body)
	}

	log.Printf("Appointment %d reconciled to scheduled for %s", appointment.ID, email)
}

// handleInviteeCanceled flips an appointment to cancelled, looked up by
// the invitee reference stored during reconciliation.
func handleInviteeCanceled(payload webhookPayload) {
	var appointment models.Appointment
	err := db.DB.Where("invitee_uri = ?", payload.URI).
		First(&appointment).Error
	if err != nil {
		log.Printf("Appointment not found for invitee %s, dropping event", payload.URI)
		return
	}

	now := time.Now()
	appointment.CancelledAt = &now

	if err := appointment.UpdateStatus(db.DB, models.StatusCancelled); err != nil {
		log.Printf("Failed to cancel appointment %d: %v", appointment.ID, err)
		return
	}
	redis.InvalidateList()

	subject, body := notifier.CancelledPatient(payload.Name)
	notifier.Send(payload.Email, subject, body)
	if doctor := notifier.DoctorEmail(); doctor != "" {
		subject, body = notifier.CancelledDoctor(payload.Name, payload.Email)
		notifier.Send(doctor, subject, body)
	}

	log.Printf("Cancellation processed for %s", payload.Email)
}
