package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mediconsult/booking-api/db"
	"github.com/mediconsult/booking-api/models"
	"github.com/mediconsult/booking-api/notifier"
)

// StartCronJobs initializes and starts the cron scheduler for consultation reminders
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Run every minute to catch consultations starting in ~10 minutes
	_, err := c.AddFunc("* * * * *", sendConsultationReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for consultation reminders")
}

// sendConsultationReminders emails patients whose confirmed consultation
// starts in the next 5 to 15 minutes. The approval email promises a
// reminder 10 minutes ahead; the window plus the reminder_sent flag keeps
// it to one per appointment.
func sendConsultationReminders() {
	now := time.Now()
	startWindow := now.Add(5 * time.Minute)
	endWindow := now.Add(15 * time.Minute)

	var appointments []models.Appointment
	err := db.DB.
		Where("status IN ? AND reminder_sent = ? AND confirmed_time BETWEEN ? AND ?",
			[]models.AppointmentStatus{models.StatusScheduled, models.StatusApproved},
			false, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		subject, body := notifier.Reminder(appointment.PatientName, *appointment.ConfirmedTime, appointment.MeetLink)
		if !notifier.Send(appointment.PatientEmail, subject, body) {
			continue
		}

		appointment.ReminderSent = true
		if err := db.DB.Save(&appointment).Error; err != nil {
			log.Printf("Failed to mark reminder sent for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.PatientEmail)
	}
}
