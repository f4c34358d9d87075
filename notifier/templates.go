package notifier

import (
	"fmt"
	"os"
	"time"
)

// AppURL is the public booking page, used for reschedule and dashboard
// links in emails.
func AppURL() string {
	if u := os.Getenv("APP_URL"); u != "" {
		return u
	}
	return "http://localhost:8000"
}

// BookingReceivedPatient acknowledges a new booking and points the patient
// at the scheduling link to pick a final slot.
func BookingReceivedPatient(name string, priority, schedulingURL string) (string, string) {
	link := ""
	if schedulingURL != "" {
		link = fmt.Sprintf(`<p><a href="%s">Choose your consultation slot</a></p>`, schedulingURL)
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your consultation request and triaged it as <strong>%s</strong> priority.</p>
		<p>Please complete your booking by selecting a time slot:</p>
		%s
		<p>The doctor will review your request shortly.</p>
		<p>Best regards,<br>Medical Consultation Team</p>
	`, name, priority, link)
	return "Consultation Request Received", body
}

// BookingReceivedDoctor tells the doctor a new request is waiting on the
// dashboard.
func BookingReceivedDoctor(name, email, issues, priority, preferredTime string) (string, string) {
	body := fmt.Sprintf(`
		<p>A new consultation request is awaiting review.</p>
		<ul>
			<li><strong>Patient:</strong> %s (%s)</li>
			<li><strong>Reported issues:</strong> %s</li>
			<li><strong>Triage priority:</strong> %s</li>
			<li><strong>Preferred time:</strong> %s</li>
		</ul>
		<p><a href="%s/doctor-dashboard">Open the dashboard</a> to approve or reject.</p>
	`, name, email, issues, priority, preferredTime, AppURL())
	return fmt.Sprintf("New Consultation Request - %s priority", priority), body
}

// BookingConfirmedPatient confirms a slot the patient finalized on the
// scheduling provider.
func BookingConfirmedPatient(name string, startTime time.Time, meetLink string) (string, string) {
	link := ""
	if meetLink != "" {
		link = fmt.Sprintf(`<li><strong>Meeting link:</strong> <a href="%s">Join video consultation</a></li>`, meetLink)
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your medical consultation has been successfully scheduled!</p>
		<ul>
			<li><strong>Date and time:</strong> %s</li>
			%s
		</ul>
		<p>Please join 5 minutes early and keep your medical history ready.</p>
		<p>Best regards,<br>Medical Consultation Team</p>
	`, name, startTime.Format("Monday, January 2 2006 at 15:04"), link)
	return "Your Medical Consultation is Confirmed", body
}

// BookingConfirmedDoctor notifies the doctor that the patient finalized a
// slot.
func BookingConfirmedDoctor(name, email string, startTime time.Time, meetLink string) (string, string) {
	link := ""
	if meetLink != "" {
		link = fmt.Sprintf(`<li><strong>Meeting link:</strong> <a href="%s">Join meeting</a></li>`, meetLink)
	}
	body := fmt.Sprintf(`
		<p>Patient booked an appointment.</p>
		<ul>
			<li><strong>Patient:</strong> %s (%s)</li>
			<li><strong>Scheduled time:</strong> %s</li>
			%s
		</ul>
		<p><a href="%s/doctor-dashboard">View dashboard</a></p>
	`, name, email, startTime.Format("Monday, January 2 2006 at 15:04"), link, AppURL())
	return fmt.Sprintf("Appointment Confirmed - %s", name), body
}

// CancelledPatient confirms a cancellation back to the patient.
func CancelledPatient(name string) (string, string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your medical consultation has been cancelled as requested.</p>
		<p>If you'd like to reschedule, please visit our <a href="%s">booking page</a>.</p>
		<p>Best regards,<br>Medical Consultation Team</p>
	`, name, AppURL())
	return "Appointment Cancelled", body
}

// CancelledDoctor notifies the doctor of a patient-side cancellation.
func CancelledDoctor(name, email string) (string, string) {
	body := fmt.Sprintf(`<p>Patient %s (%s) has cancelled their appointment.</p>`, name, email)
	return fmt.Sprintf("Appointment Cancelled - %s", name), body
}

// ApprovedPatient carries the doctor's approval and the meeting link. The
// reminder is only promised when a confirmed time exists: reminders key off
// the provider-confirmed slot, which an approval straight from pending does
// not have.
func ApprovedPatient(name, preferredTime, meetLink string, withReminder bool) (string, string) {
	reminder := ""
	if withReminder {
		reminder = "<p>You will receive a reminder 10 minutes before your consultation.</p>"
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been approved by the doctor.</p>
		<ul>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Meeting link:</strong> <a href="%s">%s</a></li>
		</ul>
		%s
		<p>Best regards,<br>Medical Consultation Team</p>
	`, name, preferredTime, meetLink, meetLink, reminder)
	return "Appointment Confirmed", body
}

// RejectedPatient asks the patient to pick another time.
func RejectedPatient(name string) (string, string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Unfortunately, the doctor is not available at your requested time.</p>
		<p>Please <a href="%s">reschedule your appointment</a>.</p>
		<p>We apologize for the inconvenience.</p>
		<p>Best regards,<br>Medical Consultation Team</p>
	`, name, AppURL())
	return "Appointment Rescheduling Required", body
}

// Reminder nudges the patient shortly before a confirmed consultation.
func Reminder(name string, startTime time.Time, meetLink string) (string, string) {
	link := ""
	if meetLink != "" {
		link = fmt.Sprintf(`<p><a href="%s">Join video consultation</a></p>`, meetLink)
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder that your consultation starts at %s.</p>
		%s
		<p>Please make sure you have a stable internet connection.</p>
		<p>Best regards,<br>Medical Consultation Team</p>
	`, name, startTime.Format("15:04"), link)
	return "Reminder: Upcoming Consultation", body
}
