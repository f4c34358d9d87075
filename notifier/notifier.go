package notifier

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

// Send delivers a templated HTML email. Notifications are best-effort:
// failures are logged and swallowed so they never abort the booking,
// decision or reconciliation that triggered them.
func Send(to, subject, htmlBody string) bool {
	if err := sendMail(to, subject, htmlBody); err != nil {
		log.Printf("Failed to send email to %s (%s): %v", to, subject, err)
		return false
	}
	return true
}

// DoctorEmail is the reviewing doctor's notification address.
func DoctorEmail() string {
	return os.Getenv("DOCTOR_EMAIL")
}

func sendMail(to, subject, body string) error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}
