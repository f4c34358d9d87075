package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediconsult/booking-api/models"
)

func newBookingApp() *fiber.App {
	app := fiber.New()
	app.Post("/appointments", BookAppointment)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// The rejection paths run before any persistence or external call, so no
// appointment can exist afterwards.
func TestBookAppointmentMissingFields(t *testing.T) {
	app := newBookingApp()

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"patient_name":"A","issues":"fever"}`},
		{"missing name", `{"patient_email":"a@x.com","issues":"fever"}`},
		{"missing issues", `{"patient_name":"A","patient_email":"a@x.com"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := postJSON(t, app, "/appointments", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "All fields are required", body["message"])
		})
	}
}

func TestBookAppointmentMalformedEmail(t *testing.T) {
	app := newBookingApp()

	status, body := postJSON(t, app, "/appointments",
		`{"patient_name":"A","patient_email":"not-an-email","issues":"fever"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid email format", body["message"])
}

func TestBookAppointmentUnparseableBody(t *testing.T) {
	app := newBookingApp()

	status, body := postJSON(t, app, "/appointments", `{"patient_name":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestSortByPriority(t *testing.T) {
	base := time.Now()
	// Newest-first input, the order the DB returns.
	appointments := []models.Appointment{
		{ID: 4, Priority: models.PriorityLow, CreatedAt: base.Add(3 * time.Hour)},
		{ID: 3, Priority: models.PriorityHigh, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 2, Priority: models.PriorityMedium, CreatedAt: base.Add(time.Hour)},
		{ID: 1, Priority: models.PriorityHigh, CreatedAt: base},
	}

	sortByPriority(appointments)

	ids := []uint{appointments[0].ID, appointments[1].ID, appointments[2].ID, appointments[3].ID}
	// High before Medium before Low; the newer High stays ahead of the
	// older one because the sort is stable.
	assert.Equal(t, []uint{3, 1, 2, 4}, ids)
}

func TestSortByPriorityUnknownLast(t *testing.T) {
	appointments := []models.Appointment{
		{ID: 1, Priority: models.Priority("Unknown")},
		{ID: 2, Priority: models.PriorityLow},
	}

	sortByPriority(appointments)

	assert.Equal(t, uint(2), appointments[0].ID)
	assert.Equal(t, uint(1), appointments[1].ID)
}

func TestBookingEmailValidation(t *testing.T) {
	valid := []string{"a@x.com", "jane.doe@example.co.uk", "a+tag@b.io"}
	invalid := []string{"", "plainaddress", "a @x.com", "a@x", "@x.com", "a@"}

	for _, e := range valid {
		assert.True(t, emailRegex.MatchString(e), e)
	}
	for _, e := range invalid {
		assert.False(t, emailRegex.MatchString(e), e)
	}
}
