package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mediconsult/booking-api/controllers"
)

// SetupWebhookRoutes registers the scheduling-provider callback. The
// endpoint authenticates itself via the signature header, not the session.
func SetupWebhookRoutes(app *fiber.App) {
	app.Post("/webhooks/calendly", controllers.HandleCalendlyWebhook)
}
