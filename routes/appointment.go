package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mediconsult/booking-api/controllers"
	"github.com/mediconsult/booking-api/middleware"
)

// SetupAppointmentRoutes configures the booking and dashboard routes.
// Booking is public; the dashboard and decisions are doctor-only.
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")
	appointment.Post("/", controllers.BookAppointment)
	appointment.Get("/", middleware.Protected(), middleware.RequireDoctor(), controllers.GetAllAppointments)
	appointment.Post("/:id/approve", middleware.Protected(), middleware.RequireDoctor(), controllers.ApproveAppointment)
	appointment.Post("/:id/reject", middleware.Protected(), middleware.RequireDoctor(), controllers.RejectAppointment)

	app.Get("/availability", middleware.Protected(), middleware.RequireDoctor(), controllers.GetAvailability)
}
