package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/mediconsult/booking-api/calendly"
	"github.com/mediconsult/booking-api/controllers"
	"github.com/mediconsult/booking-api/cron"
	"github.com/mediconsult/booking-api/db"
	"github.com/mediconsult/booking-api/redis"
	"github.com/mediconsult/booking-api/routes"
	"github.com/mediconsult/booking-api/triage"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	redis.Init()

	controllers.Setup(triage.New(), calendly.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, World!")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupWebhookRoutes(app)

	cron.StartCronJobs()

	if err := app.Listen(":8000"); err != nil {
		log.Fatal(err)
	}
}
