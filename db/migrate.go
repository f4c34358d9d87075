package db

import (
	"fmt"
	"log"

	"github.com/mediconsult/booking-api/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Appointment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
