package database

import (
	"fmt"
	"log"

	"github.com/studyia/career/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens Postgres and migrates the schema.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Println("Database connection established")

	log.Println("Running Migrations...")
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.CV{}, &models.PaymentConfirmation{}, &models.ReferralVisit{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
