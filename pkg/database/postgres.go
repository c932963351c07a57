package database

import (
	"log"

	"github.com/wisatatrek/tour-booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Route{}, &models.DailyCapacity{}, &models.Booking{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial index for occupancy reconciliation: only non-cancelled
	// bookings count toward a capacity entry.
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_capacity_active
		ON bookings (daily_capacity_id)
		WHERE status <> 'CANCELLED'
	`)

	return db
}
