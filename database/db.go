package database

import (
	"fmt"
	"os"

	"venue-booking/logger"
	"venue-booking/models/log"
	"venue-booking/models/massage"
	"venue-booking/models/reservation"
	"venue-booking/models/room"
	"venue-booking/models/venue"
	"venue-booking/models/webhook"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models
func autoMigrate() error {
	// Stage 1: catalog models without foreign key dependencies
	stage1Models := []interface{}{
		&venue.Venue{},
		&room.RoomType{},
		&massage.MassageType{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: models with dependencies on Stage 1
	stage2Models := []interface{}{
		&room.Room{},
		&reservation.EventReservation{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: reservations referencing events, audit and logging
	remainingModels := []interface{}{
		&reservation.RoomReservation{},
		&reservation.MassageReservation{},
		&reservation.StatusEvent{},
		&webhook.Event{},
		// Logging
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance. The
// composite (resource, status, window) indexes back the overlap scan run on
// every availability check.
func createIndexes() error {
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_room_reservations_overlap ON room_reservations(room_id, status, starts_at, ends_at)").Error; err != nil {
		return fmt.Errorf("failed to create room reservation overlap index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_event_reservations_overlap ON event_reservations(venue_id, status, starts_at, ends_at)").Error; err != nil {
		return fmt.Errorf("failed to create event reservation overlap index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_massage_reservations_overlap ON massage_reservations(massage_type_id, status, starts_at, ends_at)").Error; err != nil {
		return fmt.Errorf("failed to create massage reservation overlap index: %w", err)
	}

	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_room_reservations_parent_event ON room_reservations(parent_event_id)").Error; err != nil {
		return fmt.Errorf("failed to create parent event index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
