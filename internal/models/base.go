package models

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// BaseModel contains common columns for all record tables
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Database connection instance
var DB *gorm.DB

// InitDB initializes database connection
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	var err error

	// Connect to MySQL database
	DB, err = gorm.Open(mysql.Open(config.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(DB); err != nil {
		return nil, err
	}

	return DB, nil
}

// Migrate runs the schema migration for all models. Split out of InitDB so
// tests can run it against their own connection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Patient{},
		&Doctor{},
		&Appointment{},
		&SymptomEntry{},
		&CarePlan{},
	)
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}
