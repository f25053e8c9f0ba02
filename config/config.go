package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"eventure/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	SeedCategories(db)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Session{},
		&models.Category{},
		&models.Event{},
		&models.Ticket{},
	)
}

// SeedCategories inserts the marketplace taxonomy once. Counts start at
// zero; only the event-creation transaction moves them.
func SeedCategories(db *gorm.DB) {
	names := []string{
		"Music & Entertainment",
		"Arts & Culture",
		"Conferences & Networking",
		"Food & Drink",
		"Sports & Fitness",
		"Community & Lifestyle",
		"Health & Wellness",
		"Special Occasions",
		"Technology & Education",
		"Niche / Emerging",
	}

	for _, name := range names {
		var existing models.Category
		result := db.Where("name = ?", name).First(&existing)
		if result.Error != nil {
			db.Create(&models.Category{Name: name})
		}
	}
}
