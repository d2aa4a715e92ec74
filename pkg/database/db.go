package database

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// InitDB initializes the database connection and migrates the schema.
// DATABASE_URL selects Postgres; without it a local SQLite file is used.
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "roster.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto Migration
	db.AutoMigrate(
		&models.Hospital{},
		&models.Location{},
		&models.Specialty{},
		&models.Professional{},
		&models.Roster{},
		&models.Shift{},
		&models.Availability{},
		&models.RuleParameter{},
		&models.RuleConfiguration{},
		&models.ShiftSwapRequest{},
		&models.AuditLog{},
	)

	return db
}
