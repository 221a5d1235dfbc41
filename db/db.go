package db

import (
	"fmt"
	"log"
	"os"

	"fieldops-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Equipment{},
		&models.Material{},
		&models.Reservation{},
		&models.Allocation{},
		&models.MaterialTransaction{},
		&models.UsageLog{},
	); err != nil {
		return err
	}

	// Raw constraints below are Postgres syntax; sqlite test databases only
	// get what AutoMigrate produced, which is enough for the advisory paths.
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	// Authoritative reservation exclusivity: no two active reservations on
	// the same equipment may hold intersecting [from, until) ranges. The
	// advisory query in CheckAndReserve is only the friendly error path.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist;`).Error; err != nil {
		return err
	}
	if err := db.Exec(fmt.Sprintf(`
	  DO $$ BEGIN
	    ALTER TABLE %s ADD CONSTRAINT %s_no_overlap
	    EXCLUDE USING gist (
	      equipment_id WITH =,
	      tstzrange(reserved_from, reserved_until) WITH &&
	    ) WHERE (is_active);
	  EXCEPTION WHEN duplicate_object THEN NULL;
	  END $$;
	`, models.ReservationTable, models.ReservationTable)).Error; err != nil {
		return err
	}

	// One usage log per (equipment, date, work entry); NULL work entries are
	// exempt, matching per-event dedup semantics.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_per_work_entry
	  ON %s (equipment_id, usage_date, work_entry_id)
	  WHERE work_entry_id IS NOT NULL;
	`, models.UsageLogTable, models.UsageLogTable)).Error; err != nil {
		return err
	}

	return nil
}
