// Package db opens the application's database connection.
package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"caboai_backend/internal/feature/auth/domain/entity"
)

// OpenDB connects to Postgres with a bounded retry loop; managed
// databases routinely come up after the application container.
// When runMigrations is set the schema is auto-migrated on startup.
func OpenDB(dsn string, runMigrations bool) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after 60s: %w", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if runMigrations {
		if err := conn.AutoMigrate(&entity.User{}); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return conn, nil
}
