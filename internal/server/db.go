// Package server implements the NetCanvas REST API: the database layer,
// the topology repository, payload validation and the Gin route handlers.
package server

import (
	"fmt"
	"log"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/villeh/netcanvas/internal/config"
	"github.com/villeh/netcanvas/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the database and ensures the schema is ready. Any error is
// fatal to startup: the API must not come up against an unready store.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unsupported db_driver %q (only 'sqlite')", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite does not enforce declared foreign keys unless asked to.
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	log.Printf("[db] opened %s/%s", cfg.DBDriver, cfg.DBPath)
	return db, nil
}

// migrate idempotently creates the devices and links tables and upgrades
// legacy schemas where the coordinate columns were declared INTEGER.
func migrate(db *gorm.DB) error {
	if err := widenCoordinateColumns(db); err != nil {
		return err
	}
	if err := db.AutoMigrate(&models.Device{}, &models.Link{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// widenCoordinateColumns alters devices.x / devices.y to a floating-point
// type in place when an older schema created them as INTEGER. Existing
// values are preserved by the rebuild.
func widenCoordinateColumns(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable(&models.Device{}) {
		return nil
	}
	cols, err := m.ColumnTypes(&models.Device{})
	if err != nil {
		return fmt.Errorf("inspecting devices schema: %w", err)
	}
	for _, col := range cols {
		name := col.Name()
		if name != "x" && name != "y" {
			continue
		}
		if strings.EqualFold(col.DatabaseTypeName(), "INTEGER") {
			if err := m.AlterColumn(&models.Device{}, name); err != nil {
				return fmt.Errorf("widening devices.%s: %w", name, err)
			}
			log.Printf("[db] widened legacy column devices.%s to REAL", name)
		}
	}
	return nil
}
