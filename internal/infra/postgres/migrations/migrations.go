// Package migrations versions the kv_records schema with gormigrate.
package migrations

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// options keeps the catalog's migration history apart from other apps sharing the database.
var options = &gormigrate.Options{
	TableName:                 "catalog_schema_migrations",
	IDColumnName:              "id",
	IDColumnSize:              255,
	UseTransaction:            true,
	ValidateUnknownMigrations: true,
}

// Migrations returns every migration in apply order.
func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		createKVRecordsTable(),
		addValueSizeLimit(),
	}
}

// Run applies pending migrations. It refuses to run against a database that
// has migrations this binary does not know about.
func Run(db *gorm.DB) error {
	if err := gormigrate.New(db, options, Migrations()).Migrate(); err != nil {
		return fmt.Errorf("migrating kv_records: %w", err)
	}
	return nil
}

// Rollback undoes the most recent migration.
func Rollback(db *gorm.DB) error {
	if err := gormigrate.New(db, options, Migrations()).RollbackLast(); err != nil {
		return fmt.Errorf("rolling back kv_records: %w", err)
	}
	return nil
}
