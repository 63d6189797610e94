package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createKVRecordsTable creates the namespaced key-value table.
func createKVRecordsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_kv_records",
		Migrate: func(tx *gorm.DB) error {
			return tx.Exec(`
				CREATE TABLE IF NOT EXISTS kv_records (
					namespace VARCHAR(100) NOT NULL,
					key VARCHAR(100) NOT NULL,
					value BYTEA NOT NULL,

					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					PRIMARY KEY (namespace, key)
				);
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS kv_records;").Error
		},
	}
}
