package migrations

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// ValueSizeConstraint is the check constraint that caps a single document.
// The store maps its violation to a storage-full error.
const ValueSizeConstraint = "chk_kv_records_value_size"

// MaxValueBytes mirrors the 5 MiB per-origin budget of browser storage.
const MaxValueBytes = 5 * 1024 * 1024

// addValueSizeLimit caps document size so an oversized poster fails like a full disk.
func addValueSizeLimit() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_add_value_size_limit",
		Migrate: func(tx *gorm.DB) error {
			return tx.Exec(fmt.Sprintf(`
				ALTER TABLE kv_records
				ADD CONSTRAINT %s
				CHECK (octet_length(value) <= %d);
			`, ValueSizeConstraint, MaxValueBytes)).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("ALTER TABLE kv_records DROP CONSTRAINT IF EXISTS " + ValueSizeConstraint + ";").Error
		},
	}
}
