package postgres

import (
	"time"
)

// KVRecordModel is the GORM model for the kv_records table.
// One row holds one whole collection document.
type KVRecordModel struct {
	Namespace string    `gorm:"type:varchar(100);primaryKey"`
	Key       string    `gorm:"type:varchar(100);primaryKey"`
	Value     []byte    `gorm:"type:bytea;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for KVRecordModel.
func (KVRecordModel) TableName() string {
	return "kv_records"
}
