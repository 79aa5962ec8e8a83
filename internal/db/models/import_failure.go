package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImportFailure is the dead-letter row written when a record is skipped
// during an import run. It keeps the raw source payload alongside the error
// so operators can inspect and re-submit bad records without digging through
// logs.
type ImportFailure struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Position  int            `gorm:"not null" json:"position"` // 1-based index in the source file
	Reason    string         `gorm:"not null" json:"reason"`
	Payload   datatypes.JSON `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// BeforeCreate hook to set UUID if not provided
func (f *ImportFailure) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name
func (ImportFailure) TableName() string {
	return "import_failures"
}
