package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// University represents one educational institution from the source dataset.
// Rows are deduped on the (name, country) pair; country takes part in the key
// as a nullable column, so the same name may appear once per country.
type University struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null;uniqueIndex:universities_name_country_key" json:"name"`
	Country      *string   `gorm:"uniqueIndex:universities_name_country_key" json:"country,omitempty"`
	AlphaTwoCode *string   `gorm:"size:2" json:"alpha_two_code,omitempty"`
	Website      *string   `json:"website,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	Domains []UniversityDomain `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate hook to set UUID if not provided
func (u *University) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name
func (University) TableName() string {
	return "universities"
}

// Merge folds a newly imported record into an existing row. Incoming non-nil
// values win; a nil incoming value never erases a stored one. Name and
// Country are the lookup key and are left untouched. The returned column map
// holds only the fields that changed, ready for a targeted update; it is
// empty when the incoming record adds nothing.
func (u *University) Merge(incoming University) map[string]interface{} {
	updates := map[string]interface{}{}
	if incoming.AlphaTwoCode != nil {
		u.AlphaTwoCode = incoming.AlphaTwoCode
		updates["alpha_two_code"] = *incoming.AlphaTwoCode
	}
	if incoming.Website != nil {
		u.Website = incoming.Website
		updates["website"] = *incoming.Website
	}
	return updates
}
