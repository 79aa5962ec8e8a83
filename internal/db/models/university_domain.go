package models

import (
	"time"

	"github.com/google/uuid"
)

// UniversityDomain represents one internet domain owned by a university.
// The normalized domain string is the primary key, so a domain is globally
// unique across the whole table: the first import to claim it wins and later
// claims are no-ops. IsPrimary marks the first domain of a record's list, a
// per-record convention rather than a per-university invariant.
type UniversityDomain struct {
	Domain       string    `gorm:"primaryKey;size:255" json:"domain"`
	UniversityID uuid.UUID `gorm:"type:uuid;not null;index:idx_university_domains_university" json:"university_id"`
	IsPrimary    bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	University University `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (UniversityDomain) TableName() string {
	return "university_domains"
}
