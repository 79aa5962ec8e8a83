package importer

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/pandeptwidyaop/uniport/pkg/errors"

	"github.com/pandeptwidyaop/uniport/internal/db/models"
)

// UpsertUniversity inserts or updates the university row identified by the
// (name, country) pair and returns its id. A nil country matches only rows
// with a null country. On a repeated import the coalesce rule applies:
// alpha_two_code and website are refreshed only when the incoming record
// carries a value, never overwritten with null. Name must be non-empty;
// callers validate first.
func UpsertUniversity(tx *gorm.DB, name string, country, alphaTwoCode, website *string) (uuid.UUID, error) {
	query := tx.Where("name = ?", name)
	if country != nil {
		query = query.Where("country = ?", *country)
	} else {
		query = query.Where("country IS NULL")
	}

	var existing models.University
	err := query.First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		uni := models.University{
			Name:         name,
			Country:      country,
			AlphaTwoCode: alphaTwoCode,
			Website:      website,
		}
		if err := tx.Create(&uni).Error; err != nil {
			return uuid.Nil, apperrors.Wrap(err, "failed to insert university")
		}
		return uni.ID, nil
	}
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to look up university")
	}
	if existing.ID == uuid.Nil {
		return uuid.Nil, apperrors.ErrNoRowReturned
	}

	if updates := existing.Merge(models.University{AlphaTwoCode: alphaTwoCode, Website: website}); len(updates) > 0 {
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return uuid.Nil, apperrors.Wrap(err, "failed to update university")
		}
	}

	return existing.ID, nil
}

// InsertDomain claims a domain for a university. The first import to claim a
// domain wins; a conflicting claim is a silent no-op reported as false.
func InsertDomain(tx *gorm.DB, domain string, universityID uuid.UUID, isPrimary bool) (bool, error) {
	row := models.UniversityDomain{
		Domain:       domain,
		UniversityID: universityID,
		IsPrimary:    isPrimary,
	}

	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, "failed to insert domain")
	}

	return result.RowsAffected > 0, nil
}
