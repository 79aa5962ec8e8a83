package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// keep the in-memory database on a single connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// Auto-migrate models
	err = db.AutoMigrate(&University{}, &UniversityDomain{}, &ImportFailure{})
	require.NoError(t, err)

	return db
}

func strPtr(s string) *string {
	return &s
}

// TestUniversityBeforeCreate tests UUID generation on creation
func TestUniversityBeforeCreate(t *testing.T) {
	db := setupTestDB(t)

	uni := &University{
		Name:    "Example University",
		Country: strPtr("United States"),
	}

	err := db.Create(uni).Error
	require.NoError(t, err)

	// UUID should be auto-generated
	assert.NotEqual(t, uuid.Nil, uni.ID)
}

// TestUniversityBeforeCreate_WithProvidedID tests that provided UUID is preserved
func TestUniversityBeforeCreate_WithProvidedID(t *testing.T) {
	db := setupTestDB(t)

	providedID := uuid.New()
	uni := &University{
		ID:   providedID,
		Name: "Example University",
	}

	err := db.Create(uni).Error
	require.NoError(t, err)

	assert.Equal(t, providedID, uni.ID)
}

// TestUniversityUniqueNameCountry tests the (name, country) dedupe key
func TestUniversityUniqueNameCountry(t *testing.T) {
	db := setupTestDB(t)

	uni1 := &University{Name: "Example University", Country: strPtr("United States")}
	require.NoError(t, db.Create(uni1).Error)

	// Same name and country must be rejected
	dup := &University{Name: "Example University", Country: strPtr("United States")}
	assert.Error(t, db.Create(dup).Error)

	// Same name, different country is a distinct university
	other := &University{Name: "Example University", Country: strPtr("Canada")}
	assert.NoError(t, db.Create(other).Error)
}

// TestUniversityMerge tests the coalesce rule field by field
func TestUniversityMerge(t *testing.T) {
	tests := []struct {
		name        string
		existing    University
		incoming    University
		wantCode    *string
		wantWebsite *string
		wantUpdates int
	}{
		{
			name:        "incoming fills empty fields",
			existing:    University{Name: "A"},
			incoming:    University{AlphaTwoCode: strPtr("US"), Website: strPtr("http://a.edu")},
			wantCode:    strPtr("US"),
			wantWebsite: strPtr("http://a.edu"),
			wantUpdates: 2,
		},
		{
			name:        "incoming nil never erases",
			existing:    University{Name: "A", AlphaTwoCode: strPtr("US"), Website: strPtr("http://a.edu")},
			incoming:    University{},
			wantCode:    strPtr("US"),
			wantWebsite: strPtr("http://a.edu"),
			wantUpdates: 0,
		},
		{
			name:        "incoming non-nil wins",
			existing:    University{Name: "A", Website: strPtr("http://old.a.edu")},
			incoming:    University{Website: strPtr("http://a.edu")},
			wantCode:    nil,
			wantWebsite: strPtr("http://a.edu"),
			wantUpdates: 1,
		},
		{
			name:        "partial update",
			existing:    University{Name: "A", AlphaTwoCode: strPtr("US")},
			incoming:    University{Website: strPtr("http://a.edu")},
			wantCode:    strPtr("US"),
			wantWebsite: strPtr("http://a.edu"),
			wantUpdates: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updates := tt.existing.Merge(tt.incoming)
			assert.Len(t, updates, tt.wantUpdates)

			if tt.wantCode == nil {
				assert.Nil(t, tt.existing.AlphaTwoCode)
			} else {
				require.NotNil(t, tt.existing.AlphaTwoCode)
				assert.Equal(t, *tt.wantCode, *tt.existing.AlphaTwoCode)
			}
			if tt.wantWebsite == nil {
				assert.Nil(t, tt.existing.Website)
			} else {
				require.NotNil(t, tt.existing.Website)
				assert.Equal(t, *tt.wantWebsite, *tt.existing.Website)
			}
		})
	}
}

// TestUniversityMerge_KeyFieldsUntouched tests that Merge never alters the lookup key
func TestUniversityMerge_KeyFieldsUntouched(t *testing.T) {
	existing := University{Name: "A", Country: strPtr("US")}
	existing.Merge(University{Name: "B", Country: strPtr("Canada")})

	assert.Equal(t, "A", existing.Name)
	require.NotNil(t, existing.Country)
	assert.Equal(t, "US", *existing.Country)
}

// TestUniversityTableName tests the table name
func TestUniversityTableName(t *testing.T) {
	assert.Equal(t, "universities", University{}.TableName())
}
