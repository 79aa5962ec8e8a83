package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pandeptwidyaop/uniport/pkg/errors"
)

// writeInput writes a temp input file and returns its path.
func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "universities.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad_ValidArray tests loading a well-formed dataset.
func TestLoad_ValidArray(t *testing.T) {
	path := writeInput(t, `[
		{
			"name": "Example University",
			"country": "United States",
			"alpha_two_code": "US",
			"web_pages": ["http://example.edu"],
			"domains": ["example.edu", "www.example.edu"]
		}
	]`)

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.True(t, rec.Name.Set)
	assert.Equal(t, "Example University", rec.Name.Value)
	assert.True(t, rec.Country.Set)
	assert.Equal(t, "United States", rec.Country.Value)
	assert.True(t, rec.AlphaTwoCode.Set)
	assert.Equal(t, "US", rec.AlphaTwoCode.Value)
	assert.Equal(t, StringList{"http://example.edu"}, rec.WebPages)
	assert.Equal(t, StringList{"example.edu", "www.example.edu"}, rec.Domains)
	assert.NotEmpty(t, rec.Raw)
}

// TestLoad_EmptyArray tests loading an empty dataset.
func TestLoad_EmptyArray(t *testing.T) {
	records, err := Load(writeInput(t, `[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

// TestLoad_TopLevelObject tests that a non-array document is rejected.
func TestLoad_TopLevelObject(t *testing.T) {
	_, err := Load(writeInput(t, `{"name": "Example University"}`))
	assert.True(t, errors.Is(err, apperrors.ErrNotAnArray))
}

// TestLoad_InvalidJSON tests that malformed JSON is a distinct parse error.
func TestLoad_InvalidJSON(t *testing.T) {
	_, err := Load(writeInput(t, `[{"name": "Broken`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrNotAnArray))
}

// TestLoad_MissingFile tests the unreadable-file error path.
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

// TestLoad_TolerantFields tests that dirty field shapes decode as absent or
// coerced instead of failing the document.
func TestLoad_TolerantFields(t *testing.T) {
	path := writeInput(t, `[
		{"name": 42, "country": null, "alpha_two_code": ["US"], "web_pages": "not-a-list", "domains": {"a": 1}},
		{"name": "Coerced U", "domains": ["a.edu", 7, true]}
	]`)

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	dirty := records[0]
	assert.False(t, dirty.Name.Set)
	assert.False(t, dirty.Country.Set)
	assert.False(t, dirty.AlphaTwoCode.Set)
	assert.Empty(t, dirty.WebPages)
	assert.Empty(t, dirty.Domains)

	coerced := records[1]
	assert.Equal(t, StringList{"a.edu", "7", "true"}, coerced.Domains)
}

// TestLoad_NonObjectEntry tests that a non-object entry decodes as a
// nameless record instead of failing the run.
func TestLoad_NonObjectEntry(t *testing.T) {
	records, err := Load(writeInput(t, `[123, {"name": "Real University"}]`))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.False(t, records[0].Name.Set)
	assert.Equal(t, "123", string(records[0].Raw))
	assert.Equal(t, "Real University", records[1].Name.Value)
}

// TestLoad_UnrecognizedFieldsIgnored tests that extra fields are dropped.
func TestLoad_UnrecognizedFieldsIgnored(t *testing.T) {
	records, err := Load(writeInput(t, `[{"name": "Example University", "state-province": "CA"}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Example University", records[0].Name.Value)
}
