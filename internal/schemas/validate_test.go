package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_TaxonomyValid(t *testing.T) {
	doc := `{
		"categories": [{"id": "backend", "name": "Backend", "skills": ["go", "grpc"]}],
		"synonyms": {"go": ["golang"]},
		"complements": {"go": ["docker"]}
	}`

	assert.NoError(t, Validate(TaxonomySchema, []byte(doc)))
}

func TestValidate_TaxonomyMissingCategories(t *testing.T) {
	err := Validate(TaxonomySchema, []byte(`{"synonyms": {}}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidate_TaxonomyWrongType(t *testing.T) {
	doc := `{"categories": [{"id": "backend", "name": "Backend", "skills": "go"}]}`

	err := Validate(TaxonomySchema, []byte(doc))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Error(), "skills")
}

func TestValidate_DatasetValid(t *testing.T) {
	doc := `{
		"candidates": [{"id": "550e8400-e29b-41d4-a716-446655440000", "skills": ["go", {"name": "sql", "level": "expert"}]}],
		"jobs": [{"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "created_at": "2026-01-02T00:00:00Z", "experience_level": "mid"}]
	}`

	assert.NoError(t, Validate(DatasetSchema, []byte(doc)))
}

func TestValidate_DatasetBadUUID(t *testing.T) {
	doc := `{"candidates": [{"id": "not-a-uuid"}], "jobs": []}`

	err := Validate(DatasetSchema, []byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "schema not found")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(TaxonomySchema, []byte(`{ invalid json }`))
	assert.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"categories": [{"id": "a", "name": "A", "skills": []}]}`), 0644))

	assert.NoError(t, ValidateFile(TaxonomySchema, path))

	err := ValidateFile(TaxonomySchema, filepath.Join(dir, "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))

	err := ValidateJSONString(schema, `{"name": 3}`)
	require.Error(t, err)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Errors, 1)
}
