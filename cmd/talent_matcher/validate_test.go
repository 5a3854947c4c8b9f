package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/schemas"
)

func TestValidateCommand_Success(t *testing.T) {
	out, err := execute(t, "validate", "--kind", "dataset", "--json", testDataset(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed")
}

func TestValidateCommand_Failure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"synonyms": {}}`), 0644))

	_, err := execute(t, "validate", "--kind", "taxonomy", "--json", path)
	require.Error(t, err)
	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidateCommand_UnknownKind(t *testing.T) {
	_, err := execute(t, "validate", "--kind", "resume", "--json", testDataset(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}
