package taxonomy

import (
	"encoding/json"
	"os"

	"github.com/jonathan/talent-matcher/internal/schemas"
)

// File is the on-disk form of a taxonomy override.
type File struct {
	Categories  []Category          `json:"categories"`
	Synonyms    map[string][]string `json:"synonyms,omitempty"`
	Complements map[string][]string `json:"complements,omitempty"`
}

// Load reads a taxonomy override from a JSON file. The document is checked against the
// embedded taxonomy schema before it is decoded.
func Load(path string) (*Taxonomy, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	return Parse(path, content)
}

// Parse builds a Taxonomy from JSON content. name is only used in error messages.
func Parse(name string, content []byte) (*Taxonomy, error) {
	if err := schemas.Validate(schemas.TaxonomySchema, content); err != nil {
		return nil, &LoadError{Path: name, Message: "schema validation failed", Cause: err}
	}

	var f File
	if err := json.Unmarshal(content, &f); err != nil {
		return nil, &LoadError{Path: name, Message: "failed to unmarshal JSON", Cause: err}
	}

	return New(f.Categories, f.Synonyms, f.Complements), nil
}

// LoadOrDefault returns the built-in taxonomy when path is empty and Load(path) otherwise.
func LoadOrDefault(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
