package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromFile loads a catalog from a file, auto-detecting format by
// extension. Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported catalog file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a Catalog. The document is a flat
// mapping of name to expression text:
//
//	adults: "users[.age >= 18]"
//	greeting: '"hello " + user.name'
func FromYAML(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse yaml catalog: %w", err)
	}
	return c, nil
}

// FromJSON parses JSON data into a Catalog.
func FromJSON(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse json catalog: %w", err)
	}
	return c, nil
}

// FromStore reads every expression in the store into a Catalog.
func FromStore(store Store) (Catalog, error) {
	entries, err := store.List()
	if err != nil {
		return nil, fmt.Errorf("list stored expressions: %w", err)
	}
	c := make(Catalog, len(entries))
	for _, entry := range entries {
		c[entry.Name] = entry.Source
	}
	return c, nil
}
