package tiles

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// catalogFile represents the structure of a catalog JSON document.
type catalogFile struct {
	Variants []*Variant `json:"variants"`
}

// DefaultCatalog loads the embedded catalog.json.
func DefaultCatalog() (*Catalog, error) {
	file, err := Load[catalogFile]("catalog.json")
	if err != nil {
		return nil, err
	}
	return NewCatalog(file.Variants)
}

// MustDefaultCatalog loads the embedded catalog, panicking on error.
// The embedded file is part of the binary, so a failure is a build defect.
func MustDefaultCatalog() *Catalog {
	catalog, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// LoadCatalog parses a catalog JSON document.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewCatalog(file.Variants)
}

// LoadCatalogFile parses the catalog stored at path.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	catalog, err := LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}
