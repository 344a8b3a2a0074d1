package services

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML shape of a template catalog.
type catalogFile struct {
	IncludeBuiltin bool       `yaml:"include_builtin"`
	Templates      []Template `yaml:"templates"`
}

// LoadCatalog decodes a YAML catalog. When the file sets include_builtin the
// built-in templates come first and the file's templates are appended.
// Every template is validated; the first violation aborts the load.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("catalog: payload is empty")
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	var templates []Template
	if file.IncludeBuiltin {
		templates = append(templates, builtinTemplates()...)
	}
	templates = append(templates, file.Templates...)

	c, err := NewCatalog(templates)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

// LoadCatalogFile reads a YAML catalog from path. An empty path yields the
// built-in catalog.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()

	c, err := LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
