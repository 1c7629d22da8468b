package theme

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	gotheme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type manifestDocument struct {
	Name     string                       `json:"name" yaml:"name"`
	Version  string                       `json:"version" yaml:"version"`
	Tokens   map[string]string            `json:"tokens" yaml:"tokens"`
	Variants map[string]map[string]string `json:"variants" yaml:"variants"`
}

// LoadManifest reads a theme manifest from fsys. JSON is tried first, then
// YAML. Variants map a variant name to its token overrides.
func LoadManifest(fsys fs.FS, path string) (*gotheme.Manifest, error) {
	if fsys == nil {
		return nil, fmt.Errorf("theme: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("theme: read %s: %w", path, err)
	}
	return ParseManifest(data, path)
}

// ParseManifest decodes raw manifest bytes. source is used in error messages
// and to pick the decoder from the file extension.
func ParseManifest(data []byte, source string) (*gotheme.Manifest, error) {
	var doc manifestDocument
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("theme: parse %s: %w", source, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
				return nil, fmt.Errorf("theme: parse %s: %w", source, err)
			}
		}
	}
	if strings.TrimSpace(doc.Name) == "" {
		return nil, fmt.Errorf("theme: %s: manifest name is required", source)
	}

	manifest := &gotheme.Manifest{
		Name:     doc.Name,
		Version:  doc.Version,
		Tokens:   doc.Tokens,
		Variants: make(map[string]gotheme.Variant, len(doc.Variants)),
	}
	for name, tokens := range doc.Variants {
		manifest.Variants[name] = gotheme.Variant{Tokens: tokens}
	}
	return manifest, nil
}
