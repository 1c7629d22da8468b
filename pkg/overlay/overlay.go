package overlay

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelform/pkg/model"
)

// FieldOverride replaces individual display settings of one field. Nil
// values keep the struct tag metadata.
type FieldOverride struct {
	Label       *string `json:"label,omitempty" yaml:"label,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Prompt      *string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Group       *string `json:"group,omitempty" yaml:"group,omitempty"`
	Order       *int    `json:"order,omitempty" yaml:"order,omitempty"`
	Tag         *string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Type        *string `json:"type,omitempty" yaml:"type,omitempty"`
	Icon        *string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Format      *string `json:"format,omitempty" yaml:"format,omitempty"`
	Culture     *string `json:"culture,omitempty" yaml:"culture,omitempty"`
	ColumnClass *string `json:"columnClass,omitempty" yaml:"columnClass,omitempty"`
	InputClass  *string `json:"inputClass,omitempty" yaml:"inputClass,omitempty"`
	Options     *string `json:"options,omitempty" yaml:"options,omitempty"`
	Attributes  *string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Render      *string `json:"render,omitempty" yaml:"render,omitempty"`
	Disabled    *bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Ignore      *bool   `json:"ignore,omitempty" yaml:"ignore,omitempty"`
}

// Model holds the overrides declared for one model name.
type Model struct {
	Name   string
	Source string
	Fields map[string]FieldOverride
}

// Store implements model.DisplayOverrider from loaded overlay documents.
type Store struct {
	models map[string]Model
}

type documentFile struct {
	Models map[string]modelFile `json:"models" yaml:"models"`
}

type modelFile struct {
	Fields map[string]FieldOverride `json:"fields" yaml:"fields"`
}

// LoadFS walks fsys and parses every JSON/YAML overlay document. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{models: make(map[string]Model)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverlayFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("overlay: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		return store.add(doc, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse reads a single overlay document.
func Parse(data []byte, source string) (*Store, error) {
	store := &Store{models: make(map[string]Model)}
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	if err := store.add(doc, source); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) add(doc documentFile, source string) error {
	for rawName, raw := range doc.Models {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return fmt.Errorf("overlay: file %s defines an empty model name", source)
		}
		if _, exists := s.models[name]; exists {
			return fmt.Errorf("overlay: duplicate model %q (file %s)", name, source)
		}
		m := Model{Name: name, Source: source, Fields: make(map[string]FieldOverride, len(raw.Fields))}
		for rawField, override := range raw.Fields {
			field := strings.TrimSpace(rawField)
			if field == "" {
				return fmt.Errorf("overlay: model %q (file %s) has an empty field name", name, source)
			}
			if override.Render != nil {
				if _, ok := model.ParseRenderMode(*override.Render); !ok {
					return fmt.Errorf("overlay: model %q field %q (file %s): invalid render mode %q", name, field, source, *override.Render)
				}
			}
			m.Fields[field] = override
		}
		s.models[name] = m
	}
	return nil
}

// Model returns the overrides for name.
func (s *Store) Model(name string) (Model, bool) {
	if s == nil {
		return Model{}, false
	}
	m, ok := s.models[name]
	return m, ok
}

// Models lists the model names in sorted order.
func (s *Store) Models() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.models))
	for name := range s.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any model.
func (s *Store) Empty() bool {
	return s == nil || len(s.models) == 0
}

// OverrideDisplay implements model.DisplayOverrider.
func (s *Store) OverrideDisplay(modelName, field string, display model.Display) model.Display {
	m, ok := s.Model(modelName)
	if !ok {
		return display
	}
	override, ok := m.Fields[field]
	if !ok {
		return display
	}
	return override.Apply(display)
}

// Apply returns display with every non-nil override applied.
func (o FieldOverride) Apply(display model.Display) model.Display {
	setString(&display.Name, o.Label)
	setString(&display.Description, o.Description)
	setString(&display.Prompt, o.Prompt)
	setString(&display.Group, o.Group)
	setString(&display.Tag, o.Tag)
	setString(&display.Type, o.Type)
	setString(&display.Icon, o.Icon)
	setString(&display.Format, o.Format)
	setString(&display.Culture, o.Culture)
	setString(&display.ColumnClass, o.ColumnClass)
	setString(&display.InputClass, o.InputClass)
	setString(&display.Options, o.Options)
	setString(&display.Attributes, o.Attributes)
	if o.Order != nil {
		order := *o.Order
		display.Order = &order
	}
	if o.Render != nil {
		if mode, ok := model.ParseRenderMode(*o.Render); ok {
			display.RenderMode = mode
		}
	}
	if o.Disabled != nil {
		display.Disabled = *o.Disabled
	}
	if o.Ignore != nil {
		display.Ignore = *o.Ignore
	}
	return display
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("overlay: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("overlay: parse %s: invalid JSON or YAML", source)
}

func isOverlayFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
