package openapi

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelform/pkg/model"
)

const (
	extensionNamespace = "x-formgen"
	extensionPrefix    = extensionNamespace + "-"
)

var (
	// ErrNoSchemas is returned when a document has no component schemas.
	ErrNoSchemas = errors.New("openapi: document does not define component schemas")
	// ErrNotObject is returned for schemas without properties.
	ErrNotObject = errors.New("openapi: schema is not an object")
)

var (
	stringType = reflect.TypeOf("")
	intType    = reflect.TypeOf(int64(0))
	floatType  = reflect.TypeOf(float64(0))
	boolType   = reflect.TypeOf(false)
)

// Property is one renderable schema property.
type Property struct {
	Name        string
	Type        reflect.Type
	Annotations model.Annotations
}

// Model is a component schema exposed as a form model. Values hold the
// current field values keyed by property name.
type Model struct {
	Name       string
	Properties []Property
	Values     map[string]any
}

var (
	_ model.Describer = (*Model)(nil)
	_ model.Namer     = (*Model)(nil)
)

// LoadComponents parses an OpenAPI document and converts every component
// schema into a Model keyed by component name.
func LoadComponents(ctx context.Context, raw []byte) (map[string]*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, ErrNoSchemas
	}

	models := make(map[string]*Model, len(doc.Components.Schemas))
	for name, ref := range doc.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		m, err := FromSchema(name, ref.Value)
		if errors.Is(err, ErrNotObject) {
			continue
		}
		if err != nil {
			return nil, err
		}
		models[name] = m
	}
	if len(models) == 0 {
		return nil, ErrNoSchemas
	}
	return models, nil
}

// FromSchema converts an object schema into a Model. Properties are sorted by
// name; x-formgen order hints decide the rendered order.
func FromSchema(name string, schema *openapi3.Schema) (*Model, error) {
	if schema == nil || len(schema.Properties) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotObject, name)
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, key := range schema.Required {
		required[key] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		names = append(names, key)
	}
	sort.Strings(names)

	m := &Model{Name: name}
	for _, key := range names {
		ref := schema.Properties[key]
		if ref == nil || ref.Value == nil {
			continue
		}
		typ, ok := propertyType(ref.Value)
		if !ok {
			continue
		}
		_, isRequired := required[key]
		ann, err := annotations(ref.Value, isRequired)
		if err != nil {
			return nil, fmt.Errorf("openapi: schema %s property %s: %w", name, key, err)
		}
		m.Properties = append(m.Properties, Property{Name: key, Type: typ, Annotations: ann})
	}
	return m, nil
}

// WithValues returns a copy of m bound to values.
func (m *Model) WithValues(values map[string]any) *Model {
	clone := *m
	clone.Values = values
	return &clone
}

// FormName implements model.Namer.
func (m *Model) FormName() string {
	return m.Name
}

// FormFields implements model.Describer.
func (m *Model) FormFields() []model.FieldAccessor {
	fields := make([]model.FieldAccessor, 0, len(m.Properties))
	for _, prop := range m.Properties {
		fields = append(fields, propertyAccessor{prop: prop})
	}
	return fields
}

type propertyAccessor struct {
	prop Property
}

func (p propertyAccessor) Name() string                   { return p.prop.Name }
func (p propertyAccessor) Type() reflect.Type             { return p.prop.Type }
func (p propertyAccessor) Annotations() model.Annotations { return p.prop.Annotations }

func (p propertyAccessor) Value(instance any) (any, error) {
	m, ok := instance.(*Model)
	if !ok {
		return nil, fmt.Errorf("openapi: unexpected model type %T", instance)
	}
	if m.Values == nil {
		return nil, nil
	}
	return m.Values[p.prop.Name], nil
}

func propertyType(schema *openapi3.Schema) (reflect.Type, bool) {
	switch {
	case schema.Type == nil:
		return stringType, true
	case schema.Type.Is(openapi3.TypeString):
		return stringType, true
	case schema.Type.Is(openapi3.TypeInteger):
		return intType, true
	case schema.Type.Is(openapi3.TypeNumber):
		return floatType, true
	case schema.Type.Is(openapi3.TypeBoolean):
		return boolType, true
	}
	return nil, false
}

var formatDataTypes = map[string]model.DataType{
	"email":     model.DataTypeEmail,
	"password":  model.DataTypePassword,
	"date":      model.DataTypeDate,
	"date-time": model.DataTypeDateTime,
	"time":      model.DataTypeTime,
	"uri":       model.DataTypeURL,
	"url":       model.DataTypeURL,
	"binary":    model.DataTypeUpload,
}

func annotations(schema *openapi3.Schema, required bool) (model.Annotations, error) {
	display := &model.Display{
		Name:        strings.TrimSpace(schema.Title),
		Description: strings.TrimSpace(schema.Description),
		Disabled:    schema.ReadOnly,
	}
	ann := model.Annotations{
		Display:  display,
		Required: required,
		DataType: formatDataTypes[strings.ToLower(schema.Format)],
		Pattern:  schema.Pattern,
	}
	if schema.Pattern != "" {
		if _, err := regexp.Compile(schema.Pattern); err != nil {
			return model.Annotations{}, fmt.Errorf("%w %q: %v", model.ErrInvalidPattern, schema.Pattern, err)
		}
	}
	if schema.MinLength > 0 {
		ann.MinLength = int(schema.MinLength)
	}
	if schema.MaxLength != nil {
		ann.MaxLength = int(*schema.MaxLength)
	}
	if schema.Min != nil {
		ann.Min = strconv.FormatFloat(*schema.Min, 'f', -1, 64)
	}
	if schema.Max != nil {
		ann.Max = strconv.FormatFloat(*schema.Max, 'f', -1, 64)
	}
	if len(schema.Enum) > 0 {
		values := make([]string, 0, len(schema.Enum))
		for _, value := range schema.Enum {
			values = append(values, fmt.Sprint(value))
		}
		display.Tag = "select"
		display.Options = strings.Join(values, "|")
	}
	if ann.DataType == model.DataTypeUpload {
		ann.File = &model.FileConstraint{}
	}
	display.ColumnClass = gridColumnClass(schema.Extensions)
	if err := applyHints(display, &ann, hints(schema.Extensions)); err != nil {
		return model.Annotations{}, err
	}
	return ann, nil
}

// hints merges the x-formgen map with x-formgen-<key> extensions. Prefixed
// keys win.
func hints(extensions map[string]any) map[string]string {
	out := make(map[string]string)
	if nested, ok := extensions[extensionNamespace].(map[string]any); ok {
		for key, value := range nested {
			out[strings.ToLower(key)] = fmt.Sprint(value)
		}
	}
	for key, value := range extensions {
		if key == extensionPrefix+"grid" {
			continue
		}
		if strings.HasPrefix(key, extensionPrefix) {
			out[strings.ToLower(strings.TrimPrefix(key, extensionPrefix))] = fmt.Sprint(value)
		}
	}
	return out
}

func applyHints(display *model.Display, ann *model.Annotations, hints map[string]string) error {
	for key, value := range hints {
		value = strings.TrimSpace(value)
		switch key {
		case "label":
			display.Name = value
		case "group":
			display.Group = value
		case "order":
			order, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid order hint %q: %w", value, err)
			}
			display.Order = &order
		case "tag", "widget":
			display.Tag = strings.ToLower(value)
		case "type":
			display.Type = strings.ToLower(value)
		case "options":
			display.Options = value
		case "prompt", "placeholder":
			display.Prompt = value
		case "icon":
			display.Icon = value
		case "column":
			display.ColumnClass = value
		case "range":
			name, bounds, _ := strings.Cut(value, ":")
			low, high, _ := strings.Cut(bounds, "..")
			ann.Range = &model.Range{
				Enum: strings.TrimSpace(name),
				Min:  strings.TrimSpace(low),
				Max:  strings.TrimSpace(high),
			}
			if display.Tag == "" && display.Type == "" {
				display.Tag = "select"
			}
		case "accept":
			if ann.File == nil {
				ann.File = &model.FileConstraint{}
			}
			ann.File.Accept = value
		}
	}
	if display.Type == "radio" && display.Tag == "select" {
		display.Tag = ""
	}
	return nil
}
