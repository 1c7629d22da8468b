package model

import (
	"reflect"
	"strings"
)

// RenderMode selects between the plain and the enhanced (custom styled)
// markup variants for checkbox, radio and file controls.
type RenderMode int

const (
	// RenderDefault defers to the model-level default.
	RenderDefault RenderMode = iota
	// RenderPlain renders minimal markup.
	RenderPlain
	// RenderCustom renders the enhanced wrappers.
	RenderCustom
)

// ParseRenderMode maps "custom"/"enabled", "plain"/"disabled" and
// "default" onto a RenderMode.
func ParseRenderMode(raw string) (RenderMode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "default":
		return RenderDefault, true
	case "custom", "enabled", "enhanced":
		return RenderCustom, true
	case "plain", "disabled":
		return RenderPlain, true
	}
	return RenderDefault, false
}

func (m RenderMode) String() string {
	switch m {
	case RenderPlain:
		return "plain"
	case RenderCustom:
		return "custom"
	default:
		return "default"
	}
}

// Display carries the declarative display metadata attached to a field.
type Display struct {
	Name        string
	ShortName   string
	Description string
	Prompt      string
	Group       string
	Order       *int
	Tag         string
	Type        string
	Icon        string
	Format      string
	Culture     string
	ColumnClass string
	InputClass  string
	Options     string
	Attributes  string
	RenderMode  RenderMode
	Disabled    bool
	Ignore      bool
}

// OrderValue returns the declared order or fallback when unset.
func (d Display) OrderValue(fallback int) int {
	if d.Order == nil {
		return fallback
	}
	return *d.Order
}

// DataType is a structured classification of a field's content.
type DataType string

const (
	DataTypeNone      DataType = ""
	DataTypeText      DataType = "text"
	DataTypeMultiline DataType = "multiline"
	DataTypePassword  DataType = "password"
	DataTypeEmail     DataType = "email"
	DataTypePhone     DataType = "phone"
	DataTypeURL       DataType = "url"
	DataTypeImageURL  DataType = "imageurl"
	DataTypeDate      DataType = "date"
	DataTypeDateTime  DataType = "datetime"
	DataTypeTime      DataType = "time"
	DataTypeDuration  DataType = "duration"
	DataTypeCurrency  DataType = "currency"
	DataTypeUpload    DataType = "upload"
	DataTypeHTML      DataType = "html"
	DataTypeCustom    DataType = "custom"
)

// Range bounds an enumeration-typed field. Empty bounds are open.
type Range struct {
	Enum string
	Min  string
	Max  string
}

// FileConstraint describes accepted upload types.
type FileConstraint struct {
	Accept   string
	Multiple bool
}

// Annotations groups every piece of metadata a FieldAccessor can surface.
type Annotations struct {
	Display   *Display
	Required  bool
	DataType  DataType
	Email     bool
	Range     *Range
	MaxLength int
	MinLength int
	Min       string
	Max       string
	Pattern   string
	File      *FileConstraint
}

// FieldAccessor is the capability used to read one field of a model instance.
// Reflection-backed accessors live in internal/model; explicit tables can be
// supplied through Describer.
type FieldAccessor interface {
	Name() string
	Type() reflect.Type
	Annotations() Annotations
	Value(instance any) (any, error)
}

// Describer is implemented by models that provide their own accessor tables
// instead of relying on reflection.
type Describer interface {
	FormFields() []FieldAccessor
}

// Defaults holds model-wide display defaults.
type Defaults struct {
	GroupClass    string
	ColumnClass   string
	InputClass    string
	ShowGroupName bool
	RenderMode    RenderMode
}

// DefaultDefaults returns the defaults applied when a model does not declare
// its own.
func DefaultDefaults() Defaults {
	return Defaults{
		GroupClass:    "row",
		ColumnClass:   "col",
		InputClass:    "form-control",
		ShowGroupName: true,
		RenderMode:    RenderCustom,
	}
}

// FormDefaulter is implemented by models that override Defaults.
type FormDefaulter interface {
	FormDefaults() Defaults
}

// SelectOption is one entry of a select or radio option set.
type SelectOption struct {
	ID       string
	Label    string
	IsPrompt bool
}

// SplitPrompt returns the first prompt option and the remaining body. The
// input slice is not modified.
func SplitPrompt(options []SelectOption) (*SelectOption, []SelectOption) {
	var prompt *SelectOption
	body := make([]SelectOption, 0, len(options))
	for i := range options {
		if options[i].IsPrompt && prompt == nil {
			opt := options[i]
			prompt = &opt
			continue
		}
		body = append(body, options[i])
	}
	return prompt, body
}

// DisplayGroup clusters fields rendered under one heading.
type DisplayGroup struct {
	Key      string
	Name     string
	Fields   []*FieldDescriptor
	ShowName bool
	CSSClass string
	Order    int
}

// Form is the extracted shape of a model: grouped fields followed by fields
// without a group key.
type Form struct {
	Model     string
	Groups    []DisplayGroup
	Ungrouped []*FieldDescriptor
	Defaults  Defaults
}

// Fields returns every descriptor in render order.
func (f Form) Fields() []*FieldDescriptor {
	var out []*FieldDescriptor
	for _, group := range f.Groups {
		out = append(out, group.Fields...)
	}
	return append(out, f.Ungrouped...)
}

// DisplayOverrider adjusts resolved display metadata before inference. Model
// is the model name, field the raw field name.
type DisplayOverrider interface {
	OverrideDisplay(model, field string, display Display) Display
}

// Namer lets a model report the name used for overlays and logging.
type Namer interface {
	FormName() string
}
