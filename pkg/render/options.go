package render

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	internalmodel "github.com/goliatone/go-modelform/internal/model"
	"github.com/goliatone/go-modelform/pkg/model"
	"github.com/goliatone/go-modelform/pkg/tag"
)

const (
	// DefaultBindingAttribute is the attribute used when a Binding does not
	// name one.
	DefaultBindingAttribute = "ng-model"
	defaultGroupWrapperTag  = "fieldset"
	defaultGroupHeaderTag   = "legend"
)

// Binding injects a client-side data binding attribute on every control.
type Binding struct {
	// Attribute defaults to DefaultBindingAttribute.
	Attribute string
	// Prefix is prepended to the field name, joined with ".".
	Prefix string
}

// AttributeName returns the configured attribute or the default.
func (b *Binding) AttributeName() string {
	if b == nil || strings.TrimSpace(b.Attribute) == "" {
		return DefaultBindingAttribute
	}
	return strings.TrimSpace(b.Attribute)
}

// Expression returns the binding value for a raw field name, camel-cased
// when camel is set.
func (b *Binding) Expression(field string, camel bool) string {
	name := field
	if camel {
		name = internalmodel.ToCamelCase(field)
	}
	if b == nil {
		return name
	}
	prefix := strings.TrimSpace(b.Prefix)
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// Options control how the orchestrator turns descriptors into markup. They
// are read-only for the duration of a render call.
type Options struct {
	GenerateID   bool
	GenerateName bool
	CamelCaseID  bool

	// DefaultCSSClass is the class applied to inputs, selects and textareas.
	DefaultCSSClass string
	// RowCSSClass is applied to every display group body.
	RowCSSClass string
	// ColumnCSSClass wraps each field inside a display group.
	ColumnCSSClass string

	GroupWrapperTag string
	GroupHeaderTag  string
	ShowGroupName   bool

	// RenderMode selects plain or custom markup for check, radio and file
	// controls when the model does not decide.
	RenderMode model.RenderMode
	// LabelMarkup allows sanitized inline markup in labels instead of
	// escaping them.
	LabelMarkup bool

	Culture string
	Binding *Binding

	// OptionsGetter replaces the declared option list when it returns true.
	OptionsGetter func(*model.FieldDescriptor) ([]model.SelectOption, bool)
	// DisabledGetter decides whether a statically disabled field renders
	// disabled. Nil means always.
	DisabledGetter func(*model.FieldDescriptor) bool
	// AdditionalAttributesGetter supplies extra attributes that win over the
	// generated ones. Supplying it suppresses Binding.
	AdditionalAttributesGetter func(*model.FieldDescriptor) map[string]any
	// IDGenerator returns the unique token appended to element ids.
	IDGenerator func() string
}

// Default returns the options used when a caller passes nil.
func Default() *Options {
	return &Options{
		GenerateID:      true,
		GenerateName:    true,
		CamelCaseID:     true,
		DefaultCSSClass: "form-control",
		RowCSSClass:     "row",
		ColumnCSSClass:  "col",
		GroupWrapperTag: defaultGroupWrapperTag,
		GroupHeaderTag:  defaultGroupHeaderTag,
		ShowGroupName:   true,
		IDGenerator:     RandomToken,
	}
}

// RandomToken returns a short random hex token.
func RandomToken() string {
	return fmt.Sprintf("%x", uuid.New().ID())
}

// Defaults converts the CSS settings into model defaults. Blank values are
// filled by the model builder.
func (o *Options) Defaults() model.Defaults {
	if o == nil {
		return model.DefaultDefaults()
	}
	return model.Defaults{
		GroupClass:    o.RowCSSClass,
		ColumnClass:   o.ColumnCSSClass,
		InputClass:    o.DefaultCSSClass,
		ShowGroupName: o.ShowGroupName,
		RenderMode:    o.RenderMode,
	}
}

// WrapperTag returns the group wrapper element name.
func (o *Options) WrapperTag() string {
	if o == nil || !tag.ValidName(o.GroupWrapperTag) {
		return defaultGroupWrapperTag
	}
	return o.GroupWrapperTag
}

// HeaderTag returns the group header element name.
func (o *Options) HeaderTag() string {
	if o == nil || !tag.ValidName(o.GroupHeaderTag) {
		return defaultGroupHeaderTag
	}
	return o.GroupHeaderTag
}

// FieldContext is the per-field state threaded through control renderers.
type FieldContext struct {
	Descriptor *model.FieldDescriptor
	// ID is the generated element id, empty when ids are disabled.
	ID        string
	Culture   string
	Formatter tag.Formatter
}

// NewFieldContext resolves the id, culture and formatter for desc.
func (o *Options) NewFieldContext(desc *model.FieldDescriptor) FieldContext {
	culture := desc.Culture
	if culture == "" && o != nil {
		culture = o.Culture
	}
	ctx := FieldContext{
		Descriptor: desc,
		Culture:    culture,
		Formatter:  NewCultureFormatter(culture, desc.Display.Format, invariantInput(desc.Element)),
	}
	if o != nil && o.GenerateID {
		ctx.ID = o.elementID(desc.Name())
	}
	return ctx
}

func (o *Options) elementID(name string) string {
	if o.CamelCaseID {
		name = internalmodel.ToCamelCase(name)
	}
	generate := o.IDGenerator
	if generate == nil {
		generate = RandomToken
	}
	token := strings.TrimSpace(generate())
	if token == "" {
		return name
	}
	return name + "_" + token
}

// Disabled reports whether desc renders disabled.
func (o *Options) Disabled(desc *model.FieldDescriptor) bool {
	if !desc.Display.Disabled {
		return false
	}
	if o == nil || o.DisabledGetter == nil {
		return true
	}
	return o.DisabledGetter(desc)
}

// SelectOptions returns the option list for desc, honoring OptionsGetter.
func (o *Options) SelectOptions(desc *model.FieldDescriptor) []model.SelectOption {
	if o != nil && o.OptionsGetter != nil {
		if options, ok := o.OptionsGetter(desc); ok {
			return options
		}
	}
	return desc.Options
}

// ExtraAttributes returns the caller-supplied attributes for desc, or the
// binding attribute when no getter is configured.
func (o *Options) ExtraAttributes(desc *model.FieldDescriptor) []tag.Attr {
	if o == nil {
		return nil
	}
	if o.AdditionalAttributesGetter != nil {
		return tag.AttrsFromMap(o.AdditionalAttributesGetter(desc))
	}
	if o.Binding != nil {
		return []tag.Attr{{Key: o.Binding.AttributeName(), Value: o.Binding.Expression(desc.Name(), o.CamelCaseID)}}
	}
	return nil
}

func invariantInput(el model.Element) bool {
	switch el.InputType {
	case "number", "range", "hidden":
		return true
	}
	return false
}
