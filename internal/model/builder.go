package model

import (
	"fmt"
	"reflect"
	"strings"

	pkgmodel "github.com/goliatone/go-modelform/pkg/model"
)

// Builder extracts field descriptors and display groups from model instances.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options. Zero-valued options fall
// back to the defaults.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.Localizer != nil {
		opts.Localizer = options.Localizer
	}
	if options.Enums != nil {
		opts.Enums = options.Enums
	}
	if options.Cache != nil {
		opts.Cache = options.Cache
	}
	if options.Overrider != nil {
		opts.Overrider = options.Overrider
	}
	return &Builder{opts: opts}
}

// Build resolves every eligible field of instance for the given culture. Base
// supplies the caller's defaults; a model implementing FormDefaulter overrides
// them and blank values fall back to DefaultDefaults.
func (b *Builder) Build(instance any, culture string, base pkgmodel.Defaults) (pkgmodel.Form, error) {
	if err := validateInstance(instance); err != nil {
		return pkgmodel.Form{}, err
	}

	accessors, err := b.accessors(instance)
	if err != nil {
		return pkgmodel.Form{}, err
	}
	if err := validateAccessors(accessors); err != nil {
		return pkgmodel.Form{}, err
	}

	form := pkgmodel.Form{
		Model:    ModelName(instance),
		Defaults: resolveDefaults(instance, base),
	}

	descriptors := make([]*pkgmodel.FieldDescriptor, 0, len(accessors))
	for index, accessor := range accessors {
		desc, err := b.describe(form, instance, accessor, index, culture)
		if err != nil {
			return pkgmodel.Form{}, err
		}
		if desc != nil {
			descriptors = append(descriptors, desc)
		}
	}

	form.Groups, form.Ungrouped = groupFields(descriptors, form.Defaults, func(key string) string {
		return b.Text(key, culture)
	})
	return form, nil
}

func (b *Builder) accessors(instance any) ([]pkgmodel.FieldAccessor, error) {
	if describer, ok := instance.(pkgmodel.Describer); ok {
		return describer.FormFields(), nil
	}
	fields, err := b.opts.Cache.Fields(reflect.TypeOf(instance))
	if err != nil {
		if _, ok := pkgmodel.KindOf(err); ok {
			return nil, err
		}
		return nil, pkgmodel.StructuralError("", err)
	}
	return fields, nil
}

func (b *Builder) describe(form pkgmodel.Form, instance any, accessor pkgmodel.FieldAccessor, index int, culture string) (*pkgmodel.FieldDescriptor, error) {
	name := accessor.Name()
	ann := accessor.Annotations()

	display := resolveDisplay(ann.Display, form.Defaults)
	if b.opts.Overrider != nil {
		display = b.opts.Overrider.OverrideDisplay(form.Model, name, display)
	}
	if display.Ignore {
		return nil, nil
	}

	desc, err := pkgmodel.NewFieldDescriptor(accessor, display, index)
	if err != nil {
		return nil, err
	}

	fieldCulture := strings.TrimSpace(display.Culture)
	if fieldCulture == "" {
		fieldCulture = culture
	}
	desc.Culture = fieldCulture

	desc.Element, err = pkgmodel.InferElement(display, ann, accessor.Type())
	if err != nil {
		return nil, pkgmodel.ConfigurationError(name, err)
	}
	if desc.Element.Kind == pkgmodel.Checkbox || desc.Element.Kind == pkgmodel.RadioGroup {
		if desc.Display.InputClass == form.Defaults.InputClass {
			desc.Display.InputClass = ""
		}
	}

	desc.Options, err = pkgmodel.ExtractOptions(display, ann, b.opts.Enums, func(key string) string {
		return b.Text(key, fieldCulture)
	})
	if err != nil {
		return nil, pkgmodel.ConfigurationError(name, err)
	}

	attrs, err := pkgmodel.ParseKeyValuePairs(display.Attributes)
	if err != nil {
		return nil, pkgmodel.ConfigurationError(name, err)
	}
	desc.Attributes = attrs.Items()

	labelKey := display.Name
	if labelKey == "" {
		labelKey = name
	}
	desc.Label = b.Text(labelKey, fieldCulture)
	desc.Display.Prompt = b.Phrase(display.Prompt, fieldCulture)
	desc.Display.Description = b.Phrase(display.Description, fieldCulture)

	desc.Value, err = accessor.Value(instance)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", name, err)
	}
	return desc, nil
}

// Text localizes an identifier-like key, falling back to the humanized key.
func (b *Builder) Text(key, culture string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if b.opts.Localizer != nil {
		if value := b.opts.Localizer.DisplayString(key, culture); value != "" {
			return value
		}
	}
	if strings.ContainsAny(key, " \t") {
		return key
	}
	return b.opts.Labeler(key)
}

// Phrase localizes free text without humanizing it when no entry exists.
func (b *Builder) Phrase(text, culture string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if b.opts.Localizer != nil {
		if value := b.opts.Localizer.DisplayString(text, culture); value != "" {
			return value
		}
	}
	return text
}

// Enums returns the enumeration registry used for Range expansion.
func (b *Builder) Enums() *pkgmodel.EnumRegistry {
	return b.opts.Enums
}

// ModelName returns the name used to look up overlays for instance.
func ModelName(instance any) string {
	if namer, ok := instance.(pkgmodel.Namer); ok {
		if name := strings.TrimSpace(namer.FormName()); name != "" {
			return name
		}
	}
	typ := pkgmodel.Indirect(reflect.TypeOf(instance))
	if typ == nil {
		return ""
	}
	return typ.Name()
}

func resolveDefaults(instance any, base pkgmodel.Defaults) pkgmodel.Defaults {
	base = fillDefaults(base, pkgmodel.DefaultDefaults())
	defaulter, ok := instance.(pkgmodel.FormDefaulter)
	if !ok {
		return base
	}
	return fillDefaults(defaulter.FormDefaults(), base)
}

func fillDefaults(declared, base pkgmodel.Defaults) pkgmodel.Defaults {
	if strings.TrimSpace(declared.GroupClass) == "" {
		declared.GroupClass = base.GroupClass
	}
	if strings.TrimSpace(declared.ColumnClass) == "" {
		declared.ColumnClass = base.ColumnClass
	}
	if strings.TrimSpace(declared.InputClass) == "" {
		declared.InputClass = base.InputClass
	}
	if declared.RenderMode == pkgmodel.RenderDefault {
		declared.RenderMode = base.RenderMode
	}
	return declared
}

func resolveDisplay(declared *pkgmodel.Display, defaults pkgmodel.Defaults) pkgmodel.Display {
	var display pkgmodel.Display
	if declared != nil {
		display = *declared
	}
	if strings.TrimSpace(display.ColumnClass) == "" {
		display.ColumnClass = defaults.ColumnClass
	}
	if strings.TrimSpace(display.InputClass) == "" {
		display.InputClass = defaults.InputClass
	}
	if display.RenderMode == pkgmodel.RenderDefault {
		display.RenderMode = defaults.RenderMode
	}
	return display
}
