package model

import (
	"reflect"
	"sync"
)

// FieldDescriptor is the resolved rendering metadata for one model field. It
// is created per render call and must not be shared across calls.
type FieldDescriptor struct {
	Accessor FieldAccessor
	// Display holds the resolved metadata; Prompt and Description are
	// already localized.
	Display Display
	// Label is the localized display name.
	Label   string
	Element Element
	Options []SelectOption
	// Attributes are the parsed extra attributes declared on the field.
	Attributes []Pair
	Value      any
	Culture    string
	// Index is the declaration position within the model.
	Index int

	requiredOnce sync.Once
	required     bool
}

// NewFieldDescriptor binds an accessor to its resolved display metadata.
func NewFieldDescriptor(accessor FieldAccessor, display Display, index int) (*FieldDescriptor, error) {
	if accessor == nil {
		return nil, StructuralError(display.Name, ErrMissingAccessor)
	}
	return &FieldDescriptor{Accessor: accessor, Display: display, Index: index}, nil
}

// Name returns the raw field name.
func (d *FieldDescriptor) Name() string {
	if d == nil || d.Accessor == nil {
		return ""
	}
	return d.Accessor.Name()
}

// Type returns the declared field type.
func (d *FieldDescriptor) Type() reflect.Type {
	if d == nil || d.Accessor == nil {
		return nil
	}
	return d.Accessor.Type()
}

// Annotations returns the accessor annotations.
func (d *FieldDescriptor) Annotations() Annotations {
	if d == nil || d.Accessor == nil {
		return Annotations{}
	}
	return d.Accessor.Annotations()
}

// Required reports whether the field carries a required constraint. The
// value is computed on first access and cached.
func (d *FieldDescriptor) Required() bool {
	if d == nil {
		return false
	}
	d.requiredOnce.Do(func() {
		d.required = d.Annotations().Required
	})
	return d.required
}

// Kind returns the resolved control kind.
func (d *FieldDescriptor) Kind() ControlKind {
	if d == nil {
		return PlainInput
	}
	return d.Element.Kind
}
