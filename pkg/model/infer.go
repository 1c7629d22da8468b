package model

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/goliatone/go-modelform/pkg/tag"
)

// ControlKind is the closed set of control families the engine renders.
type ControlKind int

const (
	PlainInput ControlKind = iota
	Checkbox
	RadioGroup
	Select
	File
	TextArea
	Hidden
)

var controlKindNames = [...]string{
	PlainInput: "input",
	Checkbox:   "checkbox",
	RadioGroup: "radio",
	Select:     "select",
	File:       "file",
	TextArea:   "textarea",
	Hidden:     "hidden",
}

func (k ControlKind) String() string {
	if int(k) < 0 || int(k) >= len(controlKindNames) {
		return fmt.Sprintf("ControlKind(%d)", int(k))
	}
	return controlKindNames[k]
}

// ControlKinds lists every kind in declaration order.
func ControlKinds() []ControlKind {
	return []ControlKind{PlainInput, Checkbox, RadioGroup, Select, File, TextArea, Hidden}
}

// Element is the outcome of control inference for one field.
type Element struct {
	Tag       string
	InputType string
	Kind      ControlKind
}

var timeType = reflect.TypeOf(time.Time{})

// dataTypeInputs maps every known DataType to an input type. Classifications
// without an HTML equivalent map to "".
var dataTypeInputs = map[DataType]string{
	DataTypeNone:      "",
	DataTypeText:      "text",
	DataTypeMultiline: "",
	DataTypePassword:  "password",
	DataTypeEmail:     "email",
	DataTypePhone:     "tel",
	DataTypeURL:       "url",
	DataTypeImageURL:  "url",
	DataTypeDate:      "date",
	DataTypeDateTime:  "datetime-local",
	DataTypeTime:      "time",
	DataTypeDuration:  "",
	DataTypeCurrency:  "number",
	DataTypeUpload:    "file",
	DataTypeHTML:      "",
	DataTypeCustom:    "",
}

// InputTypeFor returns the input type mapped to dt. Unknown values map to "".
func InputTypeFor(dt DataType) string {
	return dataTypeInputs[DataType(strings.ToLower(string(dt)))]
}

// InferElement resolves the tag name, input type and control kind for a
// field from its hints, annotations and native type.
func InferElement(display Display, ann Annotations, typ reflect.Type) (Element, error) {
	el := Element{Tag: strings.TrimSpace(display.Tag)}
	if el.Tag == "" {
		el.Tag = "input"
		if strings.EqualFold(string(ann.DataType), string(DataTypeMultiline)) {
			el.Tag = "textarea"
		}
	}
	if !tag.ValidName(el.Tag) {
		return Element{}, fmt.Errorf("%w: %q", ErrInvalidElement, el.Tag)
	}

	el.InputType = strings.TrimSpace(display.Type)
	if el.InputType == "" {
		switch {
		case ann.DataType != DataTypeNone:
			el.InputType = InputTypeFor(ann.DataType)
		case ann.Email:
			el.InputType = "email"
		default:
			el.InputType = nativeInputType(typ)
		}
		if el.InputType == "" && IsDate(typ) {
			el.InputType = "date"
		}
	}

	if strings.EqualFold(el.InputType, "number") && !IsNumeric(typ) {
		return Element{}, fmt.Errorf("%w: %s", ErrUnsupportedNumber, typeName(typ))
	}

	el.Kind = resolveKind(el, typ)
	return el, nil
}

func resolveKind(el Element, typ reflect.Type) ControlKind {
	switch {
	case strings.EqualFold(el.InputType, "radio"):
		return RadioGroup
	case SupportsCheckbox(typ, el.InputType):
		return Checkbox
	case strings.EqualFold(el.InputType, "file"):
		return File
	case strings.EqualFold(el.Tag, "select"):
		return Select
	case strings.EqualFold(el.Tag, "textarea"):
		return TextArea
	case strings.EqualFold(el.InputType, "hidden"):
		return Hidden
	default:
		return PlainInput
	}
}

func nativeInputType(typ reflect.Type) string {
	switch {
	case IsBool(typ):
		return "checkbox"
	case IsNumeric(typ):
		return "number"
	default:
		return ""
	}
}

// Indirect unwraps pointer types.
func Indirect(typ reflect.Type) reflect.Type {
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}

// IsBool reports whether typ is a (pointer to) bool.
func IsBool(typ reflect.Type) bool {
	typ = Indirect(typ)
	return typ != nil && typ.Kind() == reflect.Bool
}

// IsNumeric reports whether typ is one of the numeric kinds number inputs can
// represent.
func IsNumeric(typ reflect.Type) bool {
	typ = Indirect(typ)
	if typ == nil {
		return false
	}
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// IsDate reports whether typ is a (pointer to) time.Time.
func IsDate(typ reflect.Type) bool {
	typ = Indirect(typ)
	return typ != nil && typ == timeType
}

// SupportsCheckbox reports whether a field of typ with the given input type
// renders as a single checkbox.
func SupportsCheckbox(typ reflect.Type, inputType string) bool {
	return IsBool(typ) && (inputType == "" || strings.EqualFold(inputType, "checkbox"))
}

// NeedsOptions reports whether option extraction applies to display.
func NeedsOptions(display Display) bool {
	return strings.EqualFold(strings.TrimSpace(display.Tag), "select") ||
		strings.EqualFold(strings.TrimSpace(display.Type), "radio")
}

func typeName(typ reflect.Type) string {
	if typ == nil {
		return "<nil>"
	}
	return typ.String()
}
