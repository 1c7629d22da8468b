package model

import (
	"errors"
	"fmt"
	"reflect"

	pkgmodel "github.com/goliatone/go-modelform/pkg/model"
)

// ErrInstanceType is returned when an accessor reads an instance of a
// different struct type.
var ErrInstanceType = errors.New("model: instance type mismatch")

// structField reads one exported field of a struct through reflection.
type structField struct {
	owner reflect.Type
	name  string
	index []int
	typ   reflect.Type
	ann   pkgmodel.Annotations
}

var _ pkgmodel.FieldAccessor = (*structField)(nil)

func (f *structField) Name() string                      { return f.name }
func (f *structField) Type() reflect.Type                { return f.typ }
func (f *structField) Annotations() pkgmodel.Annotations { return f.ann }

// Value returns the field value of instance. A nil pointer along an embedded
// path yields a nil value rather than an error.
func (f *structField) Value(instance any) (any, error) {
	rv := reflect.ValueOf(instance)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, pkgmodel.StructuralError(f.name, pkgmodel.ErrNilModel)
		}
		rv = rv.Elem()
	}
	if rv.Type() != f.owner {
		return nil, fmt.Errorf("%w: %s reads %s, got %s", ErrInstanceType, f.name, f.owner, rv.Type())
	}
	field, err := rv.FieldByIndexErr(f.index)
	if err != nil {
		return nil, nil
	}
	if field.Kind() == reflect.Pointer && field.IsNil() {
		return nil, nil
	}
	return field.Interface(), nil
}

// reflectFields builds accessors for every exported field of typ, flattening
// embedded structs.
func reflectFields(typ reflect.Type) ([]pkgmodel.FieldAccessor, error) {
	typ = pkgmodel.Indirect(typ)
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model: %v is not a struct type", typ)
	}

	var fields []pkgmodel.FieldAccessor
	for _, sf := range reflect.VisibleFields(typ) {
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		ann, err := parseAnnotations(sf)
		if err != nil {
			return nil, pkgmodel.ConfigurationError(sf.Name, err)
		}
		fields = append(fields, &structField{
			owner: typ,
			name:  sf.Name,
			index: sf.Index,
			typ:   sf.Type,
			ann:   ann,
		})
	}
	return fields, nil
}

// Field is an explicitly registered accessor for models that do not rely on
// struct reflection.
type Field struct {
	FieldName string
	FieldType reflect.Type
	Meta      pkgmodel.Annotations
	Getter    func(instance any) (any, error)
}

var _ pkgmodel.FieldAccessor = Field{}

func (f Field) Name() string                      { return f.FieldName }
func (f Field) Type() reflect.Type                { return f.FieldType }
func (f Field) Annotations() pkgmodel.Annotations { return f.Meta }

func (f Field) Value(instance any) (any, error) {
	if f.Getter == nil {
		return nil, nil
	}
	return f.Getter(instance)
}
