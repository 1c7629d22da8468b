package model

import (
	"reflect"
	"strconv"

	pkgmodel "github.com/goliatone/go-modelform/pkg/model"
)

// validateInstance rejects nil models, including typed nil pointers.
func validateInstance(instance any) error {
	if instance == nil {
		return pkgmodel.StructuralError("", pkgmodel.ErrNilModel)
	}
	rv := reflect.ValueOf(instance)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return pkgmodel.StructuralError("", pkgmodel.ErrNilModel)
		}
		rv = rv.Elem()
	}
	return nil
}

func validateAccessors(fields []pkgmodel.FieldAccessor) error {
	for i, field := range fields {
		if field == nil || isNilAccessor(field) {
			return pkgmodel.StructuralError(positionName(i), pkgmodel.ErrMissingAccessor)
		}
	}
	return nil
}

func isNilAccessor(field pkgmodel.FieldAccessor) bool {
	rv := reflect.ValueOf(field)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func positionName(i int) string {
	return "#" + strconv.Itoa(i)
}
