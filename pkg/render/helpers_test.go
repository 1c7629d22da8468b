package render_test

import (
	"reflect"

	"github.com/goliatone/go-modelform/pkg/model"
)

type stubAccessor struct {
	name string
}

func (s stubAccessor) Name() string { return s.name }

func (stubAccessor) Type() reflect.Type { return reflect.TypeOf("") }

func (stubAccessor) Annotations() model.Annotations { return model.Annotations{} }

func (stubAccessor) Value(any) (any, error) { return nil, nil }
