package model_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-modelform/pkg/model"
)

type countingAccessor struct {
	name  string
	calls int
	ann   model.Annotations
}

func (a *countingAccessor) Name() string       { return a.name }
func (a *countingAccessor) Type() reflect.Type { return reflect.TypeOf("") }
func (a *countingAccessor) Annotations() model.Annotations {
	a.calls++
	return a.ann
}
func (a *countingAccessor) Value(any) (any, error) { return nil, nil }

func TestFieldDescriptor_RequiredIsCached(t *testing.T) {
	acc := &countingAccessor{name: "Email", ann: model.Annotations{Required: true}}
	desc, err := model.NewFieldDescriptor(acc, model.Display{}, 0)
	if err != nil {
		t.Fatalf("new descriptor: %v", err)
	}
	for i := 0; i < 3; i++ {
		if !desc.Required() {
			t.Fatalf("expected required")
		}
	}
	if acc.calls != 1 {
		t.Fatalf("expected annotations read once, got %d", acc.calls)
	}
	if desc.Name() != "Email" {
		t.Fatalf("unexpected name %q", desc.Name())
	}
}

func TestNewFieldDescriptor_MissingAccessor(t *testing.T) {
	_, err := model.NewFieldDescriptor(nil, model.Display{Name: "Ghost"}, 0)
	if !errors.Is(err, model.ErrMissingAccessor) {
		t.Fatalf("expected ErrMissingAccessor, got %v", err)
	}
	kind, ok := model.KindOf(err)
	if !ok || kind != model.KindStructural {
		t.Fatalf("expected structural error, got %v %v", kind, ok)
	}
}

func TestError_Message(t *testing.T) {
	err := model.ConfigurationError("Level", model.ErrMalformedOptions)
	want := `model: configuration error on field "Level": model: malformed key/value pairs`
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if model.ConfigurationError("x", nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestParseRenderMode(t *testing.T) {
	for raw, want := range map[string]model.RenderMode{
		"":        model.RenderDefault,
		"custom":  model.RenderCustom,
		"Enabled": model.RenderCustom,
		"plain":   model.RenderPlain,
	} {
		got, ok := model.ParseRenderMode(raw)
		if !ok || got != want {
			t.Fatalf("ParseRenderMode(%q) = %v %v", raw, got, ok)
		}
	}
	if _, ok := model.ParseRenderMode("fancy"); ok {
		t.Fatalf("expected unknown mode to fail")
	}
}
