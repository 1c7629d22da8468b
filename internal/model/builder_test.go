package model

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-modelform/pkg/model"
)

type profile struct {
	ID        int    `form:"-"`
	FirstName string `form:"name:First name;group:PersonalInfo;order:2;icon:fa fa-user" validate:"required,maxlen=50"`
	LastName  string `form:"group:PersonalInfo;order:1" validate:"required"`
	Email     string `form:"group:ContactDetails;order:0" validate:"required,email"`
	Phone     string `form:"group:ContactDetails;type:tel"`
	Level     int    `form:"tag:select;options:=Pick a level|1=Low|2=High"`
	Day       string `form:"tag:select" range:"weekday:Monday..Friday"`
	Color     string `form:"type:radio;options:Black|Blue|White"`
	Subscribe bool   `form:"description:Receive the newsletter"`
	Notes     string `datatype:"multiline"`
	Born      time.Time
	Secret    string `form:"ignore"`
	internal  string
}

func TestBuilder_BuildGroupsAndOrders(t *testing.T) {
	b := New(Options{})
	form, err := b.Build(&profile{FirstName: "Ada", Level: 2}, "en", pkgmodel.DefaultDefaults())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if form.Model != "profile" {
		t.Fatalf("unexpected model name %q", form.Model)
	}

	var groups []string
	for _, group := range form.Groups {
		var names []string
		for _, field := range group.Fields {
			names = append(names, field.Name())
		}
		groups = append(groups, group.Key+":"+join(names))
	}
	want := []string{"ContactDetails:Email,Phone", "PersonalInfo:LastName,FirstName"}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Fatalf("group layout mismatch (-want +got):\n%s", diff)
	}
	if form.Groups[1].Name != "Personal Info" || !form.Groups[1].ShowName || form.Groups[1].CSSClass != "row" {
		t.Fatalf("unexpected group metadata %+v", form.Groups[1])
	}

	var ungrouped []string
	for _, field := range form.Ungrouped {
		ungrouped = append(ungrouped, field.Name())
	}
	if diff := cmp.Diff([]string{"Level", "Day", "Color", "Subscribe", "Notes", "Born"}, ungrouped); diff != "" {
		t.Fatalf("ungrouped mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_DescriptorDetails(t *testing.T) {
	b := New(Options{})
	form, err := b.Build(profile{FirstName: "Ada", Level: 2, Subscribe: true}, "", pkgmodel.Defaults{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	fields := byName(form.Fields())

	first := fields["FirstName"]
	if first.Label != "First name" || first.Value != "Ada" || !first.Required() {
		t.Fatalf("unexpected FirstName descriptor %+v", first)
	}
	if first.Display.InputClass != "form-control" || first.Display.ColumnClass != "col" {
		t.Fatalf("defaults not applied: %+v", first.Display)
	}

	level := fields["Level"]
	if level.Kind() != pkgmodel.Select || level.Element.InputType != "number" {
		t.Fatalf("unexpected Level element %+v", level.Element)
	}
	wantOptions := []pkgmodel.SelectOption{
		{ID: "", Label: "Pick a level", IsPrompt: true},
		{ID: "1", Label: "Low"},
		{ID: "2", Label: "High"},
	}
	if diff := cmp.Diff(wantOptions, level.Options); diff != "" {
		t.Fatalf("Level options mismatch (-want +got):\n%s", diff)
	}

	if got := len(fields["Day"].Options); got != 5 {
		t.Fatalf("expected 5 weekday options, got %d", got)
	}

	color := fields["Color"]
	if color.Kind() != pkgmodel.RadioGroup || color.Display.InputClass != "" {
		t.Fatalf("radio should drop default input class: %+v", color.Display)
	}

	subscribe := fields["Subscribe"]
	if subscribe.Kind() != pkgmodel.Checkbox || subscribe.Value != true {
		t.Fatalf("unexpected Subscribe descriptor %+v", subscribe)
	}
	if subscribe.Display.Description != "Receive the newsletter" {
		t.Fatalf("description should pass through untouched, got %q", subscribe.Display.Description)
	}

	if fields["Notes"].Kind() != pkgmodel.TextArea {
		t.Fatalf("expected textarea for multiline data type")
	}
	if fields["Born"].Element.InputType != "date" {
		t.Fatalf("expected date input for time.Time")
	}
	for _, name := range []string{"ID", "Secret", "internal"} {
		if _, ok := fields[name]; ok {
			t.Fatalf("field %s should be excluded", name)
		}
	}
}

func TestBuilder_LocalizerAndDefaults(t *testing.T) {
	loc := pkgmodel.LocalizerFunc(func(key, culture string) string {
		if culture == "fr" && key == "LastName" {
			return "Nom"
		}
		return ""
	})
	b := New(Options{Localizer: loc})
	form, err := b.Build(&defaultedModel{}, "fr", pkgmodel.Defaults{InputClass: "input"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	field := form.Fields()[0]
	if field.Label != "Nom" {
		t.Fatalf("expected localized label, got %q", field.Label)
	}
	if field.Display.InputClass != "input" || field.Display.ColumnClass != "col-6" {
		t.Fatalf("unexpected defaults %+v", field.Display)
	}
	if form.Defaults.ShowGroupName {
		t.Fatalf("model defaults should disable group names")
	}
}

type defaultedModel struct {
	LastName string
}

func (defaultedModel) FormDefaults() pkgmodel.Defaults {
	return pkgmodel.Defaults{ColumnClass: "col-6"}
}

func TestBuilder_Errors(t *testing.T) {
	b := New(Options{})

	var nilProfile *profile
	if _, err := b.Build(nilProfile, "", pkgmodel.Defaults{}); !errors.Is(err, pkgmodel.ErrNilModel) {
		t.Fatalf("expected ErrNilModel, got %v", err)
	}

	type badOptions struct {
		Level string `form:"tag:select;options:A=B=C"`
	}
	_, err := b.Build(badOptions{}, "", pkgmodel.Defaults{})
	if !errors.Is(err, pkgmodel.ErrMalformedOptions) {
		t.Fatalf("expected ErrMalformedOptions, got %v", err)
	}
	if kind, _ := pkgmodel.KindOf(err); kind != pkgmodel.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", kind)
	}

	type badPattern struct {
		Code string `validate:"pattern=[0-9"`
	}
	_, err = b.Build(badPattern{}, "", pkgmodel.Defaults{})
	if !errors.Is(err, pkgmodel.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	if kind, _ := pkgmodel.KindOf(err); kind != pkgmodel.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", kind)
	}

	type badNumber struct {
		Code string `form:"type:number"`
	}
	if _, err := b.Build(badNumber{}, "", pkgmodel.Defaults{}); !errors.Is(err, pkgmodel.ErrUnsupportedNumber) {
		t.Fatalf("expected ErrUnsupportedNumber, got %v", err)
	}

	if _, err := b.Build(describedModel{fields: []pkgmodel.FieldAccessor{nil}}, "", pkgmodel.Defaults{}); !errors.Is(err, pkgmodel.ErrMissingAccessor) {
		t.Fatalf("expected ErrMissingAccessor, got %v", err)
	}

	if _, err := b.Build(42, "", pkgmodel.Defaults{}); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}

type describedModel struct {
	fields []pkgmodel.FieldAccessor
}

func (d describedModel) FormFields() []pkgmodel.FieldAccessor { return d.fields }
func (describedModel) FormName() string                        { return "Described" }

func TestBuilder_DescriberTable(t *testing.T) {
	model := describedModel{fields: []pkgmodel.FieldAccessor{
		Field{
			FieldName: "Title",
			FieldType: reflect.TypeOf(""),
			Meta:      pkgmodel.Annotations{Required: true},
			Getter:    func(any) (any, error) { return "Hello", nil },
		},
	}}
	form, err := New(Options{}).Build(model, "", pkgmodel.Defaults{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.Model != "Described" {
		t.Fatalf("expected Namer to win, got %q", form.Model)
	}
	fields := form.Fields()
	if len(fields) != 1 || fields[0].Value != "Hello" || !fields[0].Required() {
		t.Fatalf("unexpected descriptors %+v", fields)
	}
}

type overrider struct{}

func (overrider) OverrideDisplay(model, field string, display pkgmodel.Display) pkgmodel.Display {
	if model == "profile" && field == "Phone" {
		display.Ignore = true
	}
	return display
}

func TestBuilder_Overrider(t *testing.T) {
	form, err := New(Options{Overrider: overrider{}}).Build(&profile{}, "", pkgmodel.Defaults{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := byName(form.Fields())["Phone"]; ok {
		t.Fatalf("override should drop Phone")
	}
}

func TestCache_ReflectsOncePerType(t *testing.T) {
	cache := NewCache()
	b := New(Options{Cache: cache})
	for i := 0; i < 3; i++ {
		if _, err := b.Build(&profile{}, "", pkgmodel.Defaults{}); err != nil {
			t.Fatalf("build: %v", err)
		}
	}
	if _, err := b.Build(defaultedModel{}, "", pkgmodel.Defaults{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if cache.Len() != 2 {
		t.Fatalf("expected 2 cached types, got %d", cache.Len())
	}
}

func byName(fields []*pkgmodel.FieldDescriptor) map[string]*pkgmodel.FieldDescriptor {
	out := make(map[string]*pkgmodel.FieldDescriptor, len(fields))
	for _, field := range fields {
		out[field.Name()] = field
	}
	return out
}

func join(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ","
		}
		out += v
	}
	return out
}
