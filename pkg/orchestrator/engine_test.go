package orchestrator_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelform/internal/logfields"
	"github.com/goliatone/go-modelform/pkg/model"
	"github.com/goliatone/go-modelform/pkg/orchestrator"
	"github.com/goliatone/go-modelform/pkg/render"
	"github.com/goliatone/go-modelform/pkg/tag"
)

func fixedOptions() *render.Options {
	opts := render.Default()
	opts.IDGenerator = func() string { return "x" }
	return opts
}

func renderString(t *testing.T, engine *orchestrator.Engine, instance any, opts *render.Options) string {
	t.Helper()
	root, err := engine.Render(instance, tag.New("div"), opts)
	require.NoError(t, err)
	return tag.InnerHTML(root)
}

type contact struct {
	Email string `form:"prompt:you@example.com" validate:"required,email"`
}

func TestRender_EmailInput(t *testing.T) {
	got := renderString(t, orchestrator.New(), &contact{}, fixedOptions())
	want := `<div class="form-group"><label class="control-label" for="email_x">Email</label>` +
		`<div class="input-group"><input type="email" class="form-control" id="email_x" ` +
		`placeholder="you@example.com" name="Email" required="required" /></div></div>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

type newsletter struct {
	Subscribe bool
}

func TestRender_CheckboxChecked(t *testing.T) {
	got := renderString(t, orchestrator.New(), newsletter{Subscribe: true}, fixedOptions())
	want := `<div class="form-group"><div class="form-check"><label class="form-check-label">` +
		`<input type="checkbox" class="form-check-input" id="subscribe_x" name="Subscribe" checked="checked" value="true" />` +
		`Subscribe</label></div></div>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}

	plain := fixedOptions()
	plain.RenderMode = model.RenderPlain
	got = renderString(t, orchestrator.New(), newsletter{}, plain)
	want = `<div class="form-group"><label>&nbsp;Subscribe` +
		`<input type="checkbox" id="subscribe_x" name="Subscribe" value="true" /></label></div>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("plain markup mismatch (-want +got):\n%s", diff)
	}
}

type ticket struct {
	Level int `form:"tag:select;options:1=Low|2=High"`
}

func TestRender_SelectMarksCurrentValue(t *testing.T) {
	got := renderString(t, orchestrator.New(), ticket{Level: 2}, fixedOptions())
	want := `<div class="form-group"><label class="control-label" for="level_x">Level</label>` +
		`<div class="input-group"><select class="form-control" id="level_x" name="Level">` +
		`<option value="0"></option><option value="1">Low</option><option value="2" selected="selected">High</option>` +
		`</select></div></div>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

type prompted struct {
	Level int    `form:"tag:select;options:=Pick one|1=Low|2=High"`
	Day   string `form:"tag:select;prompt:Choose a day" range:"weekday:Monday..Wednesday"`
}

func TestRender_SelectPromptFirstExactlyOnce(t *testing.T) {
	got := renderString(t, orchestrator.New(), prompted{Day: "Tuesday"}, fixedOptions())

	if !strings.Contains(got, `<select class="form-control" id="level_x" name="Level"><option value="0" selected="selected">Pick one</option><option value="1">Low</option>`) {
		t.Fatalf("numeric prompt should come first with id 0, got %s", got)
	}
	if strings.Count(got, "Pick one") != 1 {
		t.Fatalf("prompt rendered more than once: %s", got)
	}
	if !strings.Contains(got, `<option value="">Choose a day</option><option value="Monday">Monday</option><option value="Tuesday" selected="selected">Tuesday</option><option value="Wednesday">Wednesday</option></select>`) {
		t.Fatalf("display prompt should lead the enum options, got %s", got)
	}
}

type palette struct {
	Color string `form:"type:radio;options:Black|Blue"`
}

func TestRender_RadioGroup(t *testing.T) {
	got := renderString(t, orchestrator.New(), palette{Color: "Blue"}, fixedOptions())
	want := `<div class="form-group"><label class="control-label">Color</label>` +
		`<div class="form-check"><label class="form-check-label"><input type="radio" value="Black" class="form-check-input" name="Color" /><span>Black</span></label></div>` +
		`<div class="form-check"><label class="form-check-label"><input type="radio" value="Blue" class="form-check-input" name="Color" checked="checked" /><span>Blue</span></label></div>` +
		`</div>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}

	plain := fixedOptions()
	plain.RenderMode = model.RenderPlain
	plain.GenerateName = false
	got = renderString(t, orchestrator.New(), palette{}, plain)
	if !strings.Contains(got, `<label>&nbsp;Black<input type="radio" value="Black" name="Color" /></label>`) {
		t.Fatalf("plain radio should keep the name attribute, got %s", got)
	}
}

type account struct {
	ID       int    `form:"type:hidden"`
	Token    string `form:"type:hidden" validate:"required"`
	Username string `form:"group:Login;order:1;icon:fa fa-user" validate:"required,maxlen=20"`
	Password string `form:"group:Login;order:2" datatype:"password"`
	Bio      string `form:"group:About;order:0;col:col-12" datatype:"multiline"`
	Nickname string
}

func TestRender_GroupsAndLayout(t *testing.T) {
	got := renderString(t, orchestrator.New(), &account{ID: 7, Token: "t", Username: "ada", Password: "secret", Bio: "<hi>"}, fixedOptions())

	about := strings.Index(got, "<legend>About</legend>")
	login := strings.Index(got, "<legend>Login</legend>")
	nickname := strings.Index(got, `name="Nickname"`)
	if about < 0 || login < 0 || nickname < 0 || !(about < login && login < nickname) {
		t.Fatalf("expected About, Login then ungrouped fields, got %s", got)
	}
	checks := []string{
		`<fieldset class="display-group"><legend>About</legend><div class="display-group-body row"><div class="col-12">`,
		`<textarea class="form-control" id="bio_x" name="Bio">&lt;hi&gt;</textarea>`,
		`<div class="input-group-prepend"><span class="input-group-text"><i class="fa fa-user"></i></span></div>`,
		`<input class="form-control" id="username_x" name="Username" required="required" maxlength="20" value="ada" />`,
		`<input type="password" class="form-control" id="password_x" name="Password" />`,
		`<input type="hidden" id="id_x" name="ID" value="7" />`,
		`<input type="hidden" id="token_x" name="Token" required="required" value="t" />`,
	}
	for _, check := range checks {
		if !strings.Contains(got, check) {
			t.Fatalf("missing %s in %s", check, got)
		}
	}
	if strings.Contains(got, `name="Nickname" required`) {
		t.Fatalf("optional field must not be required: %s", got)
	}

	hidden := fixedOptions()
	hidden.ShowGroupName = false
	if got := renderString(t, orchestrator.New(), &account{}, hidden); strings.Contains(got, "<legend>") {
		t.Fatalf("group names should be hidden, got %s", got)
	}
}

func TestRender_Deterministic(t *testing.T) {
	engine := orchestrator.New()
	first := renderString(t, engine, &account{Username: "ada"}, fixedOptions())
	second := renderString(t, engine, &account{Username: "ada"}, fixedOptions())
	if first != second {
		t.Fatalf("render output differs between calls:\n%s\n%s", first, second)
	}
}

func TestRender_BindingAndAdditionalAttributes(t *testing.T) {
	opts := fixedOptions()
	opts.Binding = &render.Binding{Prefix: "vm"}
	got := renderString(t, orchestrator.New(), &contact{}, opts)
	if !strings.Contains(got, `<input ng-model="vm.email" type="email"`) {
		t.Fatalf("binding attribute should lead the element, got %s", got)
	}

	opts.AdditionalAttributesGetter = func(*model.FieldDescriptor) map[string]any {
		return map[string]any{"class": "wide", "data-x": 1}
	}
	got = renderString(t, orchestrator.New(), &contact{}, opts)
	if !strings.Contains(got, `<input class="wide form-control" data-x="1" type="email"`) {
		t.Fatalf("additional attributes should win, got %s", got)
	}
	if strings.Contains(got, "ng-model") {
		t.Fatalf("binding must be skipped when an attributes getter is set, got %s", got)
	}
}

type boundEmail struct {
	Email string `form:"attrs:ng-model=custom.mail"`
}

type taggedCode struct {
	Code string `form:"attrs:data-x=declared"`
}

type person struct {
	FirstName string
}

type choice struct {
	Color string `form:"type:radio;options:A=Alpha|=Pick one|B=Beta"`
}

type measured struct {
	Ratio float64 `form:"type:text"`
}

func TestRender_AttributeAndOptionRules(t *testing.T) {
	cases := []struct {
		name     string
		instance any
		setup    func(*render.Options)
		contains []string
		excludes []string
	}{
		{
			name:     "declared attribute beats binding",
			instance: &boundEmail{},
			setup:    func(o *render.Options) { o.Binding = &render.Binding{Prefix: "vm"} },
			contains: []string{`<input ng-model="custom.mail" class="form-control" id="email_x"`},
			excludes: []string{"vm.email"},
		},
		{
			name:     "declared attribute beats attributes getter",
			instance: &taggedCode{},
			setup: func(o *render.Options) {
				o.AdditionalAttributesGetter = func(*model.FieldDescriptor) map[string]any {
					return map[string]any{"data-x": "getter", "data-y": "y"}
				}
			},
			contains: []string{`<input data-x="declared" data-y="y" class="form-control"`},
			excludes: []string{"getter"},
		},
		{
			name:     "binding follows camel case setting",
			instance: &person{},
			setup: func(o *render.Options) {
				o.CamelCaseID = false
				o.Binding = &render.Binding{Prefix: "vm"}
			},
			contains: []string{`<input ng-model="vm.FirstName" class="form-control" id="FirstName_x"`},
			excludes: []string{"vm.firstName"},
		},
		{
			name:     "radio prompt leads once and is never an input",
			instance: &choice{},
			contains: []string{
				`<label class="control-label">Color</label><small class="form-text text-muted">Pick one</small>` +
					`<div class="form-check"><label class="form-check-label"><input type="radio" value="A" class="form-check-input" name="Color" /><span>Alpha</span></label></div>` +
					`<div class="form-check"><label class="form-check-label"><input type="radio" value="B" class="form-check-input" name="Color" /><span>Beta</span></label></div>`,
			},
			excludes: []string{`value=""`, "checked"},
		},
		{
			name:     "numeric select without prompt gets zero option",
			instance: ticket{},
			contains: []string{`name="Level"><option value="0" selected="selected"></option><option value="1">Low</option>`},
		},
		{
			name:     "floats keep every fraction digit",
			instance: &measured{Ratio: 3.14159},
			contains: []string{`value="3.14159"`},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := fixedOptions()
			if tc.setup != nil {
				tc.setup(opts)
			}
			got := renderString(t, orchestrator.New(), tc.instance, opts)
			for _, want := range tc.contains {
				if !strings.Contains(got, want) {
					t.Fatalf("missing %s in %s", want, got)
				}
			}
			for _, unwanted := range tc.excludes {
				if strings.Contains(got, unwanted) {
					t.Fatalf("unexpected %s in %s", unwanted, got)
				}
			}
		})
	}
}

type locked struct {
	Code string `form:"disabled"`
}

func TestRender_Disabled(t *testing.T) {
	got := renderString(t, orchestrator.New(), locked{}, fixedOptions())
	require.Contains(t, got, `name="Code" disabled="disabled"`)

	opts := fixedOptions()
	opts.DisabledGetter = func(*model.FieldDescriptor) bool { return false }
	got = renderString(t, orchestrator.New(), locked{}, opts)
	require.NotContains(t, got, "disabled")
}

type upload struct {
	Name   string `validate:"required"`
	Avatar string `datatype:"upload" file:"accept:image/*"`
}

func TestRenderForm(t *testing.T) {
	node, err := orchestrator.New().RenderForm(&upload{}, orchestrator.FormOptions{
		ID:         "profile",
		Action:     "/save",
		Method:     "post",
		Attributes: map[string]any{"novalidate": "novalidate"},
		SubmitText: "Save",
	}, fixedOptions())
	require.NoError(t, err)
	got := node.String()

	require.True(t, strings.HasPrefix(got, `<form id="profile" action="/save" method="post" enctype="multipart/form-data" novalidate="novalidate">`), got)
	require.True(t, strings.HasSuffix(got, `<button type="submit" class="btn btn-primary"><span>Save</span></button></form>`), got)
	require.Contains(t, got, `<div class="custom-file"><input class="custom-file-input form-control" type="file" id="avatar_x" name="Avatar" accept="image/*" />`+
		`<label class="custom-file-label" for="avatar_x">Avatar</label></div>`)

	node, err = orchestrator.New().RenderForm(&contact{}, orchestrator.FormOptions{OmitSubmit: true}, fixedOptions())
	require.NoError(t, err)
	require.NotContains(t, node.String(), "enctype")
	require.NotContains(t, node.String(), "<button")
}

func TestRenderButton(t *testing.T) {
	parent := tag.New("div")
	orchestrator.RenderButton(parent, orchestrator.Button{
		Type: "button",
		Configure: func(b *tag.Node) {
			b.AddAttribute("type", "reset").AddAttribute("id", "go")
		},
	})
	want := `<div><button type="reset" id="go" class="btn btn-primary"><span>Submit</span></button></div>`
	if diff := cmp.Diff(want, parent.String()); diff != "" {
		t.Fatalf("button mismatch (-want +got):\n%s", diff)
	}
}

type badOptions struct {
	Level string `form:"tag:select;options:a=b=c"`
}

func TestRender_Errors(t *testing.T) {
	engine := orchestrator.New()

	var nilModel *contact
	_, err := engine.Render(nilModel, nil, nil)
	if !errors.Is(err, model.ErrNilModel) {
		t.Fatalf("expected ErrNilModel, got %v", err)
	}
	if kind, _ := model.KindOf(err); kind != model.KindStructural {
		t.Fatalf("expected structural error, got %v", kind)
	}

	_, err = engine.Render(badOptions{}, nil, nil)
	if !errors.Is(err, model.ErrMalformedOptions) {
		t.Fatalf("expected ErrMalformedOptions, got %v", err)
	}
	var modelErr *model.Error
	if !errors.As(err, &modelErr) || modelErr.Field != "Level" || modelErr.Kind != model.KindConfiguration {
		t.Fatalf("unexpected error detail %#v", err)
	}
}

func TestRender_NilRootAndOptions(t *testing.T) {
	root, err := orchestrator.New().Render(&contact{}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "div", root.Name())
	require.Contains(t, root.String(), `id="email_`)
}

func TestEngine_ObserverAndLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	counts := map[model.ControlKind]int{}
	engine := orchestrator.New(
		orchestrator.WithLogger(logger),
		orchestrator.WithObserver(orchestrator.ObserverFunc(func(modelName string, kind model.ControlKind) {
			require.Equal(t, "account", modelName)
			counts[kind]++
		})),
	)
	renderString(t, engine, &account{}, fixedOptions())

	want := map[model.ControlKind]int{model.Hidden: 1, model.PlainInput: 3, model.TextArea: 1}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("observer counts mismatch (-want +got):\n%s", diff)
	}

	entries := hook.AllEntries()
	require.Len(t, entries, 5)
	require.Equal(t, "Rendering field", entries[0].Message)
	require.Equal(t, "orchestrator", entries[0].Data[logfields.LogSubsys])
	require.Equal(t, "About", entries[0].Data[logfields.Group])
}

func TestEngine_SharedCache(t *testing.T) {
	cache := orchestrator.NewCache()
	a := orchestrator.New(orchestrator.WithCache(cache))
	b := orchestrator.New(orchestrator.WithCache(cache))
	renderString(t, a, &contact{}, fixedOptions())
	renderString(t, b, &contact{}, fixedOptions())
	renderString(t, b, newsletter{}, fixedOptions())
	require.Equal(t, 2, cache.Len())
}

func TestEngine_WithLocalizer(t *testing.T) {
	loc := model.LocalizerFunc(func(key, culture string) string {
		if culture == "fr" && key == "Email" {
			return "Courriel"
		}
		return ""
	})
	opts := fixedOptions()
	opts.Culture = "fr"
	got := renderString(t, orchestrator.New(orchestrator.WithLocalizer(loc)), &contact{}, opts)
	require.Contains(t, got, `for="email_x">Courriel</label>`)
}
