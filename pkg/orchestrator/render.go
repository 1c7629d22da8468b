package orchestrator

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-modelform/internal/logfields"
	"github.com/goliatone/go-modelform/pkg/model"
	"github.com/goliatone/go-modelform/pkg/render"
	"github.com/goliatone/go-modelform/pkg/tag"
)

const (
	defaultSubmitText  = "Submit"
	defaultButtonClass = "btn btn-primary"
	multipartEncType   = "multipart/form-data"
)

// FormOptions describe the enclosing form element and its submit button.
type FormOptions struct {
	ID         string
	Name       string
	Action     string
	Method     string
	EncType    string
	Attributes map[string]any

	SubmitText     string
	SubmitCSSClass string
	OmitSubmit     bool
}

// Button describes a button appended by RenderButton.
type Button struct {
	Text     string
	Type     string
	CSSClass string
	// Configure runs before the defaults are applied, so attributes it sets
	// win.
	Configure func(*tag.Node)
}

// Render appends the controls of instance to root and returns root. A nil
// root renders into a new div; nil opts use render.Default().
func (e *Engine) Render(instance any, root *tag.Node, opts *render.Options) (*tag.Node, error) {
	if opts == nil {
		opts = render.Default()
	}
	form, err := e.build(instance, opts)
	if err != nil {
		return nil, err
	}
	if root == nil {
		root = tag.New("div")
	}
	e.renderForm(root, form, opts)
	return root, nil
}

// RenderForm renders instance inside a form element followed by a submit
// button. The encoding defaults to multipart/form-data when a file control
// is present.
func (e *Engine) RenderForm(instance any, formOpts FormOptions, opts *render.Options) (*tag.Node, error) {
	if opts == nil {
		opts = render.Default()
	}
	form, err := e.build(instance, opts)
	if err != nil {
		return nil, err
	}

	encType := strings.TrimSpace(formOpts.EncType)
	if encType == "" && hasFile(form) {
		encType = multipartEncType
	}

	node := tag.New("form").
		AddAttributeIfNotBlank("id", formOpts.ID).
		AddAttributeIfNotBlank("name", formOpts.Name).
		AddAttributeIfNotBlank("action", formOpts.Action).
		AddAttributeIfNotBlank("method", formOpts.Method).
		AddAttributeIfNotBlank("enctype", encType).
		AddAttributes(nil, tag.AttrsFromMap(formOpts.Attributes)...)

	e.renderForm(node, form, opts)
	if !formOpts.OmitSubmit {
		RenderButton(node, Button{Text: formOpts.SubmitText, CSSClass: formOpts.SubmitCSSClass})
	}
	return node, nil
}

// RenderButton appends a button to parent and returns parent. Type defaults
// to submit, the class to "btn btn-primary" and the text to "Submit".
func RenderButton(parent *tag.Node, b Button) *tag.Node {
	button := tag.New("button")
	if b.Configure != nil {
		b.Configure(button)
	}
	buttonType := strings.TrimSpace(b.Type)
	if buttonType == "" {
		buttonType = "submit"
	}
	class := strings.TrimSpace(b.CSSClass)
	if class == "" {
		class = defaultButtonClass
	}
	text := b.Text
	if strings.TrimSpace(text) == "" {
		text = defaultSubmitText
	}
	button.AddAttribute("type", buttonType).
		AddClass(class).
		AddChild(tag.New("span").SetText(text))
	return parent.AddChild(button)
}

// Describe returns the grouped descriptors for instance without rendering.
func (e *Engine) Describe(instance any, opts *render.Options) (model.Form, error) {
	if opts == nil {
		opts = render.Default()
	}
	return e.build(instance, opts)
}

func (e *Engine) build(instance any, opts *render.Options) (model.Form, error) {
	form, err := e.builder.Build(instance, opts.Culture, opts.Defaults())
	if err != nil {
		logger := e.logger.WithError(err)
		if kind, ok := model.KindOf(err); ok {
			logger = logger.WithField("kind", kind.String())
		}
		logger.Warn("Unable to describe model")
		return model.Form{}, fmt.Errorf("orchestrator: render %s: %w", modelLabel(instance), err)
	}
	return form, nil
}

func (e *Engine) renderForm(root *tag.Node, form model.Form, opts *render.Options) {
	for _, group := range form.Groups {
		root.AddChild(e.renderGroup(form.Model, group, opts))
	}
	for _, field := range form.Ungrouped {
		root.AddChild(e.renderField(form.Model, "", field, opts))
	}
}

func (e *Engine) renderGroup(modelName string, group model.DisplayGroup, opts *render.Options) *tag.Node {
	wrapper := tag.New(opts.WrapperTag()).AddClass("display-group")
	if group.ShowName && strings.TrimSpace(group.Name) != "" {
		wrapper.AddChild(tag.New(opts.HeaderTag()).SetText(group.Name))
	}
	body := tag.New("div").AddClass("display-group-body", group.CSSClass)
	for _, field := range group.Fields {
		node := e.renderField(modelName, group.Key, field, opts)
		if field.Kind() == model.Hidden {
			body.AddChild(node)
			continue
		}
		body.AddChild(tag.New("div").AddClass(field.Display.ColumnClass).AddChild(node))
	}
	return wrapper.AddChild(body)
}

func (e *Engine) renderField(modelName, groupKey string, desc *model.FieldDescriptor, opts *render.Options) *tag.Node {
	kind := desc.Kind()
	e.logger.WithFields(logrus.Fields{
		logfields.Model:   modelName,
		logfields.Group:   groupKey,
		logfields.Field:   desc.Name(),
		logfields.Control: kind.String(),
	}).Debug("Rendering field")

	node := newControl(desc, opts).render()
	if e.observer != nil {
		e.observer.FieldRendered(modelName, kind)
	}
	return node
}

func hasFile(form model.Form) bool {
	for _, field := range form.Fields() {
		if field.Kind() == model.File {
			return true
		}
	}
	return false
}

func modelLabel(instance any) string {
	if instance == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", instance)
}
