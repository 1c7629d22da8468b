package orchestrator

import (
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-modelform/pkg/model"
	"github.com/goliatone/go-modelform/pkg/render"
	"github.com/goliatone/go-modelform/pkg/tag"
)

const (
	formCheckInput  = "form-check-input"
	customFileInput = "custom-file-input"
)

// control renders one field. It is created per field and discarded.
type control struct {
	opts *render.Options
	ctx  render.FieldContext
	desc *model.FieldDescriptor
}

func newControl(desc *model.FieldDescriptor, opts *render.Options) control {
	return control{opts: opts, ctx: opts.NewFieldContext(desc), desc: desc}
}

func (c control) render() *tag.Node {
	switch c.desc.Kind() {
	case model.RadioGroup:
		return c.radioGroup()
	case model.Checkbox:
		return c.checkbox()
	case model.File:
		return c.inputGroup(c.file())
	case model.Select:
		return c.inputGroup(c.selectList())
	case model.TextArea:
		return c.inputGroup(c.textArea())
	case model.Hidden:
		return c.hidden()
	case model.PlainInput:
		return c.inputGroup(c.input())
	default:
		return c.inputGroup(c.input())
	}
}

func (c control) custom() bool {
	return c.desc.Display.RenderMode == model.RenderCustom
}

// element creates name with the declared attributes applied first, then the
// caller's, so a binding never replaces a declared key and both take
// precedence over generated ones.
func (c control) element(name string) *tag.Node {
	node := tag.New(name)
	for _, pair := range c.desc.Attributes {
		node.AddAttribute(pair.Key, pair.Value)
	}
	return node.AddAttributes(c.ctx.Formatter, c.opts.ExtraAttributes(c.desc)...)
}

// common adds class, id, title, placeholder, name, disabled and required in
// that order.
func (c control) common(node *tag.Node, placeholder bool) *tag.Node {
	display := c.desc.Display
	node.AddClass(display.InputClass).
		AddAttributeIfNotBlank("id", c.ctx.ID).
		AddAttributeIfNotBlank("title", display.Description)
	if placeholder {
		node.AddAttributeIfNotBlank("placeholder", display.Prompt)
	}
	return node.
		AddAttributeIf(c.opts.GenerateName, "name", c.desc.Name()).
		AddBoolAttributeIf(c.opts.Disabled(c.desc), "disabled").
		AddBoolAttributeIf(c.desc.Required(), "required")
}

func (c control) value() string {
	return tag.FormatValue(c.ctx.Formatter, c.desc.Value)
}

func (c control) input() *tag.Node {
	inputType := strings.ToLower(c.desc.Element.InputType)
	node := c.element(c.desc.Element.Tag)
	isInput := strings.EqualFold(node.Name(), "input")
	if isInput {
		node.AddAttributeIf(inputType != "" && inputType != "text", "type", inputType).
			AddAttributeIf(inputType == "number", "step", "any")
	}
	c.common(node, true)
	if !isInput {
		return node.AddContentIfNotBlank(html.EscapeString(c.value()))
	}
	c.constraints(node, inputType)
	if inputType != "password" {
		node.AddAttributeIfNotBlank("value", c.value())
	}
	return node
}

func (c control) constraints(node *tag.Node, inputType string) {
	ann := c.desc.Annotations()
	switch inputType {
	case "number", "range", "date", "datetime-local", "time", "month", "week":
		node.AddAttributeIfNotBlank("min", ann.Min).
			AddAttributeIfNotBlank("max", ann.Max)
		return
	}
	node.AddAttributeIf(ann.MinLength > 0, "minlength", strconv.Itoa(ann.MinLength)).
		AddAttributeIf(ann.MaxLength > 0, "maxlength", strconv.Itoa(ann.MaxLength)).
		AddAttributeIfNotBlank("pattern", ann.Pattern)
}

func (c control) textArea() *tag.Node {
	node := c.common(c.element("textarea"), true)
	ann := c.desc.Annotations()
	node.AddAttributeIf(ann.MinLength > 0, "minlength", strconv.Itoa(ann.MinLength)).
		AddAttributeIf(ann.MaxLength > 0, "maxlength", strconv.Itoa(ann.MaxLength))
	return node.SetText(c.value())
}

func (c control) hidden() *tag.Node {
	return c.element("input").
		AddAttribute("type", "hidden").
		AddAttributeIfNotBlank("id", c.ctx.ID).
		AddAttributeIf(c.opts.GenerateName, "name", c.desc.Name()).
		AddBoolAttributeIf(c.opts.Disabled(c.desc), "disabled").
		AddBoolAttributeIf(c.desc.Required(), "required").
		AddAttributeIfNotBlank("value", c.value())
}

func (c control) selectList() *tag.Node {
	node := c.common(c.element("select"), false)
	options := c.opts.SelectOptions(c.desc)
	if len(options) == 0 {
		return node
	}

	selected := c.value()
	prompt, body := model.SplitPrompt(options)
	promptID, promptLabel := "", c.desc.Display.Prompt
	if prompt != nil {
		promptID, promptLabel = prompt.ID, prompt.Label
	}
	// numeric targets always lead with a prompt so the zero value has an option
	if prompt != nil || strings.TrimSpace(promptLabel) != "" || model.IsNumeric(c.desc.Type()) {
		if strings.TrimSpace(promptID) == "" {
			promptID = model.PromptID(c.desc.Type())
		}
		node.AddChild(c.option(promptID, promptLabel, selected))
	}
	return tag.ForEach(node, body, func(opt model.SelectOption) *tag.Node {
		return c.option(opt.ID, opt.Label, selected)
	})
}

func (c control) option(id, label, selected string) *tag.Node {
	node := tag.New("option").
		AddAttribute("value", id).
		AddBoolAttributeIf(selected == id, "selected")
	return c.setLabel(node, label)
}

func (c control) checkbox() *tag.Node {
	group := tag.New("div").AddClass("form-group")
	if c.custom() {
		label := tag.New("label").AddClass("form-check-label").
			AddChild(c.checkInput(formCheckInput)).
			AddChild(c.labelText(c.desc.Label))
		return group.AddChild(tag.New("div").AddClass("form-check").AddChild(label))
	}
	if strings.TrimSpace(c.desc.Label) == "" {
		return group.AddChild(c.checkInput(""))
	}
	return group.AddChild(tag.New("label").
		AddChild(tag.Raw("&nbsp;")).
		AddChild(c.labelText(c.desc.Label)).
		AddChild(c.checkInput("")))
}

func (c control) checkInput(class string) *tag.Node {
	node := c.element("input").AddAttribute("type", "checkbox").AddClass(class)
	return c.common(node, false).
		AddBoolAttributeIf(isTrue(c.desc.Value), "checked").
		AddAttribute("value", "true")
}

func (c control) radioGroup() *tag.Node {
	group := tag.New("div").AddClass("form-group")
	if strings.TrimSpace(c.desc.Label) != "" {
		group.AddChild(c.setLabel(tag.New("label").AddClass("control-label"), c.desc.Label))
	}
	prompt, body := model.SplitPrompt(c.opts.SelectOptions(c.desc))
	promptLabel := c.desc.Display.Prompt
	if prompt != nil {
		promptLabel = prompt.Label
	}
	if strings.TrimSpace(promptLabel) != "" {
		group.AddChild(c.setLabel(tag.New("small").AddClass("form-text", "text-muted"), promptLabel))
	}
	selected := c.value()
	return tag.ForEach(group, body, func(opt model.SelectOption) *tag.Node {
		if c.custom() {
			label := tag.New("label").AddClass("form-check-label").
				AddChild(c.radioInput(opt.ID, selected, formCheckInput)).
				AddChild(c.setLabel(tag.New("span"), opt.Label))
			return tag.New("div").AddClass("form-check").AddChild(label)
		}
		input := c.radioInput(opt.ID, selected, "")
		if strings.TrimSpace(opt.Label) == "" {
			return input
		}
		return tag.New("label").
			AddChild(tag.Raw("&nbsp;")).
			AddChild(c.labelText(opt.Label)).
			AddChild(input)
	})
}

func (c control) radioInput(id, selected, class string) *tag.Node {
	return c.element("input").
		AddAttribute("type", "radio").
		AddAttribute("value", id).
		AddClass(class, c.desc.Display.InputClass).
		AddAttribute("name", c.desc.Name()).
		AddBoolAttributeIf(c.opts.Disabled(c.desc), "disabled").
		AddBoolAttributeIf(c.desc.Required(), "required").
		AddBoolAttributeIf(selected == id, "checked")
}

func (c control) file() *tag.Node {
	custom := c.custom()
	input := c.element("input").AddClassIf(custom, customFileInput)
	input.AddAttribute("type", "file")
	c.common(input, false)
	if constraint := c.desc.Annotations().File; constraint != nil {
		input.AddAttributeIfNotBlank("accept", constraint.Accept).
			AddBoolAttributeIf(constraint.Multiple, "multiple")
	}
	if !custom {
		return input
	}

	text := c.desc.Display.Prompt
	if strings.TrimSpace(text) == "" {
		text = c.desc.Label
	}
	label := tag.New("label").AddClass("custom-file-label").AddAttributeIfNotBlank("for", c.ctx.ID)
	return tag.New("div").AddClass("custom-file").
		AddChild(input).
		AddChild(c.setLabel(label, text))
}

// inputGroup wraps a control in the labelled form-group and input-group
// containers, with an optional icon prefix.
func (c control) inputGroup(inner *tag.Node) *tag.Node {
	group := tag.New("div").AddClass("form-group")
	if strings.TrimSpace(c.desc.Label) != "" {
		label := tag.New("label").AddClass("control-label").AddAttributeIfNotBlank("for", c.ctx.ID)
		group.AddChild(c.setLabel(label, c.desc.Label))
	}
	body := tag.New("div").AddClass("input-group").
		AddChild(c.icon()).
		AddChild(inner)
	return group.AddChild(body)
}

func (c control) icon() *tag.Node {
	raw := c.desc.Display.Icon
	span := tag.New("span").AddClass("input-group-text")
	if render.IsIconMarkup(raw) {
		markup := render.SanitizeIconMarkup(raw)
		if markup == "" {
			return nil
		}
		span.SetHTML(markup)
	} else {
		classes := render.SanitizeIcon(raw)
		if classes == "" {
			return nil
		}
		span.AddChild(tag.New("i").AddClass(classes))
	}
	return tag.New("div").AddClass("input-group-prepend").AddChild(span)
}

func (c control) setLabel(node *tag.Node, text string) *tag.Node {
	if c.opts.LabelMarkup {
		return node.SetHTML(render.SanitizeLabel(text))
	}
	return node.SetText(text)
}

func (c control) labelText(text string) *tag.Node {
	if c.opts.LabelMarkup {
		return tag.Raw(render.SanitizeLabel(text))
	}
	return tag.Text(text)
}

func isTrue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case *bool:
		return v != nil && *v
	}
	return false
}
