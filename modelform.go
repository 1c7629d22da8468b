package modelform

import (
	"github.com/goliatone/go-modelform/pkg/orchestrator"
	"github.com/goliatone/go-modelform/pkg/render"
	"github.com/goliatone/go-modelform/pkg/tag"
)

// Options aliases render.Options so callers can configure rendering from the
// top-level module.
type Options = render.Options

// FormOptions describe the enclosing form element.
type FormOptions = orchestrator.FormOptions

// Engine is the form synthesis engine.
type Engine = orchestrator.Engine

// NewEngine exposes the orchestrator constructor from the top-level module.
func NewEngine(options ...orchestrator.Option) *Engine {
	return orchestrator.New(options...)
}

// DefaultOptions returns the default render options.
func DefaultOptions() *Options {
	return render.Default()
}

// RenderHTML renders the controls of instance and returns the markup without
// an enclosing element. It is the simplest entry point for callers that just
// want HTML output.
func RenderHTML(instance any, opts *Options, options ...orchestrator.Option) (string, error) {
	root, err := orchestrator.New(options...).Render(instance, tag.New("div"), opts)
	if err != nil {
		return "", err
	}
	return tag.InnerHTML(root), nil
}

// RenderFormHTML renders instance inside a form element with a submit button.
func RenderFormHTML(instance any, formOpts FormOptions, opts *Options, options ...orchestrator.Option) (string, error) {
	node, err := orchestrator.New(options...).RenderForm(instance, formOpts, opts)
	if err != nil {
		return "", err
	}
	return node.String(), nil
}
