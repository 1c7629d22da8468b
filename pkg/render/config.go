package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-modelform/pkg/model"
)

// Config is the serialisable form of Options. Pointer booleans distinguish
// unset values from explicit false.
type Config struct {
	GenerateID      *bool  `mapstructure:"generate-id" yaml:"generate-id,omitempty"`
	GenerateName    *bool  `mapstructure:"generate-name" yaml:"generate-name,omitempty"`
	CamelCaseID     *bool  `mapstructure:"camel-case-id" yaml:"camel-case-id,omitempty"`
	ShowGroupName   *bool  `mapstructure:"show-group-name" yaml:"show-group-name,omitempty"`
	LabelMarkup     bool   `mapstructure:"label-markup" yaml:"label-markup,omitempty"`
	InputClass      string `mapstructure:"input-class" yaml:"input-class,omitempty"`
	RowClass        string `mapstructure:"row-class" yaml:"row-class,omitempty"`
	ColumnClass     string `mapstructure:"column-class" yaml:"column-class,omitempty"`
	GroupWrapperTag string `mapstructure:"group-wrapper-tag" yaml:"group-wrapper-tag,omitempty"`
	GroupHeaderTag  string `mapstructure:"group-header-tag" yaml:"group-header-tag,omitempty"`
	RenderMode      string `mapstructure:"render-mode" yaml:"render-mode,omitempty"`
	Culture         string `mapstructure:"culture" yaml:"culture,omitempty"`

	Binding *BindingConfig `mapstructure:"binding" yaml:"binding,omitempty"`
}

// BindingConfig mirrors Binding.
type BindingConfig struct {
	Attribute string `mapstructure:"attribute" yaml:"attribute,omitempty"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix,omitempty"`
}

// Options converts the config into render options layered over Default.
func (c Config) Options() (*Options, error) {
	opts := Default()
	setBool(&opts.GenerateID, c.GenerateID)
	setBool(&opts.GenerateName, c.GenerateName)
	setBool(&opts.CamelCaseID, c.CamelCaseID)
	setBool(&opts.ShowGroupName, c.ShowGroupName)
	opts.LabelMarkup = c.LabelMarkup

	setString(&opts.DefaultCSSClass, c.InputClass)
	setString(&opts.RowCSSClass, c.RowClass)
	setString(&opts.ColumnCSSClass, c.ColumnClass)
	setString(&opts.GroupWrapperTag, c.GroupWrapperTag)
	setString(&opts.GroupHeaderTag, c.GroupHeaderTag)
	setString(&opts.Culture, c.Culture)

	mode, ok := model.ParseRenderMode(c.RenderMode)
	if !ok {
		return nil, fmt.Errorf("render: unknown render mode %q", c.RenderMode)
	}
	opts.RenderMode = mode

	if c.Binding != nil {
		opts.Binding = &Binding{
			Attribute: strings.TrimSpace(c.Binding.Attribute),
			Prefix:    strings.TrimSpace(c.Binding.Prefix),
		}
	}
	return opts, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src string) {
	if value := strings.TrimSpace(src); value != "" {
		*dst = value
	}
}
