package prompt

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-modelform/pkg/model"
	"github.com/goliatone/go-modelform/pkg/render"
	"github.com/goliatone/go-modelform/pkg/tag"
)

// Fill asks for a value for every editable field of form and returns the
// answers keyed by field name. Hidden and disabled fields keep their current
// value. Invalid answers are reported through Info and asked again.
func Fill(ctx context.Context, driver Driver, form model.Form, opts *render.Options) (map[string]string, error) {
	if driver == nil {
		return nil, fmt.Errorf("prompt: driver is nil")
	}
	if opts == nil {
		opts = render.Default()
	}

	values := make(map[string]string)
	for _, desc := range form.Fields() {
		fieldCtx := opts.NewFieldContext(desc)
		current := tag.FormatValue(fieldCtx.Formatter, desc.Value)
		if desc.Kind() == model.Hidden || opts.Disabled(desc) {
			values[desc.Name()] = current
			continue
		}
		answer, err := ask(ctx, driver, desc, opts, current)
		if err != nil {
			return nil, fmt.Errorf("prompt: field %s: %w", desc.Name(), err)
		}
		values[desc.Name()] = answer
	}
	return values, nil
}

func ask(ctx context.Context, driver Driver, desc *model.FieldDescriptor, opts *render.Options, current string) (string, error) {
	message := label(desc)
	help := desc.Display.Description

	switch desc.Kind() {
	case model.Checkbox:
		checked, err := driver.Confirm(ctx, ConfirmConfig{Message: message, Help: help, Default: current == "true"})
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(checked), nil
	case model.Select, model.RadioGroup:
		_, body := model.SplitPrompt(opts.SelectOptions(desc))
		if len(body) == 0 {
			return current, nil
		}
		labels := make([]string, 0, len(body))
		defaultIndex := -1
		for i, opt := range body {
			labels = append(labels, opt.Label)
			if opt.ID == current {
				defaultIndex = i
			}
		}
		index, err := driver.Select(ctx, SelectConfig{Message: message, Help: help, Options: labels, DefaultIndex: defaultIndex})
		if err != nil {
			return "", err
		}
		if index < 0 || index >= len(body) {
			return "", fmt.Errorf("selection %d out of range", index)
		}
		return body[index].ID, nil
	}

	check, err := validator(desc)
	if err != nil {
		return "", err
	}
	for {
		var (
			answer string
			err    error
		)
		switch {
		case desc.Kind() == model.TextArea:
			answer, err = driver.TextArea(ctx, TextAreaConfig{Message: message, Help: help, Default: current})
		case strings.EqualFold(desc.Element.InputType, "password"):
			answer, err = driver.Password(ctx, InputConfig{Message: message, Help: help})
		default:
			answer, err = driver.Input(ctx, InputConfig{Message: message, Help: help, Default: current})
		}
		if err != nil {
			return "", err
		}
		if verr := check(answer); verr != nil {
			if err := driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", message, verr)); err != nil {
				return "", err
			}
			continue
		}
		return answer, nil
	}
}

func label(desc *model.FieldDescriptor) string {
	if text := strings.TrimSpace(desc.Label); text != "" {
		return text
	}
	return desc.Name()
}

// validator enforces the annotations the browser would enforce on the
// rendered control.
func validator(desc *model.FieldDescriptor) (func(string) error, error) {
	ann := desc.Annotations()
	required := desc.Required()
	var pattern *regexp.Regexp
	if ann.Pattern != "" {
		compiled, err := regexp.Compile("^(?:" + ann.Pattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("prompt: field %s: %w %q: %v", desc.Name(), model.ErrInvalidPattern, ann.Pattern, err)
		}
		pattern = compiled
	}
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			if required {
				return fmt.Errorf("value is required")
			}
			return nil
		}
		length := utf8.RuneCountInString(value)
		if ann.MinLength > 0 && length < ann.MinLength {
			return fmt.Errorf("must be at least %d characters", ann.MinLength)
		}
		if ann.MaxLength > 0 && length > ann.MaxLength {
			return fmt.Errorf("must be at most %d characters", ann.MaxLength)
		}
		if pattern != nil && !pattern.MatchString(value) {
			return fmt.Errorf("must match %s", ann.Pattern)
		}
		return nil
	}, nil
}
