package model

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	pkgmodel "github.com/goliatone/go-modelform/pkg/model"
)

const (
	formTagKey     = "form"
	validateTagKey = "validate"
	dataTypeTagKey = "datatype"
	rangeTagKey    = "range"
	fileTagKey     = "file"
)

// parseAnnotations reads the struct tags of field into Annotations.
//
//	form:"name:First Name;group:PersonalInfo;order:1;tag:select;options:1=Low|2=High;disabled"
//	validate:"required,email,maxlen=100,min=1,max=10,pattern=^[0-9]{1,3}$"
//	datatype:"password"
//	range:"weekday:Monday..Friday"
//	file:"accept:image/*;multiple"
func parseAnnotations(field reflect.StructField) (pkgmodel.Annotations, error) {
	var ann pkgmodel.Annotations

	if raw, ok := field.Tag.Lookup(formTagKey); ok {
		display, err := parseDisplay(raw)
		if err != nil {
			return ann, fmt.Errorf("model: field %s: %w", field.Name, err)
		}
		ann.Display = &display
	}

	if raw, ok := field.Tag.Lookup(validateTagKey); ok {
		if err := parseValidate(raw, &ann); err != nil {
			return ann, fmt.Errorf("model: field %s: %w", field.Name, err)
		}
	}

	if raw := strings.TrimSpace(field.Tag.Get(dataTypeTagKey)); raw != "" {
		ann.DataType = pkgmodel.DataType(strings.ToLower(raw))
	}

	if raw := strings.TrimSpace(field.Tag.Get(rangeTagKey)); raw != "" {
		ann.Range = parseRange(raw)
	}

	if raw, ok := field.Tag.Lookup(fileTagKey); ok {
		ann.File = parseFile(raw)
	}

	return ann, nil
}

func parseDisplay(raw string) (pkgmodel.Display, error) {
	var display pkgmodel.Display
	raw = strings.TrimSpace(raw)
	if raw == "-" {
		display.Ignore = true
		return display, nil
	}

	for _, directive := range splitDirectives(raw) {
		key, value := splitDirective(directive)
		switch key {
		case "name", "label":
			display.Name = value
		case "short", "shortname":
			display.ShortName = value
		case "description", "desc":
			display.Description = value
		case "prompt", "placeholder":
			display.Prompt = value
		case "group":
			display.Group = value
		case "order":
			order, err := strconv.Atoi(value)
			if err != nil {
				return display, fmt.Errorf("invalid order %q: %w", value, err)
			}
			display.Order = &order
		case "tag":
			display.Tag = strings.ToLower(value)
		case "type":
			display.Type = strings.ToLower(value)
		case "icon":
			display.Icon = value
		case "format":
			display.Format = value
		case "culture":
			display.Culture = value
		case "col", "column":
			display.ColumnClass = value
		case "class", "input":
			display.InputClass = value
		case "options":
			display.Options = value
		case "attrs", "attributes":
			display.Attributes = value
		case "render":
			mode, ok := pkgmodel.ParseRenderMode(value)
			if !ok {
				return display, fmt.Errorf("invalid render mode %q", value)
			}
			display.RenderMode = mode
		case "disabled":
			display.Disabled = parseFlag(value)
		case "ignore":
			display.Ignore = parseFlag(value)
		case "":
		default:
			return display, fmt.Errorf("unknown form directive %q", key)
		}
	}
	return display, nil
}

func parseValidate(raw string, ann *pkgmodel.Annotations) error {
	for rest := raw; rest != ""; {
		rule, tail, more := strings.Cut(rest, ",")
		rest = tail
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		name, param, _ := strings.Cut(rule, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "pattern" && more {
			// a pattern runs to the end of the tag so it may contain commas
			param, rest = param+","+tail, ""
		}
		param = strings.TrimSpace(param)
		switch name {
		case "required":
			ann.Required = true
		case "email":
			ann.Email = true
		case "maxlen", "max_length", "maxlength":
			n, err := strconv.Atoi(param)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", name, param, err)
			}
			ann.MaxLength = n
		case "minlen", "min_length", "minlength":
			n, err := strconv.Atoi(param)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", name, param, err)
			}
			ann.MinLength = n
		case "min":
			ann.Min = param
		case "max":
			ann.Max = param
		case "pattern":
			if _, err := regexp.Compile(param); err != nil {
				return fmt.Errorf("%w %q: %v", pkgmodel.ErrInvalidPattern, param, err)
			}
			ann.Pattern = param
		default:
			// rules aimed at a validation library are not rendered
		}
	}
	return nil
}

func parseRange(raw string) *pkgmodel.Range {
	enum, bounds, _ := strings.Cut(raw, ":")
	min, max, _ := strings.Cut(bounds, "..")
	return &pkgmodel.Range{
		Enum: strings.TrimSpace(enum),
		Min:  strings.TrimSpace(min),
		Max:  strings.TrimSpace(max),
	}
}

func parseFile(raw string) *pkgmodel.FileConstraint {
	file := &pkgmodel.FileConstraint{}
	for _, directive := range splitDirectives(raw) {
		key, value := splitDirective(directive)
		switch key {
		case "accept":
			file.Accept = value
		case "multiple":
			file.Multiple = parseFlag(value)
		}
	}
	return file
}

func splitDirectives(raw string) []string {
	parts := strings.Split(raw, ";")
	out := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitDirective(directive string) (string, string) {
	key, value, _ := strings.Cut(directive, ":")
	return strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value)
}

// parseFlag treats a bare directive as true.
func parseFlag(value string) bool {
	if value == "" {
		return true
	}
	b, err := strconv.ParseBool(value)
	return err == nil && b
}
