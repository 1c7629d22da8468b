package modelform

import (
	"context"
	"fmt"

	"github.com/goliatone/go-modelform/pkg/openapi"
	"github.com/goliatone/go-modelform/pkg/orchestrator"
)

// LoadSchemas parses an OpenAPI document and returns its component schemas
// as form models.
func LoadSchemas(ctx context.Context, raw []byte) (map[string]*openapi.Model, error) {
	return openapi.LoadComponents(ctx, raw)
}

// RenderSchemaHTML renders the named component schema of an OpenAPI document
// as a form, prefilled with values.
func RenderSchemaHTML(ctx context.Context, raw []byte, schema string, values map[string]any, formOpts FormOptions, opts *Options, options ...orchestrator.Option) (string, error) {
	models, err := openapi.LoadComponents(ctx, raw)
	if err != nil {
		return "", err
	}
	m, ok := models[schema]
	if !ok {
		return "", fmt.Errorf("modelform: schema %q not found", schema)
	}
	return RenderFormHTML(m.WithValues(values), formOpts, opts, options...)
}
