package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelform/internal/prompt"
)

// newDriver is replaced in tests.
var newDriver = prompt.NewSurveyDriver

func (a *app) newFillCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a schema interactively and print the values as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			m, err := a.source(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			engine, err := a.engine(cfg)
			if err != nil {
				return err
			}
			opts, err := a.renderOptions(cfg)
			if err != nil {
				return err
			}
			form, err := engine.Describe(m, opts)
			if err != nil {
				return err
			}
			values, err := prompt.Fill(cmd.Context(), newDriver(), form, opts)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(values, "", "  ")
			if err != nil {
				return err
			}
			return a.write(output, string(data))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func (a *app) newSchemasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List the renderable component schemas of a document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.OpenAPI) == "" {
				return fmt.Errorf("--openapi is required")
			}
			models, err := a.components(cmd.Context(), cfg.OpenAPI)
			if err != nil {
				return err
			}
			for _, name := range sortedNames(models) {
				fmt.Fprintf(a.stdout, "%s\t%d fields\n", name, len(models[name].Properties))
			}
			return nil
		},
	}
}

// readValues decodes a JSON or YAML object of field values.
func readValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values %s: %w", path, err)
	}
	values := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &values)
	default:
		err = json.Unmarshal(data, &values)
	}
	if err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	return values, nil
}
