package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-modelform/internal/logfields"
	"github.com/goliatone/go-modelform/pkg/metrics"
	"github.com/goliatone/go-modelform/pkg/orchestrator"
	"github.com/goliatone/go-modelform/pkg/page"
)

func (a *app) newRenderCmd() *cobra.Command {
	var (
		formOpts    orchestrator.FormOptions
		output      string
		wrapPage    bool
		title       string
		stylesheets []string
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a schema as an HTML form",
		Example: `  modelform render --openapi api.yaml --schema Contact
  modelform render --openapi api.yaml --schema Contact --page --title "Contact us" -o contact.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			m, err := a.source(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			var extra []orchestrator.Option
			reg := prometheus.NewRegistry()
			if metricsFile != "" {
				recorder, err := metrics.New(reg)
				if err != nil {
					return err
				}
				extra = append(extra, orchestrator.WithObserver(recorder))
			}
			engine, err := a.engine(cfg, extra...)
			if err != nil {
				return err
			}
			opts, err := a.renderOptions(cfg)
			if err != nil {
				return err
			}

			node, err := engine.RenderForm(m, formOpts, opts)
			if err != nil {
				return err
			}
			markup := node.String()

			if wrapPage {
				renderer, err := page.New()
				if err != nil {
					return err
				}
				if strings.TrimSpace(title) == "" {
					title = m.Name
				}
				markup, err = renderer.Render(page.Page{
					Title:       title,
					Lang:        opts.Culture,
					Stylesheets: stylesheets,
					Body:        markup,
				})
				if err != nil {
					return err
				}
			}

			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}
			return a.write(output, markup)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&formOpts.ID, "form-id", "", "form element id")
	flags.StringVar(&formOpts.Action, "action", "", "form action URL")
	flags.StringVar(&formOpts.Method, "method", "post", "form method")
	flags.StringVar(&formOpts.SubmitText, "submit", "", "submit button text")
	flags.BoolVar(&formOpts.OmitSubmit, "no-submit", false, "omit the submit button")
	flags.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	flags.BoolVar(&wrapPage, "page", false, "wrap the form in a complete HTML page")
	flags.StringVar(&title, "title", "", "page title (defaults to the schema name)")
	flags.StringSliceVar(&stylesheets, "stylesheet", nil, "stylesheet URL added to the page")
	flags.StringVar(&metricsFile, "metrics-file", "", "write render metrics in Prometheus text format")
	return cmd
}

func (a *app) write(path, content string) error {
	if path == "" {
		_, err := fmt.Fprintln(a.stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	a.log.WithFields(logrus.Fields{logfields.Path: path}).Info("Output written")
	return nil
}
