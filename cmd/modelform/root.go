package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-modelform/components/timezones"
	"github.com/goliatone/go-modelform/internal/logfields"
	"github.com/goliatone/go-modelform/pkg/i18n"
	"github.com/goliatone/go-modelform/pkg/model"
	"github.com/goliatone/go-modelform/pkg/openapi"
	"github.com/goliatone/go-modelform/pkg/orchestrator"
	"github.com/goliatone/go-modelform/pkg/overlay"
	"github.com/goliatone/go-modelform/pkg/render"
	"github.com/goliatone/go-modelform/pkg/theme"
)

const envPrefix = "MODELFORM"

// config is the merged view of flags, environment and config file.
type config struct {
	Debug     bool          `mapstructure:"debug"`
	OpenAPI   string        `mapstructure:"openapi"`
	Schema    string        `mapstructure:"schema"`
	Values    string        `mapstructure:"values"`
	Overlays  string        `mapstructure:"overlays"`
	Resources string        `mapstructure:"resources"`
	Theme     string        `mapstructure:"theme"`
	Variant   string        `mapstructure:"variant"`
	Render    render.Config `mapstructure:"render"`
}

type app struct {
	v      *viper.Viper
	log    *logrus.Logger
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      viper.New(),
		log:    logrus.New(),
		stdout: stdout,
		stderr: stderr,
	}
	a.log.SetOutput(stderr)

	var cfgFile string
	root := &cobra.Command{
		Use:           "modelform",
		Short:         "Generate HTML forms from annotated models",
		Long:          `Generate HTML forms from OpenAPI component schemas, with overlays, translations and themes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cfgFile)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml or json)")
	addSourceFlags(flags)
	if err := a.v.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(
		a.newRenderCmd(),
		a.newFillCmd(),
		a.newSchemasCmd(),
	)
	return root
}

func addSourceFlags(flags *pflag.FlagSet) {
	flags.BoolP("debug", "D", false, "enable debug messages")
	flags.String("openapi", "", "OpenAPI document providing component schemas")
	flags.String("schema", "", "component schema to render")
	flags.String("values", "", "JSON or YAML file with current field values")
	flags.String("overlays", "", "directory of metadata overlay files")
	flags.String("resources", "", "directory of translation resources")
	flags.String("theme", "", "go-theme manifest file")
	flags.String("variant", "", "theme variant")
}

func (a *app) initConfig(cfgFile string) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		a.log.WithField(logfields.Path, a.v.ConfigFileUsed()).Debug("Using config file")
	}

	if a.v.GetBool("debug") {
		a.log.SetLevel(logrus.DebugLevel)
	} else {
		a.log.SetLevel(logrus.InfoLevel)
	}
	return nil
}

func (a *app) config() (config, error) {
	var cfg config
	if err := a.v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// source loads the selected schema and its values.
func (a *app) source(ctx context.Context, cfg config) (*openapi.Model, error) {
	if strings.TrimSpace(cfg.OpenAPI) == "" {
		return nil, errors.New("--openapi is required")
	}
	models, err := a.components(ctx, cfg.OpenAPI)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Schema) == "" {
		return nil, errors.New("--schema is required")
	}
	m, ok := models[cfg.Schema]
	if !ok {
		return nil, fmt.Errorf("schema %q not found in %s", cfg.Schema, cfg.OpenAPI)
	}
	if cfg.Values == "" {
		return m, nil
	}
	values, err := readValues(cfg.Values)
	if err != nil {
		return nil, err
	}
	return m.WithValues(values), nil
}

func (a *app) components(ctx context.Context, path string) (map[string]*openapi.Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	models, err := openapi.LoadComponents(ctx, raw)
	if err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{
		logfields.Path:  path,
		logfields.Count: len(models),
	}).Debug("Loaded component schemas")
	return models, nil
}

func (a *app) engine(cfg config, extra ...orchestrator.Option) (*orchestrator.Engine, error) {
	enums := model.NewEnumRegistry()
	if err := timezones.Register(enums); err != nil {
		return nil, err
	}
	options := []orchestrator.Option{
		orchestrator.WithLogger(a.log),
		orchestrator.WithEnums(enums),
	}
	if cfg.Overlays != "" {
		store, err := overlay.LoadFS(os.DirFS(cfg.Overlays))
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithOverlay(store))
	}
	if cfg.Resources != "" {
		resources, err := i18n.LoadFS(os.DirFS(cfg.Resources))
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithLocalizer(resources))
	}
	return orchestrator.New(append(options, extra...)...), nil
}

func (a *app) renderOptions(cfg config) (*render.Options, error) {
	opts, err := cfg.Render.Options()
	if err != nil {
		return nil, err
	}
	if cfg.Theme == "" {
		return opts, nil
	}
	dir, file := filepath.Split(cfg.Theme)
	if dir == "" {
		dir = "."
	}
	manifest, err := theme.LoadManifest(os.DirFS(dir), file)
	if err != nil {
		return nil, err
	}
	if err := theme.Apply(theme.Static(manifest), manifest.Name, cfg.Variant, opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func sortedNames(models map[string]*openapi.Model) []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
