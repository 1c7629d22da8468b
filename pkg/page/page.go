package page

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// DefaultTemplate is the page template shipped with the package.
const DefaultTemplate = "page.html"

//go:embed templates/*.html
var embedded embed.FS

// TemplatesFS returns the embedded templates rooted at the template names.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return embedded
	}
	return sub
}

// Option configures a Renderer.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	name       string
	globalData map[string]any
}

// WithBaseDir loads templates from a directory on disk ahead of the
// embedded ones.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files ahead of the embedded ones.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithTemplate selects the template rendered by Render.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithGlobalData seeds values available to every render.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// Page is the data handed to the template. Body is trusted markup produced
// by the engine and is not escaped.
type Page struct {
	Title       string
	Lang        string
	Container   string
	Stylesheets []string
	Body        string
	Data        map[string]any
}

// Renderer wraps generated form markup in a full HTML document.
type Renderer struct {
	mu sync.Mutex

	set       *pongo2.TemplateSet
	name      string
	templates map[string]*pongo2.Template
}

// New builds a Renderer. Without options it renders the embedded page
// template.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{name: DefaultTemplate}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("page: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	loaders = append(loaders, pongo2.NewFSLoader(TemplatesFS()))

	set := pongo2.NewSet("modelform", loaders...)
	if len(cfg.globalData) > 0 {
		set.Globals = pongo2.Context(cfg.globalData)
	}
	return &Renderer{
		set:       set,
		name:      cfg.name,
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// Render executes the configured template for p and returns the document.
// The result is also written to every writer in out.
func (r *Renderer) Render(p Page, out ...io.Writer) (string, error) {
	if r == nil || r.set == nil {
		return "", errors.New("page: renderer is nil")
	}
	tmpl, err := r.template(r.name)
	if err != nil {
		return "", err
	}

	ctx := pongo2.Context{}
	for key, value := range p.Data {
		ctx[key] = value
	}
	ctx["title"] = p.Title
	ctx["lang"] = p.Lang
	ctx["container"] = p.Container
	ctx["stylesheets"] = p.Stylesheets
	ctx["body"] = p.Body

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("page: execute template %q: %w", r.name, err)
	}
	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (r *Renderer) template(name string) (*pongo2.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := r.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("page: load template %q: %w", name, err)
	}
	r.templates[name] = tmpl
	return tmpl, nil
}
