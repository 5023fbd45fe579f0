package widgets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/goliatone/go-formlayout/pkg/render/template"
	"github.com/goliatone/go-formlayout/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS returns the bundled widget templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Renderer executes widget templates.
type Renderer struct {
	templates template.TemplateRenderer
}

// RendererOption configures NewRenderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	templateFS fs.FS
	templates  template.TemplateRenderer
}

// WithTemplatesFS swaps the bundled templates for an alternate set using the
// same names (input, textarea, checkbox, select).
func WithTemplatesFS(files fs.FS) RendererOption {
	return func(cfg *rendererConfig) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer template.TemplateRenderer) RendererOption {
	return func(cfg *rendererConfig) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// NewRenderer builds a widget renderer backed by the go-template engine unless a
// template renderer is injected.
func NewRenderer(options ...RendererOption) (*Renderer, error) {
	cfg := rendererConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.templates == nil {
		files := cfg.templateFS
		if files == nil {
			files = TemplatesFS()
		}
		engine, err := gotemplate.New(gotemplate.WithFS(files), gotemplate.WithExtension(".tpl"))
		if err != nil {
			return nil, fmt.Errorf("widgets: configure template renderer: %w", err)
		}
		cfg.templates = engine
	}
	return &Renderer{templates: cfg.templates}, nil
}

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
	defaultErr      error
)

// DefaultRenderer returns a shared renderer over the bundled templates.
func DefaultRenderer() (*Renderer, error) {
	defaultOnce.Do(func() {
		defaultRenderer, defaultErr = NewRenderer()
	})
	return defaultRenderer, defaultErr
}

// Render produces the widget markup for ctx.
func (r *Renderer) Render(widget Widget, ctx Context) (string, error) {
	if r == nil || r.templates == nil {
		return "", errors.New("widgets: renderer is nil")
	}
	if widget == nil {
		return "", errors.New("widgets: widget is nil")
	}
	out, err := r.templates.RenderTemplate(widget.Template(), widget.Data(ctx))
	if err != nil {
		return "", fmt.Errorf("widgets: render %s for %q: %w", widget.TypeName(), ctx.Name, err)
	}
	return strings.TrimSpace(out), nil
}
