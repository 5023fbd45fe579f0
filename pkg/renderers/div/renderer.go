package div

import (
	"context"
	"errors"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/render"
)

// Name is the output mode the renderer registers under.
const Name = "div"

type Option func(*config)

type config struct {
	separator string
	theme     *theme.RendererConfig
}

// WithSeparator sets the default string joining sibling fragments. A
// non-empty RenderOptions.Separator takes precedence.
func WithSeparator(separator string) Option {
	return func(cfg *config) {
		cfg.separator = separator
	}
}

// WithTheme sets the default theme used when RenderOptions.Theme is nil.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// Renderer renders forms as <div> markup. It holds no per-render state and
// is safe for concurrent use.
type Renderer struct {
	separator string
	theme     *theme.RendererConfig
}

// New constructs the div renderer applying any provided options.
func New(options ...Option) *Renderer {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Renderer{separator: cfg.separator, theme: cfg.theme}
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render walks the form's layout (or its declared fields when it has none)
// and returns the hidden-field prefix, the top error list and the body, in
// that order. Any failure aborts the pass; no partial markup is returned.
func (r *Renderer) Render(ctx context.Context, form render.Form, options render.RenderOptions) ([]byte, error) {
	out, err := r.RenderString(ctx, form, options)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// RenderString is Render returning a string.
func (r *Renderer) RenderString(ctx context.Context, form render.Form, options render.RenderOptions) (string, error) {
	if form == nil {
		return "", errors.New("div: form is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}

	p := newPass(form, r.resolveOptions(options))

	nodes, explicit := form.Layout()
	if explicit {
		if err := layout.Validate(nodes); err != nil {
			return "", &render.InvalidLayoutError{Err: err}
		}
	} else {
		nodes = layout.Fields(form.FieldNames()...)
	}

	body, err := p.RenderNodes(nodes)
	if err != nil {
		return "", err
	}

	if missing := p.missing(); len(missing) > 0 {
		rest, err := p.RenderNodes(layout.Fields(missing...))
		if err != nil {
			return "", err
		}
		body += rest
	}

	var builder strings.Builder
	for _, hidden := range p.options.HiddenFields {
		builder.WriteString(hidden.HTML())
	}
	for _, fragment := range p.prefix {
		builder.WriteString(fragment)
	}

	var nonField []string
	if withErrors, ok := form.(render.NonFieldErrorer); ok {
		nonField = withErrors.NonFieldErrors()
	}
	topErrors := render.MergeFormErrors(p.options.Errors, nonField...)
	topErrors = append(topErrors, p.topErrors...)
	if len(topErrors) > 0 {
		builder.WriteString(p.errorList(escapeAll(topErrors)))
	}

	builder.WriteString(body)
	return builder.String(), nil
}

func (r *Renderer) resolveOptions(options render.RenderOptions) render.RenderOptions {
	if options.Separator == "" {
		options.Separator = r.separator
	}
	if options.Theme == nil {
		options.Theme = r.theme
	}
	return options
}

var _ render.Renderer = (*Renderer)(nil)
