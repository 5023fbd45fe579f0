package formlayout

import (
	"context"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/render"
	"github.com/goliatone/go-formlayout/pkg/renderers/div"
)

// RenderOptions describes per-request overrides: extra hidden fields,
// form-level errors, a separator and theme tokens.
type RenderOptions = render.RenderOptions

// Form is the collaborator the renderers read from.
type Form = render.Form

// Layout is an ordered sequence of layout nodes.
type Layout = layout.Layout

// Node is a single layout node.
type Node = layout.Node

var (
	// Field references a declared field by name.
	Field = layout.Field
	// Fields references several fields in order.
	Fields = layout.Fields
	// Group wraps nodes in a captioned fieldset.
	Group = layout.NewGroup
	// Columns lays out one region per column.
	Columns = layout.NewColumns
	// HTML inserts literal markup.
	HTML = layout.HTML
)

var defaultRenderer = div.New()

// NewRegistry returns a registry holding the div renderer and the table,
// list and paragraph modes, which always fail.
func NewRegistry(options ...div.Option) *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(div.New(options...))
	registry.MustRegister(div.Table())
	registry.MustRegister(div.List())
	registry.MustRegister(div.Paragraph())
	return registry
}

// RenderDiv renders form as nested <div> markup following its layout.
func RenderDiv(ctx context.Context, form Form, options ...RenderOptions) (string, error) {
	return defaultRenderer.RenderString(ctx, form, firstOptions(options))
}

// RenderTable always fails with render.ErrUnsupportedOutputMode.
func RenderTable(ctx context.Context, form Form) (string, error) {
	return renderUnsupported(ctx, div.Table(), form)
}

// RenderList always fails with render.ErrUnsupportedOutputMode.
func RenderList(ctx context.Context, form Form) (string, error) {
	return renderUnsupported(ctx, div.List(), form)
}

// RenderParagraph always fails with render.ErrUnsupportedOutputMode.
func RenderParagraph(ctx context.Context, form Form) (string, error) {
	return renderUnsupported(ctx, div.Paragraph(), form)
}

func renderUnsupported(ctx context.Context, renderer render.Renderer, form Form) (string, error) {
	out, err := renderer.Render(ctx, form, RenderOptions{})
	return string(out), err
}

func firstOptions(options []RenderOptions) RenderOptions {
	if len(options) == 0 {
		return RenderOptions{}
	}
	return options[0]
}
