package render

import (
	"context"

	"github.com/goliatone/go-formlayout/pkg/layout"
)

// Renderer converts a bound form into markup for one output mode.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, options RenderOptions) ([]byte, error)
}

// BoundField is the per-field view renderers consume. Widget markup is
// pre-rendered by the form library and treated as trusted.
type BoundField interface {
	Name() string
	Label() string
	HelpText() string
	Required() bool
	Errors() []string
	IsHidden() bool
	WidgetHTML() (string, error)
	FieldTypeName() string
	WidgetTypeName() string
	// LabelTag wraps an already escaped label, typically in a <label> tag
	// bound to the widget id. An empty result means no label.
	LabelTag(escapedLabel string) string
}

// Form is the field collaborator a renderer walks. FieldNames reports the
// declaration order; Layout reports an explicit layout when one is declared.
type Form interface {
	Field(name string) (BoundField, bool)
	FieldNames() []string
	Layout() (layout.Layout, bool)
}

// NonFieldErrorer is implemented by forms carrying errors that belong to the
// form as a whole rather than to a single field.
type NonFieldErrorer interface {
	NonFieldErrors() []string
}
