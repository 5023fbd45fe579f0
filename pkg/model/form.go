package model

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/render"
	"github.com/goliatone/go-formlayout/pkg/widgets"
)

// DefaultAutoID is the id format used when WithAutoID is not given.
const DefaultAutoID = "id_%s"

// Form is a Definition bound to submitted data and error messages. It
// satisfies render.Form and render.NonFieldErrorer.
type Form struct {
	def            *Definition
	data           map[string]any
	bound          bool
	rawErrors      map[string][]string
	fieldErrors    map[string][]string
	nonFieldErrors []string
	autoID         string
	prefix         string
	widgets        *widgets.Renderer
}

// BindOption configures Bind.
type BindOption func(*Form)

// WithData binds submitted values keyed by HTML name (prefixed when the form
// has a prefix). A bound form renders these values instead of initials.
func WithData(data map[string]any) BindOption {
	return func(f *Form) {
		f.data = data
		f.bound = true
	}
}

// WithErrors attaches validation messages. Keys may be bare field names,
// prefixed names, JSON pointers or dotted paths; keys that name no declared
// field become non-field errors.
func WithErrors(payload map[string][]string) BindOption {
	return func(f *Form) {
		f.rawErrors = payload
	}
}

// WithAutoID sets the element id format. A format containing %s receives
// the HTML name; any other non-empty value uses the HTML name verbatim; an
// empty format renders no ids and no <label for>.
func WithAutoID(format string) BindOption {
	return func(f *Form) {
		f.autoID = format
	}
}

// WithPrefix namespaces HTML names as "prefix-name".
func WithPrefix(prefix string) BindOption {
	return func(f *Form) {
		f.prefix = strings.TrimSpace(prefix)
	}
}

// WithWidgetRenderer overrides the renderer used for widget markup.
func WithWidgetRenderer(renderer *widgets.Renderer) BindOption {
	return func(f *Form) {
		f.widgets = renderer
	}
}

// Bind creates a form instance over the definition.
func (d *Definition) Bind(options ...BindOption) *Form {
	form := &Form{def: d, autoID: DefaultAutoID}
	for _, opt := range options {
		if opt != nil {
			opt(form)
		}
	}
	if len(form.rawErrors) > 0 {
		mapping := render.MapErrorPayload(d.Names(), form.rawErrors)
		form.fieldErrors = mapping.Fields
		form.nonFieldErrors = mapping.Form
	}
	return form
}

// Definition returns the declaration the form is bound to.
func (f *Form) Definition() *Definition { return f.def }

// IsBound reports whether submitted data was supplied.
func (f *Form) IsBound() bool { return f.bound }

// Prefix returns the HTML name prefix.
func (f *Form) Prefix() string { return f.prefix }

// Field implements render.Form.
func (f *Form) Field(name string) (render.BoundField, bool) {
	field, ok := f.def.Field(name)
	if !ok {
		return nil, false
	}
	return &BoundField{form: f, field: field}, true
}

// FieldNames implements render.Form.
func (f *Form) FieldNames() []string { return f.def.Names() }

// Layout implements render.Form.
func (f *Form) Layout() (layout.Layout, bool) { return f.def.Layout() }

// NonFieldErrors returns messages that belong to the whole form.
func (f *Form) NonFieldErrors() []string {
	return append([]string(nil), f.nonFieldErrors...)
}

// HTMLName returns the submitted name of a field.
func (f *Form) HTMLName(name string) string {
	if f.prefix == "" {
		return name
	}
	return f.prefix + "-" + name
}

// Value returns the value a field renders: the bound value for bound forms,
// the declared initial otherwise.
func (f *Form) Value(name string) any {
	field, ok := f.def.Field(name)
	if !ok {
		return nil
	}
	if f.bound {
		return f.data[f.HTMLName(name)]
	}
	return field.Initial
}

func (f *Form) widgetRenderer() (*widgets.Renderer, error) {
	if f.widgets != nil {
		return f.widgets, nil
	}
	return widgets.DefaultRenderer()
}

// BoundField pairs a declared field with its form's data and errors.
type BoundField struct {
	form  *Form
	field Field
}

func (b *BoundField) Name() string           { return b.field.Name }
func (b *BoundField) Label() string          { return b.field.DisplayLabel() }
func (b *BoundField) HelpText() string       { return b.field.HelpText }
func (b *BoundField) Required() bool         { return b.field.Required }
func (b *BoundField) IsHidden() bool         { return b.field.Widget.IsHidden() }
func (b *BoundField) FieldTypeName() string  { return string(b.field.Kind) }
func (b *BoundField) WidgetTypeName() string { return b.field.Widget.TypeName() }

func (b *BoundField) Errors() []string {
	return append([]string(nil), b.form.fieldErrors[b.field.Name]...)
}

// HTMLName returns the prefixed submitted name.
func (b *BoundField) HTMLName() string { return b.form.HTMLName(b.field.Name) }

// ID returns the element id, or "" when auto ids are disabled.
func (b *BoundField) ID() string {
	format := b.form.autoID
	switch {
	case format == "":
		return ""
	case strings.Contains(format, "%s"):
		return fmt.Sprintf(format, b.HTMLName())
	default:
		return b.HTMLName()
	}
}

// LabelTag wraps the escaped label in a <label> pointing at the widget id.
func (b *BoundField) LabelTag(escapedLabel string) string {
	id := b.ID()
	if id == "" {
		return escapedLabel
	}
	return `<label for="` + html.EscapeString(id) + `">` + escapedLabel + `</label>`
}

// WidgetHTML renders the field's input control.
func (b *BoundField) WidgetHTML() (string, error) {
	renderer, err := b.form.widgetRenderer()
	if err != nil {
		return "", err
	}
	return renderer.Render(b.field.Widget, widgets.Context{
		Name:    b.HTMLName(),
		ID:      b.ID(),
		Value:   b.form.Value(b.field.Name),
		Choices: b.field.Choices,
	})
}
