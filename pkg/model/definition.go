package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/render"
)

// ErrDuplicateField is returned when a builder declares a field name twice.
var ErrDuplicateField = errors.New("model: duplicate field")

// Definition is an immutable, ordered form declaration.
type Definition struct {
	name      string
	fields    []Field
	index     map[string]int
	layout    layout.Layout
	hasLayout bool
}

// Name returns the form name.
func (d *Definition) Name() string { return d.name }

// Fields returns the declared fields in declaration order.
func (d *Definition) Fields() []Field {
	return append([]Field(nil), d.fields...)
}

// Field looks up a declared field.
func (d *Definition) Field(name string) (Field, bool) {
	idx, ok := d.index[name]
	if !ok {
		return Field{}, false
	}
	return d.fields[idx], true
}

// Names returns the declared field names in declaration order.
func (d *Definition) Names() []string {
	names := make([]string, len(d.fields))
	for i, field := range d.fields {
		names[i] = field.Name
	}
	return names
}

// Layout returns the explicit layout, reporting false when none was declared.
func (d *Definition) Layout() (layout.Layout, bool) {
	if !d.hasLayout {
		return nil, false
	}
	return append(layout.Layout(nil), d.layout...), true
}

// Extend starts a builder for a child form. The parent's fields come first;
// a child field with the same name replaces the parent entry in place. The
// parent's layout is kept unless the child declares its own.
func (d *Definition) Extend(name string) *Builder {
	b := NewBuilder(name)
	b.fields = append(b.fields, d.fields...)
	b.inherited = make(map[string]struct{}, len(d.fields))
	for _, field := range d.fields {
		b.inherited[field.Name] = struct{}{}
	}
	if d.hasLayout {
		b.layout = append(layout.Layout(nil), d.layout...)
		b.hasLayout = true
	}
	return b
}

// Builder assembles a Definition. Errors are collected and reported by
// Build so calls can be chained.
type Builder struct {
	name      string
	fields    []Field
	inherited map[string]struct{}
	layout    layout.Layout
	hasLayout bool
	errs      []error
}

// NewBuilder starts an empty definition.
func NewBuilder(name string) *Builder {
	return &Builder{name: strings.TrimSpace(name)}
}

// Fields appends field declarations. A field without a kind is a CharField
// and a field without a widget gets its kind's default widget.
func (b *Builder) Fields(fields ...Field) *Builder {
	for _, field := range fields {
		if field.Name == "" {
			b.errs = append(b.errs, errors.New("model: field name required"))
			continue
		}
		if field.Kind == "" {
			field.Kind = KindChar
		}
		if field.Widget == nil {
			field.Widget = field.Kind.DefaultWidget()
		}
		if _, ok := b.inherited[field.Name]; ok {
			delete(b.inherited, field.Name)
			b.fields[b.position(field.Name)] = field
			continue
		}
		if b.position(field.Name) >= 0 {
			b.errs = append(b.errs, fmt.Errorf("%w %q in form %q", ErrDuplicateField, field.Name, b.name))
			continue
		}
		b.fields = append(b.fields, field)
	}
	return b
}

// Layout declares the explicit layout tree. Calling it with no nodes
// declares an empty layout, which renders every field after it.
func (b *Builder) Layout(nodes ...layout.Node) *Builder {
	b.layout = append(layout.Layout(nil), nodes...)
	b.hasLayout = true
	return b
}

// Build validates the declarations and returns the definition. A layout
// that cannot be walked fails with *render.InvalidLayoutError; references
// to undeclared fields are only detected when rendering.
func (b *Builder) Build() (*Definition, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if b.hasLayout {
		if err := layout.Validate(b.layout); err != nil {
			return nil, &render.InvalidLayoutError{Reason: fmt.Sprintf("form %q", b.name), Err: err}
		}
	}

	def := &Definition{
		name:      b.name,
		fields:    append([]Field(nil), b.fields...),
		index:     make(map[string]int, len(b.fields)),
		layout:    append(layout.Layout(nil), b.layout...),
		hasLayout: b.hasLayout,
	}
	for i, field := range def.fields {
		def.index[field.Name] = i
	}
	return def, nil
}

// MustBuild is Build that panics on error, for package-level declarations.
func (b *Builder) MustBuild() *Definition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

func (b *Builder) position(name string) int {
	for i, field := range b.fields {
		if field.Name == name {
			return i
		}
	}
	return -1
}
