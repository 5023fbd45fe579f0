package layout

import (
	"strings"
)

// Class keys a Walker resolves when containers build their markup.
const (
	ClassColumns      = "formlayout.columns.class"
	ClassColumnRegion = "formlayout.columns.region"
	ClassColumnFirst  = "formlayout.columns.first"
)

// Default class names follow the YUI grid conventions.
const (
	DefaultColumnsClass = "yui-g"
	DefaultRegionClass  = "yui-u"
	DefaultFirstClass   = "first"
)

// Node is a single element of a Layout. The set of implementations is closed:
// FieldRef, Group, Columns and RawHTML.
type Node interface {
	layoutNode()
}

// Container is implemented by every node that renders its own markup.
type Container interface {
	Node
	AsHTML(w Walker) (string, error)
}

// Walker renders child sequences on behalf of containers. Renderers implement
// it to thread their per-pass state through the recursion.
type Walker interface {
	RenderNodes(nodes []Node) (string, error)
	Class(key, fallback string) string
}

// Layout is the ordered sequence of nodes describing a form body.
type Layout []Node

// FieldRef references a declared field by name.
type FieldRef string

func (FieldRef) layoutNode() {}

// Name returns the referenced field name.
func (f FieldRef) Name() string {
	return string(f)
}

// Field builds a FieldRef.
func Field(name string) FieldRef {
	return FieldRef(name)
}

// Fields converts field names into a node sequence, the usual shape of a
// Columns region.
func Fields(names ...string) []Node {
	out := make([]Node, 0, len(names))
	for _, name := range names {
		out = append(out, FieldRef(name))
	}
	return out
}

// Group renders its children inside a <fieldset>. A non-empty caption renders
// as the fieldset legend; it is trusted markup and is not escaped.
type Group struct {
	Caption  string
	Children []Node
}

func (Group) layoutNode() {}

// NewGroup builds a Group with the supplied caption and children.
func NewGroup(caption string, children ...Node) Group {
	return Group{Caption: caption, Children: children}
}

// AsHTML renders the fieldset and recurses into the children.
func (g Group) AsHTML(w Walker) (string, error) {
	body, err := w.RenderNodes(g.Children)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.Grow(len(body) + len(g.Caption) + 40)
	builder.WriteString("<fieldset>")
	if g.Caption != "" {
		builder.WriteString("<legend>")
		builder.WriteString(g.Caption)
		builder.WriteString("</legend>")
	}
	builder.WriteString(body)
	builder.WriteString("</fieldset>")
	return builder.String(), nil
}

// Columns renders a row of side-by-side regions. Each region is itself a node
// sequence. Class overrides the outer grid class; empty means the walker's
// default.
type Columns struct {
	Regions [][]Node
	Class   string
}

func (Columns) layoutNode() {}

// NewColumns builds a Columns node from the supplied regions.
func NewColumns(regions ...[]Node) Columns {
	return Columns{Regions: regions}
}

// WithClass returns a copy of the node using class for the outer wrapper.
func (c Columns) WithClass(class string) Columns {
	c.Class = class
	return c
}

// AsHTML renders the outer grid wrapper and one region wrapper per column.
// Only the first region carries the "first" marker class.
func (c Columns) AsHTML(w Walker) (string, error) {
	outer := strings.TrimSpace(c.Class)
	if outer == "" {
		outer = w.Class(ClassColumns, DefaultColumnsClass)
	}
	region := w.Class(ClassColumnRegion, DefaultRegionClass)
	first := w.Class(ClassColumnFirst, DefaultFirstClass)

	var builder strings.Builder
	builder.WriteString(`<div class="`)
	builder.WriteString(outer)
	builder.WriteString(`">`)

	for idx, nodes := range c.Regions {
		content, err := w.RenderNodes(nodes)
		if err != nil {
			return "", err
		}
		builder.WriteString(`<div class="`)
		builder.WriteString(region)
		if idx == 0 && first != "" {
			builder.WriteByte(' ')
			builder.WriteString(first)
		}
		builder.WriteString(`">`)
		builder.WriteString(content)
		builder.WriteString("</div>")
	}

	builder.WriteString("</div>")
	return builder.String(), nil
}

// RawHTML is passed through verbatim.
type RawHTML string

func (RawHTML) layoutNode() {}

// HTML builds a RawHTML node.
func HTML(content string) RawHTML {
	return RawHTML(content)
}

// AsHTML returns the content unchanged.
func (r RawHTML) AsHTML(Walker) (string, error) {
	return string(r), nil
}

var (
	_ Container = Group{}
	_ Container = Columns{}
	_ Container = RawHTML("")
)
