package div

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/render"
)

// pass holds the state of a single Render call. It is created per call and
// threaded through the recursion so renders never share state.
type pass struct {
	form      render.Form
	options   render.RenderOptions
	rendered  map[string]struct{}
	prefix    []string
	topErrors []string
}

func newPass(form render.Form, options render.RenderOptions) *pass {
	return &pass{
		form:     form,
		options:  options,
		rendered: make(map[string]struct{}),
	}
}

// RenderNodes renders a node sequence joined by the configured separator.
// Containers render themselves and call back into RenderNodes for children.
func (p *pass) RenderNodes(nodes []layout.Node) (string, error) {
	fragments := make([]string, 0, len(nodes))
	for idx, node := range nodes {
		var (
			fragment string
			err      error
		)
		switch n := node.(type) {
		case layout.FieldRef:
			p.rendered[n.Name()] = struct{}{}
			fragment, err = p.renderField(n.Name())
		case layout.Container:
			fragment, err = n.AsHTML(p)
		case nil:
			err = &render.InvalidLayoutError{Reason: fmt.Sprintf("nil node at position %d", idx)}
		default:
			err = &render.InvalidLayoutError{Reason: fmt.Sprintf("unsupported node %T", node)}
		}
		if err != nil {
			return "", err
		}
		fragments = append(fragments, fragment)
	}
	return strings.Join(fragments, p.options.Separator), nil
}

// Class resolves a theme class token.
func (p *pass) Class(key, fallback string) string {
	return p.options.Token(key, fallback)
}

// missing lists declared fields the walk has not rendered, in declaration
// order.
func (p *pass) missing() []string {
	var out []string
	for _, name := range p.form.FieldNames() {
		if _, ok := p.rendered[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// errorList renders messages, which must already be escaped, as the error
// <ul>.
func (p *pass) errorList(escaped []string) string {
	return `<ul class="` + p.Class(ClassErrors, DefaultErrorsClass) + `"><li>` +
		strings.Join(escaped, "</li><li>") +
		"</li></ul>"
}

func escapeAll(messages []string) []string {
	out := make([]string, len(messages))
	for i, message := range messages {
		out[i] = html.EscapeString(message)
	}
	return out
}

var _ layout.Walker = (*pass)(nil)
