package div

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/goliatone/go-formlayout/pkg/render"
)

// Component adapts a render into a templ.Component so forms can be embedded
// in templ pages. The form is rendered when the component is, using the
// component's context.
func (r *Renderer) Component(form render.Form, options render.RenderOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := r.Render(ctx, form, options)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	})
}
