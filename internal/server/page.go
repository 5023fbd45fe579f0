package server

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Page wraps a rendered form in a minimal document posting back to action.
func Page(title, action string, form templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>" +
			html.EscapeString(title) + "</title></head><body>\n" +
			"<form method=\"post\" action=\"" + html.EscapeString(action) + "\">\n"
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := form.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "<button type=\"submit\">Submit</button>\n</form>\n</body></html>\n")
		return err
	})
}
