package div

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formlayout/pkg/render"
)

// renderField renders one declared field. Hidden fields contribute their
// widget to the pass prefix and their errors to the top error list, and
// render nothing in place.
func (p *pass) renderField(name string) (string, error) {
	field, ok := p.form.Field(name)
	if !ok || field == nil {
		return "", &render.NoSuchFieldError{Name: name}
	}

	errs := field.Errors()

	widget, err := field.WidgetHTML()
	if err != nil {
		return "", fmt.Errorf("div: render widget for %q: %w", name, err)
	}

	if field.IsHidden() {
		p.prefix = append(p.prefix, widget)
		p.topErrors = append(p.topErrors, errs...)
		return "", nil
	}

	class := field.FieldTypeName() + " " + field.WidgetTypeName()
	if field.Required() {
		class += " " + RequiredClass
	}

	var builder strings.Builder
	builder.WriteString(`<div class="`)
	builder.WriteString(p.Class(ClassField, DefaultFieldClass))
	builder.WriteByte(' ')
	builder.WriteString(class)
	builder.WriteString(`">`)

	if label := field.Label(); label != "" {
		builder.WriteString(field.LabelTag(html.EscapeString(label)))
	}
	if help := field.HelpText(); help != "" {
		builder.WriteString(`<span class="`)
		builder.WriteString(p.Class(ClassHelp, DefaultHelpClass))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(help))
		builder.WriteString("</span>")
	}
	if len(errs) > 0 {
		builder.WriteString(p.errorList(escapeAll(errs)))
	}

	builder.WriteString(`<div class="`)
	builder.WriteString(p.Class(ClassInput, DefaultInputClass))
	builder.WriteString(`">`)
	builder.WriteString(widget)
	builder.WriteString("</div></div>\n")
	return builder.String(), nil
}
