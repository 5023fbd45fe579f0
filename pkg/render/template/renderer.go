package template

import (
	"io"
)

// TemplateRenderer is the engine contract widget rendering depends on. The
// gotemplate package provides the go-template implementation.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
