package formlayout

import (
	"io/fs"

	"github.com/goliatone/go-formlayout/pkg/widgets"
)

// EmbeddedTemplates exposes the built-in widget templates so callers can copy
// or extend them (see widgets.WithTemplatesFS) without importing the widgets
// package directly.
func EmbeddedTemplates() fs.FS {
	return widgets.TemplatesFS()
}
