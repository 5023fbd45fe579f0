package div

import "github.com/goliatone/go-formlayout/pkg/layout"

// Theme token keys consulted through render.RenderOptions.Theme. The column
// keys are shared with the layout package.
const (
	ClassField        = "formlayout.field.class"
	ClassErrors       = "formlayout.errors.class"
	ClassHelp         = "formlayout.help.class"
	ClassInput        = "formlayout.input.class"
	ClassColumns      = layout.ClassColumns
	ClassColumnRegion = layout.ClassColumnRegion
	ClassColumnFirst  = layout.ClassColumnFirst
)

// Default*Class values apply when the theme does not define the token.
const (
	DefaultFieldClass  = "field"
	DefaultErrorsClass = "errors"
	DefaultHelpClass   = "help_text"
	DefaultInputClass  = "input"
)

// RequiredClass is appended to the wrapper class of required fields.
const RequiredClass = "Required"
