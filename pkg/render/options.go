package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form.
type RenderOptions struct {
	// Separator joins the fragments of every node sequence. Empty by default.
	Separator string
	// HiddenFields are emitted in the output prefix, ahead of the hidden
	// fields declared on the form (CSRF tokens, version fields).
	HiddenFields []HiddenField
	// Errors carries form-level messages rendered in the top error list
	// alongside the form's own non-field errors.
	Errors []string
	// Theme supplies class name tokens (see the div renderer's class keys).
	// A nil theme keeps the built-in YUI grid classes.
	Theme *theme.RendererConfig
}

// Token returns the theme token for key, or fallback when the theme does not
// define it.
func (o RenderOptions) Token(key, fallback string) string {
	if o.Theme == nil || len(o.Theme.Tokens) == 0 {
		return fallback
	}
	if value, ok := o.Theme.Tokens[key]; ok {
		return value
	}
	return fallback
}
