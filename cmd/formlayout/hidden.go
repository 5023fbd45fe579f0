package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlayout/pkg/render"
)

// hiddenFlags collects the hidden inputs emitted ahead of the form.
type hiddenFlags struct {
	csrf   string
	values map[string]string
}

func (h *hiddenFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&h.csrf, "csrf", "", "Emit a _csrf hidden input with this token")
	cmd.Flags().StringToStringVar(&h.values, "hidden", nil, "Extra hidden input as name=value (repeatable)")
}

// fields merges --hidden pairs with the CSRF token, sorted by name. The
// token wins over a --hidden pair of the same name.
func (h *hiddenFlags) fields() []render.HiddenField {
	var extra []render.HiddenField
	if h.csrf != "" {
		extra = append(extra, render.CSRFToken("_csrf", h.csrf))
	}
	return render.SortedHiddenFields(render.MergeHiddenFields(h.values, extra...))
}
