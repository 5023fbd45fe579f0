package div

import (
	"context"

	"github.com/goliatone/go-formlayout/pkg/render"
)

// Output modes that exist only to fail explicitly.
const (
	ModeTable     = "table"
	ModeList      = "ul"
	ModeParagraph = "p"
)

// Unsupported is a registry entry for an output mode the layout renderer
// cannot produce. Every Render call fails with
// *render.UnsupportedOutputModeError.
type Unsupported struct {
	mode string
}

// Table returns the placeholder for <table> output.
func Table() *Unsupported { return &Unsupported{mode: ModeTable} }

// List returns the placeholder for <ul> output.
func List() *Unsupported { return &Unsupported{mode: ModeList} }

// Paragraph returns the placeholder for <p> output.
func Paragraph() *Unsupported { return &Unsupported{mode: ModeParagraph} }

func (u *Unsupported) Name() string        { return u.mode }
func (u *Unsupported) ContentType() string { return "text/html; charset=utf-8" }

func (u *Unsupported) Render(context.Context, render.Form, render.RenderOptions) ([]byte, error) {
	return nil, &render.UnsupportedOutputModeError{Mode: u.mode}
}

var _ render.Renderer = (*Unsupported)(nil)
