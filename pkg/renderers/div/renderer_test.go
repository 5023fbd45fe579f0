package div

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/render"
)

type stubField struct {
	name       string
	label      string
	help       string
	required   bool
	hidden     bool
	errors     []string
	fieldType  string
	widgetType string
	widget     string
	widgetErr  error
}

func (f *stubField) Name() string           { return f.name }
func (f *stubField) Label() string          { return f.label }
func (f *stubField) HelpText() string       { return f.help }
func (f *stubField) Required() bool         { return f.required }
func (f *stubField) Errors() []string       { return f.errors }
func (f *stubField) IsHidden() bool         { return f.hidden }
func (f *stubField) FieldTypeName() string  { return f.fieldType }
func (f *stubField) WidgetTypeName() string { return f.widgetType }

func (f *stubField) WidgetHTML() (string, error) {
	if f.widgetErr != nil {
		return "", f.widgetErr
	}
	if f.widget != "" {
		return f.widget, nil
	}
	return `<input name="` + f.name + `" />`, nil
}

func (f *stubField) LabelTag(escaped string) string {
	return `<label for="id_` + f.name + `">` + escaped + `</label>`
}

type stubForm struct {
	fields    map[string]*stubField
	order     []string
	nodes     layout.Layout
	hasLayout bool
	nonField  []string
}

func newStubForm(fields ...*stubField) *stubForm {
	form := &stubForm{fields: make(map[string]*stubField)}
	for _, field := range fields {
		if field.fieldType == "" {
			field.fieldType = "CharField"
		}
		if field.widgetType == "" {
			field.widgetType = "TextInput"
		}
		form.fields[field.name] = field
		form.order = append(form.order, field.name)
	}
	return form
}

func (f *stubForm) withLayout(nodes ...layout.Node) *stubForm {
	f.nodes = nodes
	f.hasLayout = true
	return f
}

func (f *stubForm) Field(name string) (render.BoundField, bool) {
	field, ok := f.fields[name]
	if !ok {
		return nil, false
	}
	return field, true
}

func (f *stubForm) FieldNames() []string          { return f.order }
func (f *stubForm) Layout() (layout.Layout, bool) { return f.nodes, f.hasLayout }
func (f *stubForm) NonFieldErrors() []string      { return f.nonField }

func mustRender(t *testing.T, r *Renderer, form render.Form, opts render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func contactForm() *stubForm {
	return newStubForm(
		&stubField{name: "name", label: "Name", required: true},
		&stubField{name: "email", label: "Email", fieldType: "EmailField", errors: []string{"Invalid address"}},
	)
}

func TestRender_ColumnsExample(t *testing.T) {
	form := contactForm().withLayout(layout.NewColumns(layout.Fields("name"), layout.Fields("email")))

	got := mustRender(t, New(), form, render.RenderOptions{})
	want := `<div class="yui-g">` +
		`<div class="yui-u first"><div class="field CharField TextInput Required"><label for="id_name">Name</label><div class="input"><input name="name" /></div></div>` + "\n" + `</div>` +
		`<div class="yui-u"><div class="field EmailField TextInput"><label for="id_email">Email</label><ul class="errors"><li>Invalid address</li></ul><div class="input"><input name="email" /></div></div>` + "\n" + `</div>` +
		`</div>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_GroupWrapsColumns(t *testing.T) {
	columns := layout.NewColumns(layout.Fields("name"), layout.Fields("email"))
	grouped := contactForm().withLayout(layout.NewGroup("Person", columns))
	plain := contactForm().withLayout(columns)

	renderer := New()
	inner := mustRender(t, renderer, plain, render.RenderOptions{})
	got := mustRender(t, renderer, grouped, render.RenderOptions{})

	want := "<fieldset><legend>Person</legend>" + inner + "</fieldset>"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	untitled := contactForm().withLayout(layout.NewGroup("", layout.Field("name"), layout.Field("email")))
	if out := mustRender(t, renderer, untitled, render.RenderOptions{}); strings.Contains(out, "<legend>") {
		t.Fatalf("empty caption must not render a legend: %s", out)
	}
}

func TestRender_HiddenFieldHoisted(t *testing.T) {
	form := newStubForm(
		&stubField{name: "name", label: "Name"},
		&stubField{name: "token", hidden: true, widgetType: "HiddenInput", widget: `<input type="hidden" name="token" />`},
	)

	got := mustRender(t, New(), form, render.RenderOptions{})
	want := `<input type="hidden" name="token" />` +
		`<div class="field CharField TextInput"><label for="id_name">Name</label><div class="input"><input name="name" /></div></div>` + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(got, `class="errors"`) {
		t.Fatalf("hidden field without errors must not add a top error list")
	}
}

func TestRender_HiddenFieldErrorsGoToTopList(t *testing.T) {
	form := newStubForm(
		&stubField{name: "name", label: "Name", errors: []string{"Required"}},
		&stubField{name: "token", hidden: true, widget: `<input type="hidden" name="token" />`, errors: []string{"Bad <token>"}},
	).withLayout(layout.Field("name"), layout.Field("token"))

	got := mustRender(t, New(), form, render.RenderOptions{})
	wantPrefix := `<input type="hidden" name="token" /><ul class="errors"><li>Bad &lt;token&gt;</li></ul><div class="field`
	if !strings.HasPrefix(got, wantPrefix) {
		t.Fatalf("expected hoisted widget and top errors, got %s", got)
	}
	if strings.Count(got, "Bad &lt;token&gt;") != 1 {
		t.Fatalf("hidden field error must appear exactly once: %s", got)
	}
	if !strings.Contains(got, `<ul class="errors"><li>Required</li></ul><div class="input">`) {
		t.Fatalf("visible field errors must stay inline: %s", got)
	}
}

func TestRender_TopErrorOrder(t *testing.T) {
	form := newStubForm(
		&stubField{name: "token", hidden: true, widget: `<input type="hidden" name="token" />`, errors: []string{"hidden"}},
	)
	form.nonField = []string{"form"}

	got := mustRender(t, New(), form, render.RenderOptions{
		Errors:       []string{"request"},
		HiddenFields: []render.HiddenField{render.CSRFToken("_csrf", "xyz")},
	})
	want := `<input type="hidden" name="_csrf" value="xyz" />` +
		`<input type="hidden" name="token" />` +
		`<ul class="errors"><li>request</li><li>form</li><li>hidden</li></ul>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_TopErrorsMergeRequestAndFormErrors(t *testing.T) {
	form := newStubForm(&stubField{name: "name", label: "Name"})
	form.nonField = []string{"Try again", "Locked"}

	got := mustRender(t, New(), form, render.RenderOptions{
		Errors: []string{" Save failed ", "Try again", "  "},
	})
	want := `<ul class="errors"><li>Save failed</li><li>Try again</li><li>Locked</li></ul>`
	if !strings.HasPrefix(got, want) {
		t.Fatalf("top errors mismatch:\nwant prefix %s\ngot %s", want, got)
	}
}

func TestRender_DefaultLayoutFollowsDeclarationOrder(t *testing.T) {
	form := newStubForm(
		&stubField{name: "zeta", label: "Zeta"},
		&stubField{name: "alpha", label: "Alpha"},
		&stubField{name: "mid", label: "Mid"},
	)

	got := mustRender(t, New(), form, render.RenderOptions{})
	assertOrder(t, got, `name="zeta"`, `name="alpha"`, `name="mid"`)
}

func TestRender_MissingFieldsAppendedInDeclarationOrder(t *testing.T) {
	form := newStubForm(
		&stubField{name: "a", label: "A"},
		&stubField{name: "b", label: "B"},
		&stubField{name: "c", label: "C"},
		&stubField{name: "d", label: "D"},
	).withLayout(layout.NewGroup("Last", layout.Field("c")))

	got := mustRender(t, New(), form, render.RenderOptions{})
	assertOrder(t, got, `name="c"`, "</fieldset>", `name="a"`, `name="b"`, `name="d"`)
	for _, name := range []string{"a", "b", "c", "d"} {
		if n := strings.Count(got, `name="`+name+`"`); n != 1 {
			t.Fatalf("field %s rendered %d times", name, n)
		}
	}
}

func TestRender_EmptyExplicitLayoutRendersEverything(t *testing.T) {
	form := contactForm().withLayout()
	got := mustRender(t, New(), form, render.RenderOptions{})
	assertOrder(t, got, `name="name"`, `name="email"`)
}

func TestRender_OrderPreservedAcrossNesting(t *testing.T) {
	form := newStubForm(
		&stubField{name: "a", label: "A"},
		&stubField{name: "b", label: "B"},
		&stubField{name: "c", label: "C"},
	).withLayout(
		layout.HTML("<p>intro</p>"),
		layout.NewColumns(
			[]layout.Node{layout.NewGroup("Left", layout.Field("c"))},
			layout.Fields("a"),
		),
		layout.Field("b"),
		layout.HTML("<p>outro</p>"),
	)

	got := mustRender(t, New(), form, render.RenderOptions{})
	if !strings.HasPrefix(got, "<p>intro</p>") || !strings.HasSuffix(got, "<p>outro</p>") {
		t.Fatalf("raw html must pass through verbatim: %s", got)
	}
	assertOrder(t, got, "<p>intro</p>", "<legend>Left</legend>", `name="c"`, `name="a"`, `name="b"`, "<p>outro</p>")
}

func TestRender_IsIdempotentAndConcurrent(t *testing.T) {
	form := newStubForm(
		&stubField{name: "name", label: "Name"},
		&stubField{name: "token", hidden: true, widget: `<input type="hidden" name="token" />`, errors: []string{"stale"}},
	).withLayout(layout.NewGroup("G", layout.Field("name")))

	renderer := New()
	first := mustRender(t, renderer, form, render.RenderOptions{})
	second := mustRender(t, renderer, form, render.RenderOptions{})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second render differs (-first +second):\n%s", diff)
	}

	var wg sync.WaitGroup
	results := make([]string, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := renderer.RenderString(context.Background(), form, render.RenderOptions{})
			results[i], errs[i] = out, err
		}(i)
	}
	wg.Wait()
	for i := range results {
		if errs[i] != nil {
			t.Fatalf("render %d: %v", i, errs[i])
		}
		if results[i] != first {
			t.Fatalf("concurrent render %d differs", i)
		}
	}
}

func TestRender_UnknownFieldFailsClosed(t *testing.T) {
	form := contactForm().withLayout(
		layout.Field("name"),
		layout.NewGroup("Deep", layout.NewColumns(layout.Fields("email"), layout.Fields("ghost"))),
	)

	out, err := New().Render(context.Background(), form, render.RenderOptions{})
	if out != nil {
		t.Fatalf("expected no output, got %q", out)
	}
	var missing *render.NoSuchFieldError
	if !errors.As(err, &missing) || missing.Name != "ghost" {
		t.Fatalf("expected NoSuchFieldError for ghost, got %v", err)
	}
	if !errors.Is(err, render.ErrNoSuchField) {
		t.Fatalf("expected ErrNoSuchField match")
	}
}

func TestRender_InvalidLayout(t *testing.T) {
	cases := map[string]layout.Layout{
		"nil node":        {layout.Field("name"), nil},
		"nested nil node": {layout.NewGroup("G", layout.NewColumns([]layout.Node{nil}))},
	}
	for name, nodes := range cases {
		t.Run(name, func(t *testing.T) {
			form := contactForm().withLayout(nodes...)
			_, err := New().Render(context.Background(), form, render.RenderOptions{})
			if !errors.Is(err, render.ErrInvalidLayout) {
				t.Fatalf("expected invalid layout error, got %v", err)
			}
		})
	}
}

func TestRender_EscapesLabelsHelpAndErrors(t *testing.T) {
	form := newStubForm(&stubField{
		name:   "q",
		label:  "Q & <A>",
		help:   `Use "quotes"`,
		errors: []string{"<script>"},
	})

	got := mustRender(t, New(), form, render.RenderOptions{})
	want := `<div class="field CharField TextInput"><label for="id_q">Q &amp; &lt;A&gt;</label>` +
		`<span class="help_text">Use &#34;quotes&#34;</span>` +
		`<ul class="errors"><li>&lt;script&gt;</li></ul>` +
		`<div class="input"><input name="q" /></div></div>` + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_NoLabel(t *testing.T) {
	form := newStubForm(&stubField{name: "q"})
	got := mustRender(t, New(), form, render.RenderOptions{})
	if strings.Contains(got, "<label") {
		t.Fatalf("empty label must not render a label tag: %s", got)
	}
}

func TestRender_Separator(t *testing.T) {
	form := newStubForm(
		&stubField{name: "a", widget: "A", label: ""},
		&stubField{name: "b", widget: "B", label: ""},
	).withLayout(layout.HTML("x"), layout.HTML("y"))

	got := mustRender(t, New(WithSeparator("|")), form, render.RenderOptions{})
	if !strings.HasPrefix(got, "x|y") {
		t.Fatalf("expected renderer separator, got %q", got)
	}
	got = mustRender(t, New(WithSeparator("|")), form, render.RenderOptions{Separator: "+"})
	if !strings.HasPrefix(got, "x+y") {
		t.Fatalf("expected per-call separator to win, got %q", got)
	}
}

func TestRender_ThemeTokens(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme: "acme",
		Tokens: map[string]string{
			ClassColumns:      "grid",
			ClassColumnRegion: "col",
			ClassColumnFirst:  "",
			ClassField:        "form-row",
			ClassInput:        "control",
		},
	}
	form := contactForm().withLayout(layout.NewColumns(layout.Fields("name"), layout.Fields("email")))

	got := mustRender(t, New(WithTheme(cfg)), form, render.RenderOptions{})
	for _, fragment := range []string{
		`<div class="grid"><div class="col"><div class="form-row CharField`,
		`<div class="control"><input name="name" />`,
		`<ul class="errors">`,
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in %s", fragment, got)
		}
	}

	explicit := contactForm().withLayout(layout.NewColumns(layout.Fields("name")).WithClass("yui-gc"))
	got = mustRender(t, New(), explicit, render.RenderOptions{Theme: cfg})
	if !strings.HasPrefix(got, `<div class="yui-gc">`) {
		t.Fatalf("explicit class must win over theme: %s", got)
	}
}

func TestRender_PropagatesWidgetErrors(t *testing.T) {
	boom := errors.New("boom")
	form := newStubForm(&stubField{name: "q", widgetErr: boom})
	if _, err := New().Render(context.Background(), form, render.RenderOptions{}); !errors.Is(err, boom) {
		t.Fatalf("expected widget error, got %v", err)
	}
}

func TestRender_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Render(ctx, contactForm(), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestUnsupportedModes(t *testing.T) {
	for _, renderer := range []*Unsupported{Table(), List(), Paragraph()} {
		out, err := renderer.Render(context.Background(), contactForm(), render.RenderOptions{})
		if out != nil {
			t.Fatalf("%s: expected no output", renderer.Name())
		}
		var unsupported *render.UnsupportedOutputModeError
		if !errors.As(err, &unsupported) || unsupported.Mode != renderer.Name() {
			t.Fatalf("%s: expected unsupported mode error, got %v", renderer.Name(), err)
		}
		if !errors.Is(err, render.ErrUnsupportedOutputMode) {
			t.Fatalf("%s: expected sentinel match", renderer.Name())
		}
	}
}

func TestComponentMatchesRender(t *testing.T) {
	form := contactForm().withLayout(layout.NewColumns(layout.Fields("name"), layout.Fields("email")))
	renderer := New()

	var buf bytes.Buffer
	if err := renderer.Component(form, render.RenderOptions{}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("component: %v", err)
	}
	if diff := cmp.Diff(mustRender(t, renderer, form, render.RenderOptions{}), buf.String()); diff != "" {
		t.Fatalf("component output mismatch (-want +got):\n%s", diff)
	}

	broken := contactForm().withLayout(layout.Field("ghost"))
	if err := renderer.Component(broken, render.RenderOptions{}).Render(context.Background(), &buf); !errors.Is(err, render.ErrNoSuchField) {
		t.Fatalf("expected component to surface render errors, got %v", err)
	}
}

func assertOrder(t *testing.T, output string, fragments ...string) {
	t.Helper()
	last := -1
	for _, fragment := range fragments {
		idx := strings.Index(output, fragment)
		if idx < 0 {
			t.Fatalf("fragment %q missing from %s", fragment, output)
		}
		if idx <= last {
			t.Fatalf("fragment %q out of order in %s", fragment, output)
		}
		last = idx
	}
}
