package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/model"
	"github.com/goliatone/go-formlayout/pkg/render"
	"github.com/goliatone/go-formlayout/pkg/widgets"
)

func TestPrettyName(t *testing.T) {
	cases := map[string]string{
		"first_name":  "First name",
		"firstName":   "First name",
		"email":       "Email",
		"address-2":   "Address 2",
		"ZIPCode":     "Zipcode",
		"":            "",
		"__":          "",
		"street line": "Street line",
	}
	for input, want := range cases {
		if got := model.PrettyName(input); got != want {
			t.Errorf("PrettyName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFieldDefaults(t *testing.T) {
	name := model.CharField("first_name")
	if !name.Required || name.DisplayLabel() != "First name" {
		t.Fatalf("unexpected defaults: %+v", name)
	}
	if name.Widget.TypeName() != widgets.TypeTextInput {
		t.Fatalf("expected TextInput widget, got %s", name.Widget.TypeName())
	}

	agree := model.BooleanField("agree")
	if agree.Required {
		t.Fatalf("boolean fields are optional by default")
	}
	if agree.Widget.TypeName() != widgets.TypeCheckboxInput {
		t.Fatalf("expected checkbox, got %s", agree.Widget.TypeName())
	}

	hidden := model.CharField("token", model.WithoutLabel(), model.WithWidget(widgets.HiddenInput{}))
	if hidden.DisplayLabel() != "" || !hidden.Widget.IsHidden() {
		t.Fatalf("unexpected hidden field: %+v", hidden)
	}

	color := model.ChoiceField("color", []widgets.Choice{{Value: "r", Label: "Red"}}, model.Optional())
	if color.Required || len(color.Choices) != 1 || color.Widget.TypeName() != widgets.TypeSelect {
		t.Fatalf("unexpected choice field: %+v", color)
	}

	if kind, ok := model.ParseKind("emailfield"); !ok || kind != model.KindEmail {
		t.Fatalf("ParseKind failed: %q %v", kind, ok)
	}
	if _, ok := model.ParseKind("DateField"); ok {
		t.Fatalf("unexpected kind match")
	}
}

func TestBuilderDefaultsStructLiteralFields(t *testing.T) {
	def := model.NewBuilder("literal").
		Fields(
			model.Field{Name: "x", Kind: model.KindChar},
			model.Field{Name: "y"},
			model.Field{Name: "z", Kind: model.KindBoolean},
		).
		MustBuild()

	want := map[string]struct {
		kind   model.Kind
		widget string
	}{
		"x": {model.KindChar, widgets.TypeTextInput},
		"y": {model.KindChar, widgets.TypeTextInput},
		"z": {model.KindBoolean, widgets.TypeCheckboxInput},
	}
	for name, expected := range want {
		field, ok := def.Field(name)
		if !ok {
			t.Fatalf("field %s missing", name)
		}
		if field.Kind != expected.kind || field.Widget == nil || field.Widget.TypeName() != expected.widget {
			t.Fatalf("field %s: got kind %q widget %v", name, field.Kind, field.Widget)
		}
	}

	bound, _ := def.Bind().Field("x")
	got, err := bound.WidgetHTML()
	if err != nil {
		t.Fatalf("widget: %v", err)
	}
	if got != `<input type="text" name="x" id="id_x" />` {
		t.Fatalf("unexpected widget %q", got)
	}
}

func TestBuilderOrderAndLayout(t *testing.T) {
	def, err := model.NewBuilder("contact").
		Fields(model.CharField("name"), model.EmailField("email")).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "email"}, def.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, ok := def.Layout(); ok {
		t.Fatalf("expected no explicit layout")
	}

	withLayout, err := model.NewBuilder("contact").
		Fields(model.CharField("name")).
		Layout(layout.NewGroup("Person", layout.Field("name"))).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	nodes, ok := withLayout.Layout()
	if !ok || len(nodes) != 1 {
		t.Fatalf("expected explicit layout, got %v %v", nodes, ok)
	}
}

func TestBuilderRejectsDuplicatesAndBadLayouts(t *testing.T) {
	_, err := model.NewBuilder("dup").
		Fields(model.CharField("name"), model.CharField("name")).
		Build()
	if !errors.Is(err, model.ErrDuplicateField) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	_, err = model.NewBuilder("bad").
		Fields(model.CharField("name")).
		Layout(layout.NewGroup("G", nil)).
		Build()
	if !errors.Is(err, render.ErrInvalidLayout) {
		t.Fatalf("expected invalid layout error, got %v", err)
	}

	if _, err := model.NewBuilder("grid").
		Fields(model.CharField("name")).
		Layout(layout.NewColumns()).
		Build(); err != nil {
		t.Fatalf("columns without regions must build, got %v", err)
	}
}

func TestExtendKeepsParentOrder(t *testing.T) {
	parent := model.NewBuilder("person").
		Fields(model.CharField("name"), model.EmailField("email")).
		Layout(layout.Fields("email", "name")...).
		MustBuild()

	child, err := parent.Extend("member").
		Fields(
			model.EmailField("email", model.WithLabel("Work e-mail")),
			model.BooleanField("newsletter"),
		).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if diff := cmp.Diff([]string{"name", "email", "newsletter"}, child.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	email, _ := child.Field("email")
	if email.DisplayLabel() != "Work e-mail" {
		t.Fatalf("child override not applied: %+v", email)
	}
	if nodes, ok := child.Layout(); !ok || len(nodes) != 2 {
		t.Fatalf("expected inherited layout, got %v", nodes)
	}
	if _, ok := parent.Field("newsletter"); ok {
		t.Fatalf("parent must not see child fields")
	}
}

func TestBoundFieldRendering(t *testing.T) {
	def := model.NewBuilder("contact").
		Fields(
			model.CharField("name", model.WithLabel("Your name"), model.WithInitial("Ada")),
			model.CharField("token", model.WithWidget(widgets.HiddenInput{})),
		).
		MustBuild()

	form := def.Bind()
	field, ok := form.Field("name")
	if !ok {
		t.Fatalf("expected field")
	}
	if field.LabelTag("Your name") != `<label for="id_name">Your name</label>` {
		t.Fatalf("unexpected label tag %q", field.LabelTag("Your name"))
	}
	widgetHTML, err := field.WidgetHTML()
	if err != nil {
		t.Fatalf("widget: %v", err)
	}
	if widgetHTML != `<input type="text" name="name" id="id_name" value="Ada" />` {
		t.Fatalf("unexpected widget %q", widgetHTML)
	}
	if field.FieldTypeName() != "CharField" || field.WidgetTypeName() != "TextInput" {
		t.Fatalf("unexpected type names")
	}

	token, _ := form.Field("token")
	if !token.IsHidden() {
		t.Fatalf("token should be hidden")
	}
	if _, ok := form.Field("missing"); ok {
		t.Fatalf("unexpected field")
	}
}

func TestBindDataPrefixAndIDs(t *testing.T) {
	def := model.NewBuilder("billing").
		Fields(model.CharField("email", model.WithInitial("initial@example.com"))).
		MustBuild()

	form := def.Bind(
		model.WithPrefix("billing"),
		model.WithData(map[string]any{"billing-email": "bound@example.com"}),
		model.WithAutoID("f_%s"),
	)
	field, _ := form.Field("email")
	widgetHTML, err := field.WidgetHTML()
	if err != nil {
		t.Fatalf("widget: %v", err)
	}
	want := `<input type="text" name="billing-email" id="f_billing-email" value="bound@example.com" />`
	if widgetHTML != want {
		t.Fatalf("widget mismatch:\nwant %s\ngot  %s", want, widgetHTML)
	}

	noIDs := def.Bind(model.WithAutoID(""))
	plain, _ := noIDs.Field("email")
	if plain.LabelTag("Email") != "Email" {
		t.Fatalf("expected bare label without ids, got %q", plain.LabelTag("Email"))
	}
}

func TestBindErrors(t *testing.T) {
	def := model.NewBuilder("contact").
		Fields(model.CharField("name"), model.EmailField("email")).
		MustBuild()

	form := def.Bind(model.WithErrors(map[string][]string{
		"/email":           {"Enter a valid e-mail address."},
		"name":             {"This field is required.", " "},
		"non_field_errors": {"Please try again."},
	}))

	email, _ := form.Field("email")
	if diff := cmp.Diff([]string{"Enter a valid e-mail address."}, email.Errors()); diff != "" {
		t.Fatalf("email errors (-want +got):\n%s", diff)
	}
	name, _ := form.Field("name")
	if diff := cmp.Diff([]string{"This field is required."}, name.Errors()); diff != "" {
		t.Fatalf("name errors (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Please try again."}, form.NonFieldErrors()); diff != "" {
		t.Fatalf("form errors (-want +got):\n%s", diff)
	}

	var _ render.Form = form
	var _ render.NonFieldErrorer = form
}

func TestCheckboxFromBoundData(t *testing.T) {
	def := model.NewBuilder("prefs").Fields(model.BooleanField("agree")).MustBuild()

	form := def.Bind(model.WithData(map[string]any{"agree": "on"}))
	field, _ := form.Field("agree")
	got, err := field.WidgetHTML()
	if err != nil {
		t.Fatalf("widget: %v", err)
	}
	if !strings.Contains(got, `checked="checked"`) {
		t.Fatalf("expected checked checkbox, got %s", got)
	}

	empty := def.Bind(model.WithData(map[string]any{}))
	field, _ = empty.Field("agree")
	got, _ = field.WidgetHTML()
	if strings.Contains(got, "checked") {
		t.Fatalf("missing data must render unchecked, got %s", got)
	}
}
