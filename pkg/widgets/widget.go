package widgets

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// Built-in widget type names. They double as the CSS class a field wrapper
// carries for the widget.
const (
	TypeTextInput      = "TextInput"
	TypePasswordInput  = "PasswordInput"
	TypeHiddenInput    = "HiddenInput"
	TypeTextarea       = "Textarea"
	TypeCheckboxInput  = "CheckboxInput"
	TypeSelect         = "Select"
	TypeSelectMultiple = "SelectMultiple"
)

// Choice is a single option offered by choice widgets.
type Choice struct {
	Value string
	Label string
}

// Context carries the bound state a widget renders.
type Context struct {
	// Name is the HTML name, including any form prefix.
	Name string
	// ID is the element id; empty omits the attribute.
	ID string
	// Value is the bound or initial value; nil renders no value.
	Value   any
	Choices []Choice
}

// Widget produces the input control for a field. Implementations describe
// which template renders them and the data that template receives.
type Widget interface {
	TypeName() string
	IsHidden() bool
	Template() string
	Data(ctx Context) map[string]any
}

// TextInput renders <input type="text">.
type TextInput struct {
	Attrs map[string]string
}

func (TextInput) TypeName() string { return TypeTextInput }
func (TextInput) IsHidden() bool   { return false }
func (TextInput) Template() string { return "input" }

func (w TextInput) Data(ctx Context) map[string]any {
	return inputData("text", w.Attrs, ctx, true)
}

// PasswordInput renders <input type="password">. The bound value is only
// echoed back when RenderValue is set.
type PasswordInput struct {
	Attrs       map[string]string
	RenderValue bool
}

func (PasswordInput) TypeName() string { return TypePasswordInput }
func (PasswordInput) IsHidden() bool   { return false }
func (PasswordInput) Template() string { return "input" }

func (w PasswordInput) Data(ctx Context) map[string]any {
	return inputData("password", w.Attrs, ctx, w.RenderValue)
}

// HiddenInput renders <input type="hidden">. Fields using it are hoisted to
// the output prefix by renderers.
type HiddenInput struct {
	Attrs map[string]string
}

func (HiddenInput) TypeName() string { return TypeHiddenInput }
func (HiddenInput) IsHidden() bool   { return true }
func (HiddenInput) Template() string { return "input" }

func (w HiddenInput) Data(ctx Context) map[string]any {
	return inputData("hidden", w.Attrs, ctx, true)
}

// Textarea renders a <textarea>, defaulting to 10 rows and 40 columns.
type Textarea struct {
	Attrs map[string]string
}

func (Textarea) TypeName() string { return TypeTextarea }
func (Textarea) IsHidden() bool   { return false }
func (Textarea) Template() string { return "textarea" }

func (w Textarea) Data(ctx Context) map[string]any {
	attrs := map[string]string{"rows": "10", "cols": "40"}
	for key, value := range w.Attrs {
		attrs[key] = value
	}
	return map[string]any{
		"name":  ctx.Name,
		"id":    ctx.ID,
		"value": valueString(ctx.Value),
		"attrs": FormatAttrs(attrs),
	}
}

// CheckboxInput renders a checkbox, checked when the value is truthy.
type CheckboxInput struct {
	Attrs map[string]string
}

func (CheckboxInput) TypeName() string { return TypeCheckboxInput }
func (CheckboxInput) IsHidden() bool   { return false }
func (CheckboxInput) Template() string { return "checkbox" }

func (w CheckboxInput) Data(ctx Context) map[string]any {
	return map[string]any{
		"name":    ctx.Name,
		"id":      ctx.ID,
		"checked": truthy(ctx.Value),
		"attrs":   FormatAttrs(w.Attrs),
	}
}

// Select renders a single-choice <select>.
type Select struct {
	Attrs map[string]string
}

func (Select) TypeName() string { return TypeSelect }
func (Select) IsHidden() bool   { return false }
func (Select) Template() string { return "select" }

func (w Select) Data(ctx Context) map[string]any {
	return selectData(w.Attrs, ctx, false)
}

// SelectMultiple renders a <select multiple>. Values may be []string or []any.
type SelectMultiple struct {
	Attrs map[string]string
}

func (SelectMultiple) TypeName() string { return TypeSelectMultiple }
func (SelectMultiple) IsHidden() bool   { return false }
func (SelectMultiple) Template() string { return "select" }

func (w SelectMultiple) Data(ctx Context) map[string]any {
	return selectData(w.Attrs, ctx, true)
}

// FormatAttrs renders extra attributes as ` key="value"` pairs sorted by key,
// escaping values. The result is marked safe inside templates.
func FormatAttrs(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		if strings.TrimSpace(key) != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(strings.TrimSpace(key)))
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(attrs[key]))
		builder.WriteByte('"')
	}
	return builder.String()
}

func inputData(inputType string, attrs map[string]string, ctx Context, withValue bool) map[string]any {
	value := valueString(ctx.Value)
	return map[string]any{
		"input_type": inputType,
		"name":       ctx.Name,
		"id":         ctx.ID,
		"has_value":  withValue && value != "",
		"value":      value,
		"attrs":      FormatAttrs(attrs),
	}
}

func selectData(attrs map[string]string, ctx Context, multiple bool) map[string]any {
	selected := selectedValues(ctx.Value)
	choices := make([]map[string]any, 0, len(ctx.Choices))
	for _, choice := range ctx.Choices {
		_, isSelected := selected[choice.Value]
		choices = append(choices, map[string]any{
			"value":    choice.Value,
			"label":    choice.Label,
			"selected": isSelected,
		})
	}
	return map[string]any{
		"name":     ctx.Name,
		"id":       ctx.ID,
		"multiple": multiple,
		"choices":  choices,
		"attrs":    FormatAttrs(attrs),
	}
}

func selectedValues(value any) map[string]struct{} {
	out := make(map[string]struct{})
	switch v := value.(type) {
	case nil:
	case []string:
		for _, item := range v {
			out[item] = struct{}{}
		}
	case []any:
		for _, item := range v {
			out[fmt.Sprint(item)] = struct{}{}
		}
	default:
		out[fmt.Sprint(v)] = struct{}{}
	}
	return out
}

func valueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	default:
		return fmt.Sprint(v)
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "0", "false", "off", "no":
			return false
		}
		return true
	case []string:
		return len(v) > 0 && truthy(v[0])
	case int:
		return v != 0
	default:
		return true
	}
}
