package model

import (
	"strings"

	"github.com/goliatone/go-formlayout/pkg/widgets"
)

// Kind names a field type. It doubles as the first CSS class of the field
// wrapper rendered by the div renderer.
type Kind string

const (
	KindChar           Kind = "CharField"
	KindEmail          Kind = "EmailField"
	KindInteger        Kind = "IntegerField"
	KindBoolean        Kind = "BooleanField"
	KindChoice         Kind = "ChoiceField"
	KindMultipleChoice Kind = "MultipleChoiceField"
)

// ParseKind resolves a kind name case-insensitively.
func ParseKind(name string) (Kind, bool) {
	for _, kind := range []Kind{KindChar, KindEmail, KindInteger, KindBoolean, KindChoice, KindMultipleChoice} {
		if strings.EqualFold(strings.TrimSpace(name), string(kind)) {
			return kind, true
		}
	}
	return "", false
}

// DefaultWidget returns the widget a kind uses when none is set.
func (k Kind) DefaultWidget() widgets.Widget {
	switch k {
	case KindBoolean:
		return widgets.CheckboxInput{}
	case KindChoice:
		return widgets.Select{}
	case KindMultipleChoice:
		return widgets.SelectMultiple{}
	default:
		return widgets.TextInput{}
	}
}

// Field is a single field declaration.
type Field struct {
	Name      string
	Kind      Kind
	Label     string
	HideLabel bool
	HelpText  string
	Required  bool
	Initial   any
	Widget    widgets.Widget
	Choices   []widgets.Choice
}

// FieldOption customises a field declaration.
type FieldOption func(*Field)

// NewField declares a field of the given kind. Fields are required by
// default except BooleanField, whose unchecked state is a valid answer.
func NewField(kind Kind, name string, options ...FieldOption) Field {
	field := Field{
		Name:     strings.TrimSpace(name),
		Kind:     kind,
		Required: kind != KindBoolean,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&field)
		}
	}
	if field.Widget == nil {
		field.Widget = kind.DefaultWidget()
	}
	return field
}

func CharField(name string, options ...FieldOption) Field {
	return NewField(KindChar, name, options...)
}

func EmailField(name string, options ...FieldOption) Field {
	return NewField(KindEmail, name, options...)
}

func IntegerField(name string, options ...FieldOption) Field {
	return NewField(KindInteger, name, options...)
}

func BooleanField(name string, options ...FieldOption) Field {
	return NewField(KindBoolean, name, options...)
}

func ChoiceField(name string, choices []widgets.Choice, options ...FieldOption) Field {
	return NewField(KindChoice, name, append([]FieldOption{WithChoices(choices...)}, options...)...)
}

func MultipleChoiceField(name string, choices []widgets.Choice, options ...FieldOption) Field {
	return NewField(KindMultipleChoice, name, append([]FieldOption{WithChoices(choices...)}, options...)...)
}

// WithLabel sets an explicit label.
func WithLabel(label string) FieldOption {
	return func(f *Field) {
		f.Label = label
		f.HideLabel = false
	}
}

// WithoutLabel suppresses the label entirely.
func WithoutLabel() FieldOption {
	return func(f *Field) {
		f.Label = ""
		f.HideLabel = true
	}
}

func WithHelpText(text string) FieldOption {
	return func(f *Field) {
		f.HelpText = text
	}
}

// Optional marks the field as not required.
func Optional() FieldOption {
	return func(f *Field) {
		f.Required = false
	}
}

// Required marks the field as required.
func Required() FieldOption {
	return func(f *Field) {
		f.Required = true
	}
}

// WithWidget overrides the kind's default widget.
func WithWidget(widget widgets.Widget) FieldOption {
	return func(f *Field) {
		if widget != nil {
			f.Widget = widget
		}
	}
}

func WithChoices(choices ...widgets.Choice) FieldOption {
	return func(f *Field) {
		f.Choices = append([]widgets.Choice(nil), choices...)
	}
}

// WithInitial sets the value rendered by unbound forms.
func WithInitial(value any) FieldOption {
	return func(f *Field) {
		f.Initial = value
	}
}

// DisplayLabel returns the label a renderer shows: the explicit label, the
// pretty name when none is set, or "" when the label is hidden.
func (f Field) DisplayLabel() string {
	if f.HideLabel {
		return ""
	}
	if f.Label != "" {
		return f.Label
	}
	return PrettyName(f.Name)
}
