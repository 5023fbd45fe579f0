package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/model"
	"github.com/goliatone/go-formlayout/pkg/render"
	"github.com/goliatone/go-formlayout/pkg/widgets"
)

type Option func(*Collector)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithInitial seeds defaults from previously collected or submitted values,
// keyed by field name. They win over declared initials.
func WithInitial(values map[string]any) Option {
	return func(c *Collector) {
		c.initial = values
	}
}

// Collector asks for every visible field of a definition.
type Collector struct {
	driver  Driver
	initial map[string]any
}

// New constructs a collector backed by the terminal unless a driver is
// supplied.
func New(options ...Option) *Collector {
	c := &Collector{}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver()
	}
	return c
}

// Collect prompts for each field in the order the form renders them. Hidden
// fields are not asked; their initial value is carried through when set. A
// layout reference to an undeclared field fails with *render.NoSuchFieldError
// before anything is asked.
func (c *Collector) Collect(ctx context.Context, def *model.Definition) (map[string]any, error) {
	if def == nil {
		return nil, errors.New("prompt: definition is nil")
	}
	order := Order(def)
	fields := make([]model.Field, 0, len(order))
	for _, name := range order {
		field, ok := def.Field(name)
		if !ok {
			return nil, &render.NoSuchFieldError{Name: name}
		}
		fields = append(fields, field)
	}

	values := make(map[string]any)
	for _, field := range fields {
		name := field.Name
		if field.Widget.IsHidden() {
			if initial := c.initialFor(field); initial != nil {
				values[name] = initial
			}
			continue
		}
		value, err := c.ask(ctx, field)
		if err != nil {
			return nil, fmt.Errorf("prompt: field %q: %w", name, err)
		}
		values[name] = value
	}
	return values, nil
}

func (c *Collector) ask(ctx context.Context, field model.Field) (any, error) {
	q := Question{Message: field.DisplayLabel(), Help: field.HelpText}
	if q.Message == "" {
		q.Message = field.Name
	}
	initial := c.initialFor(field)
	labels, values := choiceOptions(field.Choices)

	switch field.Widget.TypeName() {
	case widgets.TypeCheckboxInput:
		q.Kind, q.Yes = AskConfirm, truthy(initial)
	case widgets.TypeSelect:
		q.Kind, q.Options = AskSelect, labels
		if idx := indexOf(values, stringValue(initial)); idx >= 0 {
			q.Chosen = []int{idx}
		}
	case widgets.TypeSelectMultiple:
		q.Kind, q.Options = AskMultiSelect, labels
		q.Chosen = indicesOf(values, stringValues(initial))
	case widgets.TypePasswordInput:
		q.Kind = AskPassword
	case widgets.TypeTextarea:
		q.Kind, q.Text = AskMultiline, stringValue(initial)
	default:
		q.Kind, q.Text = AskText, stringValue(initial)
	}

	answer, err := c.driver.Ask(ctx, q)
	if err != nil {
		return nil, err
	}
	switch q.Kind {
	case AskConfirm:
		return answer.Yes, nil
	case AskSelect:
		if len(answer.Chosen) == 0 || answer.Chosen[0] < 0 || answer.Chosen[0] >= len(values) {
			return "", nil
		}
		return values[answer.Chosen[0]], nil
	case AskMultiSelect:
		selected := make([]string, 0, len(answer.Chosen))
		for _, idx := range answer.Chosen {
			if idx >= 0 && idx < len(values) {
				selected = append(selected, values[idx])
			}
		}
		return selected, nil
	default:
		return answer.Text, nil
	}
}

func (c *Collector) initialFor(field model.Field) any {
	if value, ok := c.initial[field.Name]; ok {
		return value
	}
	return field.Initial
}

// Order returns field names in render order: explicit layout references
// first (each once), then the remaining declared fields.
func Order(def *model.Definition) []string {
	seen := make(map[string]struct{})
	var order []string
	if nodes, ok := def.Layout(); ok {
		for _, name := range layout.Names(nodes) {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			order = append(order, name)
		}
	}
	for _, name := range def.Names() {
		if _, ok := seen[name]; !ok {
			order = append(order, name)
		}
	}
	return order
}

func choiceOptions(choices []widgets.Choice) (labels, values []string) {
	for _, choice := range choices {
		labels = append(labels, choice.Label)
		values = append(values, choice.Value)
	}
	return labels, values
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func stringValues(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "on" || v == "1" || v == "yes"
	default:
		return false
	}
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

// indicesOf returns the positions in options of every value, in option order.
func indicesOf(options, values []string) []int {
	wanted := make(map[string]struct{}, len(values))
	for _, v := range values {
		wanted[v] = struct{}{}
	}
	var out []int
	for i, option := range options {
		if _, ok := wanted[option]; ok {
			out = append(out, i)
		}
	}
	return out
}
