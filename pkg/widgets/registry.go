package widgets

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory builds a widget carrying the supplied extra attributes.
type Factory func(attrs map[string]string) Widget

// Hint describes a field for automatic widget selection.
type Hint struct {
	// Widget is an explicit widget name; it wins over every matcher.
	Widget     string
	FieldType  string
	Format     string
	Hidden     bool
	HasChoices bool
	Multiple   bool
}

// Matcher decides whether a widget should handle the supplied hint.
type Matcher func(hint Hint) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry maps widget names to factories and selects widgets for hints.
// Higher matcher priority wins; ties fall back to registration order. Name
// lookups are case-insensitive.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	names     map[string]string
	rules     []rule
}

// NewRegistry constructs a registry with the built-in widgets and matchers.
func NewRegistry() *Registry {
	reg := &Registry{
		factories: make(map[string]Factory),
		names:     make(map[string]string),
	}
	reg.registerBuiltins()
	return reg
}

// Register adds a named factory. Registering an existing name replaces it.
func (r *Registry) Register(name string, factory Factory) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || factory == nil {
		return fmt.Errorf("widgets: name and factory required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(trimmed)
	r.factories[key] = factory
	r.names[key] = trimmed
	return nil
}

// Match registers a matcher used by Resolve for hints without an explicit
// widget name.
func (r *Registry) Match(name string, priority int, matcher Matcher) {
	if matcher == nil || strings.TrimSpace(name) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{
		name:     strings.TrimSpace(name),
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// New builds the widget registered under name.
func (r *Registry) New(name string, attrs map[string]string) (Widget, error) {
	r.mu.RLock()
	factory, ok := r.factories[strings.ToLower(strings.TrimSpace(name))]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("widgets: widget %q not registered", name)
	}
	return factory(attrs), nil
}

// Resolve returns the widget name for a hint. An explicit hint.Widget is
// returned as-is when registered; otherwise matchers are evaluated.
func (r *Registry) Resolve(hint Hint) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if explicit := strings.TrimSpace(hint.Widget); explicit != "" {
		name, ok := r.names[strings.ToLower(explicit)]
		return name, ok
	}

	rules := append([]rule(nil), r.rules...)
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(hint) {
			return entry.name, true
		}
	}
	return "", false
}

// Build resolves a hint and constructs the widget, falling back to TextInput
// when no matcher applies.
func (r *Registry) Build(hint Hint, attrs map[string]string) (Widget, error) {
	name, ok := r.Resolve(hint)
	if !ok {
		if strings.TrimSpace(hint.Widget) != "" {
			return nil, fmt.Errorf("widgets: widget %q not registered", hint.Widget)
		}
		name = TypeTextInput
	}
	return r.New(name, attrs)
}

// Names lists the registered widget names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) registerBuiltins() {
	builtins := map[string]Factory{
		TypeTextInput:      func(attrs map[string]string) Widget { return TextInput{Attrs: attrs} },
		TypePasswordInput:  func(attrs map[string]string) Widget { return PasswordInput{Attrs: attrs} },
		TypeHiddenInput:    func(attrs map[string]string) Widget { return HiddenInput{Attrs: attrs} },
		TypeTextarea:       func(attrs map[string]string) Widget { return Textarea{Attrs: attrs} },
		TypeCheckboxInput:  func(attrs map[string]string) Widget { return CheckboxInput{Attrs: attrs} },
		TypeSelect:         func(attrs map[string]string) Widget { return Select{Attrs: attrs} },
		TypeSelectMultiple: func(attrs map[string]string) Widget { return SelectMultiple{Attrs: attrs} },
	}
	for name, factory := range builtins {
		key := strings.ToLower(name)
		r.factories[key] = factory
		r.names[key] = name
	}

	r.rules = nil
	r.Match(TypeHiddenInput, 100, func(h Hint) bool { return h.Hidden })
	r.Match(TypeSelectMultiple, 90, func(h Hint) bool { return h.HasChoices && h.Multiple })
	r.Match(TypeSelect, 80, func(h Hint) bool { return h.HasChoices })
	r.Match(TypeCheckboxInput, 70, func(h Hint) bool {
		return strings.EqualFold(h.FieldType, "BooleanField") || strings.EqualFold(h.FieldType, "boolean")
	})
	r.Match(TypePasswordInput, 60, func(h Hint) bool { return strings.EqualFold(h.Format, "password") })
	r.Match(TypeTextarea, 50, func(h Hint) bool {
		format := strings.ToLower(strings.TrimSpace(h.Format))
		return format == "textarea" || format == "markdown" || format == "multiline"
	})
}
