package formschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlayout/pkg/model"
	"github.com/goliatone/go-formlayout/pkg/widgets"
)

// ErrUnknownForm is returned when a requested or extended form is not loaded.
var ErrUnknownForm = errors.New("formschema: unknown form")

type Option func(*loader)

// WithTrustedHTML keeps raw html nodes verbatim instead of sanitising them.
func WithTrustedHTML() Option {
	return func(l *loader) {
		l.trustedHTML = true
	}
}

// WithHTMLPolicy replaces the sanitising policy applied to html nodes.
func WithHTMLPolicy(policy *bluemonday.Policy) Option {
	return func(l *loader) {
		if policy != nil {
			l.policy = policy
		}
	}
}

// WithWidgetRegistry resolves field widgets through registry, making custom
// widget names available to documents.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(l *loader) {
		if registry != nil {
			l.registry = registry
		}
	}
}

type loader struct {
	trustedHTML bool
	policy      *bluemonday.Policy
	registry    *widgets.Registry
	raw         map[string]rawForm
}

func newLoader(options []Option) *loader {
	l := &loader{raw: make(map[string]rawForm)}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	if l.policy == nil {
		l.policy = defaultPolicy()
	}
	if l.registry == nil {
		l.registry = widgets.NewRegistry()
	}
	return l
}

// Load parses a single JSON or YAML document.
func Load(data []byte, options ...Option) (*Store, error) {
	l := newLoader(options)
	if err := l.add(data, "inline"); err != nil {
		return nil, err
	}
	return l.build()
}

// LoadFile parses the document at path.
func LoadFile(path string, options ...Option) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formschema: read %s: %w", path, err)
	}
	l := newLoader(options)
	if err := l.add(data, path); err != nil {
		return nil, err
	}
	return l.build()
}

// LoadFS walks the provided filesystem and parses every JSON/YAML document.
// Form names must be unique across files; forms may extend forms declared in
// other files.
func LoadFS(fsys fs.FS, options ...Option) (*Store, error) {
	l := newLoader(options)
	if fsys == nil {
		return l.build()
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formschema: read %s: %w", path, err)
		}
		return l.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return l.build()
}

func (l *loader) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for name, form := range doc.Forms {
		id := strings.TrimSpace(name)
		if id == "" {
			return fmt.Errorf("formschema: file %s defines a form with an empty name", source)
		}
		if existing, ok := l.raw[id]; ok {
			return fmt.Errorf("formschema: duplicate form %q (files %s and %s)", id, existing.source, source)
		}
		l.raw[id] = rawForm{name: id, source: source, file: form}
	}
	return nil
}

func (l *loader) build() (*Store, error) {
	store := &Store{
		forms:   make(map[string]*model.Definition, len(l.raw)),
		sources: make(map[string]string, len(l.raw)),
	}

	names := make([]string, 0, len(l.raw))
	for name := range l.raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := l.resolve(name, store, nil); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// resolve builds a form after its parents. chain tracks the forms being
// resolved to report inheritance cycles.
func (l *loader) resolve(name string, store *Store, chain []string) (*model.Definition, error) {
	if def, ok := store.forms[name]; ok {
		return def, nil
	}
	for _, seen := range chain {
		if seen == name {
			return nil, fmt.Errorf("formschema: inheritance cycle %s", strings.Join(append(chain, name), " -> "))
		}
	}
	raw, ok := l.raw[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownForm, name)
	}

	var builder *model.Builder
	if parent := strings.TrimSpace(raw.file.Extends); parent != "" {
		parentDef, err := l.resolve(parent, store, append(chain, name))
		if err != nil {
			return nil, fmt.Errorf("formschema: form %q extends %q: %w", name, parent, err)
		}
		builder = parentDef.Extend(name)
	} else {
		builder = model.NewBuilder(name)
	}

	for idx, entry := range raw.file.Fields {
		field, err := l.decodeField(entry)
		if err != nil {
			return nil, fmt.Errorf("formschema: form %q (file %s) field %d: %w", name, raw.source, idx, err)
		}
		builder.Fields(field)
	}

	if raw.file.Layout != nil {
		nodes, err := l.decodeLayout(raw.file.Layout, name)
		if err != nil {
			return nil, err
		}
		builder.Layout(nodes...)
	}

	def, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("formschema: form %q (file %s): %w", name, raw.source, err)
	}
	store.forms[name] = def
	store.sources[name] = raw.source
	return def, nil
}

func (l *loader) decodeField(entry fieldFile) (model.Field, error) {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return model.Field{}, errors.New("name is required")
	}

	kind := model.KindChar
	if strings.TrimSpace(entry.Type) != "" {
		parsed, ok := model.ParseKind(entry.Type)
		if !ok {
			return model.Field{}, fmt.Errorf("field %q: unknown type %q", name, entry.Type)
		}
		kind = parsed
	}

	choices := make([]widgets.Choice, 0, len(entry.Choices))
	for _, choice := range entry.Choices {
		label := choice.Label
		if label == "" {
			label = choice.Value
		}
		choices = append(choices, widgets.Choice{Value: choice.Value, Label: label})
	}

	widget, err := l.registry.Build(widgets.Hint{
		Widget:     entry.Widget,
		FieldType:  string(kind),
		Format:     entry.Format,
		HasChoices: len(choices) > 0,
		Multiple:   kind == model.KindMultipleChoice,
	}, entry.Attrs)
	if err != nil {
		return model.Field{}, fmt.Errorf("field %q: %w", name, err)
	}

	opts := []model.FieldOption{
		model.WithWidget(widget),
		model.WithHelpText(entry.Help),
		model.WithInitial(entry.Initial),
	}
	if len(choices) > 0 {
		opts = append(opts, model.WithChoices(choices...))
	}
	switch {
	case entry.HideLabel:
		opts = append(opts, model.WithoutLabel())
	case entry.Label != "":
		opts = append(opts, model.WithLabel(entry.Label))
	}
	if entry.Required != nil {
		if *entry.Required {
			opts = append(opts, model.Required())
		} else {
			opts = append(opts, model.Optional())
		}
	}
	return model.NewField(kind, name, opts...), nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("formschema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("formschema: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
