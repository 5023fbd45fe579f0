package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formlayout/pkg/formschema"
	"github.com/goliatone/go-formlayout/pkg/model"
	"github.com/goliatone/go-formlayout/pkg/widgets"
)

// Schema extensions understood by the adapter.
const (
	ExtensionOrder  = "x-formlayout-order"
	ExtensionLayout = "x-formlayout-layout"
	ExtensionHidden = "x-formlayout-hidden"
	ExtensionWidget = "x-formlayout-widget"
)

var (
	// ErrSchemaNotFound is returned when the named component schema or
	// operation request body does not exist.
	ErrSchemaNotFound = errors.New("openapi: schema not found")
	// ErrNotAnObject is returned for schemas without properties.
	ErrNotAnObject = errors.New("openapi: schema has no properties")
)

type Option func(*Adapter)

// WithValidation validates the document before building definitions.
func WithValidation() Option {
	return func(a *Adapter) {
		a.validate = true
	}
}

// WithWidgetRegistry resolves widgets through registry.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(a *Adapter) {
		if registry != nil {
			a.registry = registry
		}
	}
}

// WithLayoutOptions forwards options to the layout decoder used for
// x-formlayout-layout (for example formschema.WithTrustedHTML).
func WithLayoutOptions(options ...formschema.Option) Option {
	return func(a *Adapter) {
		a.layoutOptions = append(a.layoutOptions, options...)
	}
}

// Adapter builds form definitions from OpenAPI 3 documents.
type Adapter struct {
	validate      bool
	registry      *widgets.Registry
	layoutOptions []formschema.Option
}

// NewAdapter constructs an adapter applying any provided options.
func NewAdapter(options ...Option) *Adapter {
	a := &Adapter{}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	if a.registry == nil {
		a.registry = widgets.NewRegistry()
	}
	return a
}

// SchemaNames lists the component schemas of the document, sorted.
func (a *Adapter) SchemaNames(ctx context.Context, raw []byte) ([]string, error) {
	spec, err := a.load(ctx, raw)
	if err != nil {
		return nil, err
	}
	if spec.Components == nil {
		return nil, nil
	}
	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Definition maps the properties of the named component schema to a form
// definition named after the schema.
func (a *Adapter) Definition(ctx context.Context, raw []byte, schemaName string) (*model.Definition, error) {
	spec, err := a.load(ctx, raw)
	if err != nil {
		return nil, err
	}
	if spec.Components == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName)
	}
	ref, ok := spec.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName)
	}
	return a.build(schemaName, ref.Value)
}

// OperationDefinition maps the request body schema of an operation, looked
// up by operationId, to a form definition named after the operation.
func (a *Adapter) OperationDefinition(ctx context.Context, raw []byte, operationID string) (*model.Definition, error) {
	spec, err := a.load(ctx, raw)
	if err != nil {
		return nil, err
	}
	if spec.Paths != nil {
		for _, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for _, op := range item.Operations() {
				if op == nil || op.OperationID != operationID {
					continue
				}
				if schema := requestSchema(op.RequestBody); schema != nil {
					return a.build(operationID, schema)
				}
			}
		}
	}
	return nil, fmt.Errorf("%w: request body of operation %q", ErrSchemaNotFound, operationID)
}

func (a *Adapter) load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if a.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return spec, nil
}

func (a *Adapter) build(name string, schema *openapi3.Schema) (*model.Definition, error) {
	if len(schema.Properties) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotAnObject, name)
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, field := range schema.Required {
		required[field] = struct{}{}
	}

	builder := model.NewBuilder(name)
	for _, property := range propertyOrder(schema) {
		ref := schema.Properties[property]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, isRequired := required[property]
		field, err := a.field(property, ref.Value, isRequired)
		if err != nil {
			return nil, fmt.Errorf("openapi: schema %q property %q: %w", name, property, err)
		}
		builder.Fields(field)
	}

	if rawLayout, ok := schema.Extensions[ExtensionLayout]; ok && rawLayout != nil {
		nodes, err := formschema.DecodeLayout(rawLayout, name, a.layoutOptions...)
		if err != nil {
			return nil, err
		}
		builder.Layout(nodes...)
	}

	return builder.Build()
}

func (a *Adapter) field(name string, schema *openapi3.Schema, required bool) (model.Field, error) {
	schemaType := firstSchemaType(schema.Type)
	kind := model.KindChar
	var choices []widgets.Choice

	switch {
	case len(schema.Enum) > 0:
		kind = model.KindChoice
		choices = enumChoices(schema.Enum)
	case schemaType == openapi3.TypeArray && schema.Items != nil && schema.Items.Value != nil && len(schema.Items.Value.Enum) > 0:
		kind = model.KindMultipleChoice
		choices = enumChoices(schema.Items.Value.Enum)
	case schemaType == openapi3.TypeBoolean:
		kind = model.KindBoolean
	case schemaType == openapi3.TypeInteger, schemaType == openapi3.TypeNumber:
		kind = model.KindInteger
	case strings.EqualFold(schema.Format, "email"):
		kind = model.KindEmail
	}

	hint := widgets.Hint{
		FieldType:  string(kind),
		Format:     schema.Format,
		HasChoices: len(choices) > 0,
		Multiple:   kind == model.KindMultipleChoice,
		Hidden:     boolExtension(schema.Extensions, ExtensionHidden),
	}
	if widget, ok := schema.Extensions[ExtensionWidget].(string); ok {
		hint.Widget = widget
	}
	widget, err := a.registry.Build(hint, nil)
	if err != nil {
		return model.Field{}, err
	}

	opts := []model.FieldOption{
		model.WithWidget(widget),
		model.WithHelpText(schema.Description),
		model.WithInitial(schema.Default),
	}
	if schema.Title != "" {
		opts = append(opts, model.WithLabel(schema.Title))
	}
	if len(choices) > 0 {
		opts = append(opts, model.WithChoices(choices...))
	}
	if required {
		opts = append(opts, model.Required())
	} else {
		opts = append(opts, model.Optional())
	}
	return model.NewField(kind, name, opts...), nil
}

// propertyOrder lists x-formlayout-order entries first, then the remaining
// properties by name.
func propertyOrder(schema *openapi3.Schema) []string {
	seen := make(map[string]struct{}, len(schema.Properties))
	var order []string
	if rawOrder, ok := schema.Extensions[ExtensionOrder].([]any); ok {
		for _, entry := range rawOrder {
			name, ok := entry.(string)
			if !ok {
				continue
			}
			if _, exists := schema.Properties[name]; !exists {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			order = append(order, name)
		}
	}

	rest := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "multipart/form-data", "application/json"} {
		if mt, ok := body.Value.Content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func enumChoices(values []any) []widgets.Choice {
	choices := make([]widgets.Choice, 0, len(values))
	for _, value := range values {
		text := fmt.Sprint(value)
		choices = append(choices, widgets.Choice{Value: text, Label: text})
	}
	return choices
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func boolExtension(extensions map[string]any, key string) bool {
	value, ok := extensions[key].(bool)
	return ok && value
}
