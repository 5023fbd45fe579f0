package openapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formlayout/pkg/formschema"
	"github.com/goliatone/go-formlayout/pkg/layout"
)

const extensionPrefix = "x-formlayout-"

// Violation reports a misused x-formlayout extension.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// Lint checks every x-formlayout extension on component schemas and inline
// request body schemas. Violations are sorted by location.
func (a *Adapter) Lint(ctx context.Context, raw []byte) ([]Violation, error) {
	spec, err := a.load(ctx, raw)
	if err != nil {
		return nil, err
	}

	var result []Violation
	if spec.Components != nil {
		names := make([]string, 0, len(spec.Components.Schemas))
		for name := range spec.Components.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if ref := spec.Components.Schemas[name]; ref != nil && ref.Value != nil {
				result = append(result, a.lintSchema([]string{"components", "schemas", name}, name, ref.Value)...)
			}
		}
	}

	if spec.Paths != nil {
		for _, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for _, op := range item.Operations() {
				if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
					continue
				}
				for mediaType, content := range op.RequestBody.Value.Content {
					if content.Schema == nil || content.Schema.Ref != "" || content.Schema.Value == nil {
						continue
					}
					path := []string{"operation", op.OperationID, "requestBody", mediaType}
					result = append(result, a.lintSchema(path, op.OperationID, content.Schema.Value)...)
				}
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Location == result[j].Location {
			return result[i].Message < result[j].Message
		}
		return result[i].Location < result[j].Location
	})
	return result, nil
}

func (a *Adapter) lintSchema(path []string, name string, schema *openapi3.Schema) []Violation {
	result := a.lintExtensions(path, name, schema)

	properties := make([]string, 0, len(schema.Properties))
	for property := range schema.Properties {
		properties = append(properties, property)
	}
	sort.Strings(properties)
	for _, property := range properties {
		ref := schema.Properties[property]
		if ref == nil || ref.Value == nil || ref.Ref != "" {
			continue
		}
		result = append(result, a.lintSchema(appendPath(path, "properties", property), property, ref.Value)...)
	}
	if schema.Items != nil && schema.Items.Value != nil && schema.Items.Ref == "" {
		result = append(result, a.lintSchema(appendPath(path, "items"), name, schema.Items.Value)...)
	}
	return result
}

func (a *Adapter) lintExtensions(path []string, name string, schema *openapi3.Schema) []Violation {
	keys := make([]string, 0, len(schema.Extensions))
	for key := range schema.Extensions {
		if strings.HasPrefix(key, extensionPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	location := strings.Join(path, " > ")
	var result []Violation
	report := func(format string, args ...any) {
		result = append(result, Violation{Location: location, Message: fmt.Sprintf(format, args...)})
	}

	for _, key := range keys {
		value := schema.Extensions[key]
		switch key {
		case ExtensionOrder:
			entries, ok := value.([]any)
			if !ok {
				report("%s must be a list of property names, found %T", key, value)
				continue
			}
			for _, entry := range entries {
				property, ok := entry.(string)
				if !ok {
					report("%s entries must be strings, found %T", key, entry)
					continue
				}
				if _, exists := schema.Properties[property]; !exists {
					report("%s names unknown property %q", key, property)
				}
			}

		case ExtensionLayout:
			nodes, err := formschema.DecodeLayout(value, name, a.layoutOptions...)
			if err != nil {
				report("%v", err)
				continue
			}
			for _, field := range layout.Names(nodes) {
				if _, exists := schema.Properties[field]; !exists {
					report("%s references unknown property %q", key, field)
				}
			}

		case ExtensionHidden:
			if _, ok := value.(bool); !ok {
				report("%s must be a boolean, found %T", key, value)
			}

		case ExtensionWidget:
			widget, ok := value.(string)
			if !ok {
				report("%s must be a string, found %T", key, value)
				continue
			}
			if _, err := a.registry.New(widget, nil); err != nil {
				report("%s names unknown widget %q (known: %s)", key, widget, strings.Join(a.registry.Names(), ", "))
			}

		default:
			report("unsupported extension %q (supported: %s)", key, strings.Join(Extensions(), ", "))
		}
	}
	return result
}

// Extensions lists the supported schema extensions.
func Extensions() []string {
	return []string{ExtensionHidden, ExtensionLayout, ExtensionOrder, ExtensionWidget}
}

func appendPath(path []string, segments ...string) []string {
	next := append([]string(nil), path...)
	return append(next, segments...)
}
