package formschema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/render"
)

func (l *loader) decodeLayout(raw any, form string) (layout.Layout, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, &render.InvalidLayoutError{
			Reason: fmt.Sprintf("form %q: layout must be a sequence, got %s", form, describe(raw)),
		}
	}
	return l.decodeNodes(items, form, "layout")
}

func (l *loader) decodeNodes(items []any, form, path string) ([]layout.Node, error) {
	nodes := make([]layout.Node, 0, len(items))
	for idx, item := range items {
		node, err := l.decodeNode(item, form, fmt.Sprintf("%s[%d]", path, idx))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (l *loader) decodeNode(raw any, form, path string) (layout.Node, error) {
	switch value := raw.(type) {
	case string:
		name := strings.TrimSpace(value)
		if name == "" {
			return nil, invalidNode(form, path, "empty field name")
		}
		return layout.Field(name), nil
	case map[string]any:
		return l.decodeContainer(value, form, path)
	default:
		return nil, invalidNode(form, path, "unsupported node "+describe(raw))
	}
}

func (l *loader) decodeContainer(value map[string]any, form, path string) (layout.Node, error) {
	switch {
	case has(value, "group"):
		caption, ok := value["group"].(string)
		if !ok && value["group"] != nil {
			return nil, invalidNode(form, path, "group caption must be a string")
		}
		var children []layout.Node
		if rawChildren, present := value["children"]; present && rawChildren != nil {
			items, ok := rawChildren.([]any)
			if !ok {
				return nil, invalidNode(form, path, "group children must be a sequence")
			}
			decoded, err := l.decodeNodes(items, form, path+".children")
			if err != nil {
				return nil, err
			}
			children = decoded
		}
		return layout.NewGroup(caption, children...), nil

	case has(value, "columns"):
		rawRegions, ok := value["columns"].([]any)
		if !ok {
			return nil, invalidNode(form, path, "columns must be a sequence of sequences")
		}
		regions := make([][]layout.Node, 0, len(rawRegions))
		for idx, rawRegion := range rawRegions {
			items, ok := rawRegion.([]any)
			if !ok {
				return nil, invalidNode(form, fmt.Sprintf("%s.columns[%d]", path, idx), "column must be a sequence")
			}
			region, err := l.decodeNodes(items, form, fmt.Sprintf("%s.columns[%d]", path, idx))
			if err != nil {
				return nil, err
			}
			regions = append(regions, region)
		}
		columns := layout.NewColumns(regions...)
		if class, ok := value["class"].(string); ok {
			columns = columns.WithClass(strings.TrimSpace(class))
		}
		return columns, nil

	case has(value, "html"):
		content, ok := value["html"].(string)
		if !ok {
			return nil, invalidNode(form, path, "html content must be a string")
		}
		if !l.trustedHTML {
			content = sanitizeHTML(l.policy, content)
		}
		return layout.HTML(content), nil

	case has(value, "field"):
		name, ok := value["field"].(string)
		if !ok || strings.TrimSpace(name) == "" {
			return nil, invalidNode(form, path, "field must be a non-empty string")
		}
		return layout.Field(strings.TrimSpace(name)), nil
	}
	return nil, invalidNode(form, path, "node must be a field name or one of group, columns, html")
}

func invalidNode(form, path, reason string) error {
	return &render.InvalidLayoutError{Reason: fmt.Sprintf("form %q: %s: %s", form, path, reason)}
}

func has(value map[string]any, key string) bool {
	_, ok := value[key]
	return ok
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "mapping"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", raw)
	}
}

// DecodeLayout decodes a layout value produced by JSON or YAML decoding into
// any, applying the same rules and HTML sanitising as document loading.
func DecodeLayout(raw any, form string, options ...Option) (layout.Layout, error) {
	return newLoader(options).decodeLayout(raw, form)
}
