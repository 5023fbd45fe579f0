package render

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrNoSuchField matches NoSuchFieldError values via errors.Is.
	ErrNoSuchField = errors.New("render: no such form field")
	// ErrInvalidLayout matches InvalidLayoutError values via errors.Is.
	ErrInvalidLayout = errors.New("render: invalid layout")
	// ErrUnsupportedOutputMode matches UnsupportedOutputModeError values.
	ErrUnsupportedOutputMode = errors.New("render: unsupported output mode")
)

// NoSuchFieldError reports a layout reference to a field the form does not
// declare. The whole render pass fails; no partial markup is returned.
type NoSuchFieldError struct {
	Name string
}

func (e *NoSuchFieldError) Error() string {
	return fmt.Sprintf("render: could not resolve form field %q", e.Name)
}

func (e *NoSuchFieldError) Is(target error) bool {
	return target == ErrNoSuchField
}

// InvalidLayoutError reports a declared layout that cannot be walked.
type InvalidLayoutError struct {
	Reason string
	Err    error
}

func (e *InvalidLayoutError) Error() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return "render: invalid layout: " + e.Reason + ": " + e.Err.Error()
	case e.Err != nil:
		return "render: invalid layout: " + e.Err.Error()
	case e.Reason != "":
		return "render: invalid layout: " + e.Reason
	default:
		return ErrInvalidLayout.Error()
	}
}

func (e *InvalidLayoutError) Is(target error) bool {
	return target == ErrInvalidLayout
}

func (e *InvalidLayoutError) Unwrap() error {
	return e.Err
}

// UnsupportedOutputModeError is returned for every request to render a form
// as a table, list or paragraphs.
type UnsupportedOutputModeError struct {
	Mode string
}

func (e *UnsupportedOutputModeError) Error() string {
	return fmt.Sprintf("render: output mode %q is not supported, render as div instead", e.Mode)
}

func (e *UnsupportedOutputModeError) Is(target error) bool {
	return target == ErrUnsupportedOutputMode
}

// ErrorMapping splits an error payload into field-level and form-level
// messages keyed by declared field name.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises server error payloads (including JSON pointer
// and bracketed paths) onto the supplied field names. Unknown paths are
// treated as form-level errors so messages are not lost. A form prefix
// ("billing-email") is accepted alongside the bare name. Paths are visited
// in sorted order so the same payload always maps to the same message order.
func MapErrorPayload(fieldNames []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	known := make(map[string]struct{}, len(fieldNames))
	for _, name := range fieldNames {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			known[trimmed] = struct{}{}
		}
	}

	paths := make([]string, 0, len(payload))
	for rawPath := range payload {
		paths = append(paths, rawPath)
	}
	sort.Strings(paths)

	for _, rawPath := range paths {
		normalizedMessages := normalizeMessages(payload[rawPath])
		if len(normalizedMessages) == 0 {
			continue
		}

		mapped, formLevel := mapErrorPath(rawPath, known)
		if formLevel || mapped == "" {
			mapping.Form = append(mapping.Form, normalizedMessages...)
			continue
		}
		mapping.Fields[mapped] = append(mapping.Fields[mapped], normalizedMessages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, known map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}

	segments := stripNumericSegments(parsePathSegments(trimmed))
	if len(segments) == 0 {
		return "", true
	}

	// Forms are flat: the first segment naming a declared field wins, which
	// also skips wrapper segments such as body/ or data.
	for _, segment := range segments {
		if _, ok := known[segment]; ok {
			return segment, false
		}
		if idx := strings.Index(segment, "-"); idx > 0 {
			if _, ok := known[segment[idx+1:]]; ok {
				return segment[idx+1:], false
			}
		}
	}
	return "", true
}

func parsePathSegments(path string) []string {
	if path == "" {
		return nil
	}

	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimPrefix(clean, "#")
		clean = strings.TrimPrefix(clean, "/")
		clean = strings.TrimPrefix(clean, ".")
		clean = strings.TrimPrefix(clean, "$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	if len(segments) == 0 {
		return segments
	}

	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", "_", "_form", "form", "__all__", "non_field_errors", "_global_":
		return true
	default:
		return false
	}
}
