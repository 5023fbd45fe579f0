package openapi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlayout/pkg/openapi"
)

const lintDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "Lint", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Bad": {
        "type": "object",
        "x-formlayout-order": ["a", "ghost"],
        "x-formlayout-layout": [{"group": "G", "children": ["a", "nope"]}],
        "x-formlayout-colour": "red",
        "properties": {
          "a": {"type": "string", "x-formlayout-hidden": "yes"},
          "b": {"type": "string", "x-formlayout-widget": "Slider"}
        }
      }
    }
  }
}`

func TestLint_ReportsViolations(t *testing.T) {
	violations, err := openapi.NewAdapter().Lint(context.Background(), []byte(lintDoc))
	if err != nil {
		t.Fatalf("lint: %v", err)
	}

	got := make([]string, 0, len(violations))
	for _, v := range violations {
		got = append(got, v.String())
	}
	want := []string{
		`components > schemas > Bad -> unsupported extension "x-formlayout-colour" (supported: x-formlayout-hidden, x-formlayout-layout, x-formlayout-order, x-formlayout-widget)`,
		`components > schemas > Bad -> x-formlayout-layout references unknown property "nope"`,
		`components > schemas > Bad -> x-formlayout-order names unknown property "ghost"`,
		`components > schemas > Bad > properties > a -> x-formlayout-hidden must be a boolean, found string`,
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 violations, got %d:\n%s", len(got), strings.Join(got, "\n"))
	}
	if diff := cmp.Diff(want, got[:4]); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(got[4], `components > schemas > Bad > properties > b -> x-formlayout-widget names unknown widget "Slider"`) {
		t.Fatalf("unexpected widget violation %q", got[4])
	}
}

func TestLint_CleanDocument(t *testing.T) {
	violations, err := openapi.NewAdapter().Lint(context.Background(), []byte(petstore))
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) != 1 || !strings.Contains(violations[0].Message, `"missing"`) {
		t.Fatalf("expected only the missing order entry, got %v", violations)
	}
}
