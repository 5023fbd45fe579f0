package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlayout/pkg/formschema"
	"github.com/goliatone/go-formlayout/pkg/model"
	"github.com/goliatone/go-formlayout/pkg/openapi"
)

// source selects one definition from a form document or an OpenAPI file.
type source struct {
	file      string
	form      string
	trusted   bool
	openapi   string
	schema    string
	operation string
}

func (s *source) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&s.file, "file", "f", "", "Form document (YAML or JSON)")
	flags.StringVar(&s.form, "form", "", "Form name inside the document")
	flags.BoolVar(&s.trusted, "trusted-html", false, "Do not sanitise html layout nodes")
	flags.StringVar(&s.openapi, "openapi", "", "OpenAPI 3 document to build the form from")
	flags.StringVar(&s.schema, "schema", "", "Component schema name (with --openapi)")
	flags.StringVar(&s.operation, "operation", "", "Operation ID whose request body is used (with --openapi)")
}

func (s *source) definition(ctx context.Context) (*model.Definition, error) {
	switch {
	case s.openapi != "":
		raw, err := os.ReadFile(s.openapi)
		if err != nil {
			return nil, fmt.Errorf("read openapi document: %w", err)
		}
		adapter := openapi.NewAdapter()
		if s.operation != "" {
			return adapter.OperationDefinition(ctx, raw, s.operation)
		}
		if s.schema == "" {
			return nil, errors.New("--schema or --operation is required with --openapi")
		}
		return adapter.Definition(ctx, raw, s.schema)

	case s.file != "":
		store, err := s.store()
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(s.form)
		if name == "" {
			names := store.Names()
			if len(names) != 1 {
				return nil, fmt.Errorf("--form is required, document defines %s", strings.Join(names, ", "))
			}
			name = names[0]
		}
		def, ok := store.Form(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", formschema.ErrUnknownForm, name)
		}
		return def, nil

	default:
		return nil, errors.New("one of --file or --openapi is required")
	}
}

func (s *source) store() (*formschema.Store, error) {
	if s.file == "" {
		return nil, errors.New("--file is required")
	}
	var options []formschema.Option
	if s.trusted {
		options = append(options, formschema.WithTrustedHTML())
	}
	return formschema.LoadFile(s.file, options...)
}
