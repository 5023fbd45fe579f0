package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	formlayout "github.com/goliatone/go-formlayout"
	"github.com/goliatone/go-formlayout/pkg/model"
	"github.com/goliatone/go-formlayout/pkg/prompt"
)

type renderFlags struct {
	source      source
	values      string
	errors      string
	mode        string
	prefix      string
	hidden      hiddenFlags
	output      string
	interactive bool
}

func newRenderCmd() *cobra.Command {
	return newRenderCmdWithDriver(nil)
}

// newRenderCmdWithDriver lets tests answer --interactive prompts. A nil
// driver prompts on the terminal.
func newRenderCmdWithDriver(driver prompt.Driver) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a form as HTML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, flags, driver)
		},
	}
	flags.source.bind(cmd)
	flags.hidden.bind(cmd)
	cmd.Flags().StringVar(&flags.values, "values", "", "JSON file with submitted values; binds the form")
	cmd.Flags().StringVar(&flags.errors, "errors", "", "JSON file with error messages keyed by field")
	cmd.Flags().StringVar(&flags.mode, "mode", "div", "Output mode (div; table, ul and p always fail)")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", "Field name prefix")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Prompt for field values before rendering")
	return cmd
}

func runRender(cmd *cobra.Command, flags *renderFlags, driver prompt.Driver) error {
	ctx := cmd.Context()
	logger := loggerFor(cmd)

	def, err := flags.source.definition(ctx)
	if err != nil {
		return err
	}

	var bind []model.BindOption
	if flags.prefix != "" {
		bind = append(bind, model.WithPrefix(flags.prefix))
	}

	var values map[string]any
	if flags.values != "" {
		if err := readJSON(flags.values, &values); err != nil {
			return err
		}
	}
	if flags.interactive {
		collected, err := prompt.New(prompt.WithDriver(driver), prompt.WithInitial(values)).Collect(ctx, def)
		if err != nil {
			return err
		}
		values = collected
	}
	if values != nil {
		bind = append(bind, model.WithData(prefixed(def, flags.prefix, values)))
	}

	if flags.errors != "" {
		var payload map[string][]string
		if err := readJSON(flags.errors, &payload); err != nil {
			return err
		}
		bind = append(bind, model.WithErrors(payload))
	}

	options := formlayout.RenderOptions{HiddenFields: flags.hidden.fields()}

	out, err := formlayout.NewRegistry().Render(ctx, flags.mode, def.Bind(bind...), options)
	if err != nil {
		logger.Debug("render failed", "form", def.Name(), "mode", flags.mode, "error", err)
		return err
	}
	logger.Debug("rendered form", "form", def.Name(), "bytes", len(out))

	if flags.output != "" {
		if err := os.WriteFile(flags.output, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("form written", "path", flags.output)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// prefixed keys values by submitted name so they bind under a prefix.
func prefixed(def *model.Definition, prefix string, values map[string]any) map[string]any {
	if prefix == "" {
		return values
	}
	form := def.Bind(model.WithPrefix(prefix))
	out := make(map[string]any, len(values))
	for key, value := range values {
		if _, ok := def.Field(key); ok {
			out[form.HTMLName(key)] = value
			continue
		}
		out[key] = value
	}
	return out
}

func readJSON(path string, target any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
