package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlayout/pkg/openapi"
)

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [openapi documents...]",
		Short: "Check x-formlayout extensions in OpenAPI documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter := openapi.NewAdapter()
			total := 0
			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				violations, err := adapter.Lint(cmd.Context(), raw)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				for _, v := range violations {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, v)
				}
				total += len(violations)
			}
			if total > 0 {
				return fmt.Errorf("%d extension violation(s)", total)
			}
			return nil
		},
	}
}
