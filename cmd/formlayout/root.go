package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlayout/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "formlayout",
		Short:         "Render forms from declarative layout trees",
		Long:          `formlayout renders form documents (YAML/JSON) or OpenAPI schemas as nested <div> markup following their layout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(newRenderCmd(), newFieldsCmd(), newServeCmd(), newLintCmd())
	return root
}

func loggerFor(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.NewWithWriter(cmd.ErrOrStderr(), logging.ParseLevel(level))
}
