package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlayout/pkg/prompt"
)

func newFieldsCmd() *cobra.Command {
	src := &source{}
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List a form's fields in render order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := src.definition(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tWIDGET\tREQUIRED")
			for _, name := range prompt.Order(def) {
				field, _ := def.Field(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", field.Name, field.Kind, field.Widget.TypeName(), field.Required)
			}
			return w.Flush()
		},
	}
	src.bind(cmd)
	return cmd
}
