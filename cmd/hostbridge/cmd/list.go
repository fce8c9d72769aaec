package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/hostbridge/internal/showcase"
)

func newListCmd(_ *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the demos available to preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range showcase.Names() {
				demo, _ := showcase.Lookup(name)
				fmt.Fprintf(out, "  %-10s %s (clicks #%s)\n", demo.Name, demo.Description, demo.Target)
			}
			return nil
		},
	}
}
