package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/routecraft/routecraft/pkg/routecraft"
)

// completeCmd exposes the completion engine as a subcommand, the way a
// shell completion script invokes the host program to ask "what comes
// next" for a given partial command line.
func completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "__complete <partial line>",
		Short:  "List completions for a partial command line",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, _, err := buildTable()
			if err != nil {
				return err
			}
			buffer := strings.Join(args, " ")
			for _, c := range routecraft.Complete(buffer, table) {
				fmt.Fprintln(cmd.OutOrStdout(), c.Text)
			}
			return nil
		},
	}
}
