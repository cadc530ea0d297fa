package cmd

import (
	"github.com/restbind/restbind/internal/tui"
	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [location]",
		Short: "Browse a service's resources and operations (TUI)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := ""
			if len(args) == 1 {
				location = args[0]
			}
			return tui.RunBrowse(cmd.Context(), location)
		},
	}
	return cmd
}
