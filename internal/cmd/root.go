package cmd

import (
	"github.com/spf13/cobra"
)

// NewRoot builds the top-level `restbind` command.
//
// We keep errors/usage silent and let our main() decide how to print ExitResult vs generic errors.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "restbind",
		Short:         "restbind: explore and call services from their api descriptions",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringP("output", "o", "", "write output to file (default: stdout)")
	root.PersistentFlags().StringP("format", "F", "", "output format: json|yaml|text")

	root.AddGroup(
		&cobra.Group{ID: "explore", Title: "explore a service"},
		&cobra.Group{ID: "invoke", Title: "invoke operations"},
		&cobra.Group{ID: "tooling", Title: "description tooling"},
	)

	infoCmd := newInfoCmd()
	infoCmd.GroupID = "explore"

	resourcesCmd := newResourcesCmd()
	resourcesCmd.GroupID = "explore"

	operationsCmd := newOperationsCmd()
	operationsCmd.GroupID = "explore"

	describeCmd := newDescribeCmd()
	describeCmd.GroupID = "explore"

	browseCmd := newBrowseCmd()
	browseCmd.GroupID = "explore"

	callCmd := newCallCmd()
	callCmd.GroupID = "invoke"

	watchCmd := newWatchCmd()
	watchCmd.GroupID = "invoke"

	validateCmd := newValidateCmd()
	validateCmd.GroupID = "tooling"

	convertCmd := newConvertCmd()
	convertCmd.GroupID = "tooling"

	root.AddCommand(
		infoCmd,
		resourcesCmd,
		operationsCmd,
		describeCmd,
		browseCmd,
		callCmd,
		watchCmd,
		validateCmd,
		convertCmd,
	)

	return root
}
