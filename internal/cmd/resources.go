package cmd

import (
	"github.com/restbind/restbind/internal/app"
	"github.com/spf13/cobra"
)

func newResourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resources <location>",
		Aliases: []string{"ls"},
		Short:   "List the resources a service publishes",
		Long: `List every resource in an api description with its operation count.

Examples:
  restbind resources http://petstore.example.com/api-docs
  restbind ls ./api-docs.json -F json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.LoadClient(cmd.Context(), args[0])
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			defer client.Close()

			result, err := app.BuildResources(client, args[0])
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			format, outputPath := getOutputFlags(cmd)
			return app.OutputResult(result, format, outputPath)
		},
	}
	return cmd
}
