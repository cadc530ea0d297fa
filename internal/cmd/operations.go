package cmd

import (
	"github.com/restbind/restbind/internal/app"
	"github.com/spf13/cobra"
)

func newOperationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "operations <location> [resource]",
		Aliases: []string{"ops"},
		Short:   "List operations",
		Long: `List every operation a resource declares: nickname, method and
path template. Websocket operations show WS in place of the method.
Without a resource, lists every resource's operations.

Examples:
  restbind operations http://petstore.example.com/api-docs
  restbind operations http://petstore.example.com/api-docs pet
  restbind ops ./api-docs.json pet -F json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.LoadClient(cmd.Context(), args[0])
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			defer client.Close()

			resource := ""
			if len(args) == 2 {
				resource = args[1]
			}
			result, err := app.BuildOperations(client, args[0], resource)
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			format, outputPath := getOutputFlags(cmd)
			return app.OutputResult(result, format, outputPath)
		},
	}
	return cmd
}
