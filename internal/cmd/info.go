package cmd

import (
	"github.com/restbind/restbind/internal/app"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <location>",
		Short: "Show a service's api description metadata",
		Long: `Show the identity block of an api description: title, versions,
base path and the resources it publishes.

The location may be an HTTP(S) URL or a local file path.

Examples:
  restbind info http://petstore.example.com/api-docs
  restbind info ./api-docs.json -F json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.LoadClient(cmd.Context(), args[0])
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			defer client.Close()

			info := app.BuildInfo(client, args[0])
			format, outputPath := getOutputFlags(cmd)
			return app.OutputResult(info, format, outputPath)
		},
	}
	return cmd
}
