package cmd

import (
	"github.com/restbind/restbind/internal/app"
	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <location> <resource>.<operation>",
		Short: "Show one operation's parameters and documentation",
		Long: `Show the full declaration of a single operation: method, path
template, parameters with their types, return type and documented
error responses.

Examples:
  restbind describe http://petstore.example.com/api-docs pet.getPetById
  restbind describe ./api-docs.json pet.addPet -F json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, operation, err := splitOpRef(args[1])
			if err != nil {
				return err
			}
			client, op, err := app.ResolveOperation(cmd.Context(), args[0], resource, operation)
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			defer client.Close()

			result := app.BuildDescribe(op, args[0], resource)
			format, outputPath := getOutputFlags(cmd)
			return app.OutputResult(result, format, outputPath)
		},
	}
	return cmd
}
