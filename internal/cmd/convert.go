package cmd

import (
	"github.com/restbind/restbind/internal/app"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <location>",
		Short: "Convert an api description to OpenAPI 3",
		Long: `Load an api description and emit the equivalent OpenAPI 3 document.

Resources become path items, operations keep their nicknames as
operationIds, and declared models become component schemas. The output
defaults to JSON; -F yaml or an output path ending in .yaml switches
to YAML.

Examples:
  restbind convert http://petstore.example.com/api-docs
  restbind convert ./api-docs.json -o openapi.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.ConvertDescription(cmd.Context(), args[0])
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			format, outputPath := getOutputFlags(cmd)
			return app.OutputResult(doc, format, outputPath, app.OutputFormatJSON)
		},
	}
	return cmd
}
