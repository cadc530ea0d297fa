package cmd

import (
	"github.com/restbind/restbind/internal/app"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate <location>",
		Short: "Validate an api description",
		Long: `Validate the api description at a location and report every
structural problem found.

Fatal problems break the binding contract: duplicate resource names or
nicknames, missing declarations, operations without a method, more than
one body parameter. The rest are hazards that surface at call time,
such as references to models the declaration never defines.

Exit code 0 when valid, 1 when invalid, 2 when the description could
not be loaded at all.

Examples:
  restbind validate http://petstore.example.com/api-docs
  restbind validate ./api-docs.json --quiet
  restbind validate ./api-docs.json -F json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := app.ValidateDescription(cmd.Context(), args[0])

			format, outputPath := getOutputFlags(cmd)
			if quiet {
				format = "quiet"
			}
			return app.OutputResultWithCode(report, format, outputPath, report.ExitCode())
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress output, exit code only")

	return cmd
}
