package cmd

import (
	"errors"
	"strconv"
	"strings"

	"github.com/restbind/restbind/internal/app"
	"github.com/spf13/cobra"
)

// getOutputFlags returns the global --format and -o/--output (path) from the root command.
// -o/--output = output path (file to write). --format/-F = output format (json|yaml|text|quiet).
func getOutputFlags(c *cobra.Command) (format string, outputPath string) {
	format, _ = c.Root().PersistentFlags().GetString("format")
	outputPath, _ = c.Root().PersistentFlags().GetString("output")
	return format, outputPath
}

// exitFor maps a use-case error to its ExitResult: binding and lookup
// failures exit 2, everything else 1. Errors that already carry an
// ExitResult pass through.
func exitFor(err error) error {
	var exit app.ExitResult
	if errors.As(err, &exit) {
		return exit
	}
	code := 1
	if app.BindingError(err) {
		code = 2
	}
	return app.ExitResult{Code: code, Message: err.Error(), ToStderr: true}
}

// splitOpRef splits a dotted "resource.operation" reference. Resource names
// never contain dots, so the first dot is the separator.
func splitOpRef(ref string) (resource, operation string, err error) {
	resource, operation, ok := strings.Cut(ref, ".")
	if !ok || resource == "" || operation == "" {
		return "", "", app.ExitResult{
			Code:     2,
			Message:  "expected <resource>.<operation>, got " + strconv.Quote(ref),
			ToStderr: true,
		}
	}
	return resource, operation, nil
}
