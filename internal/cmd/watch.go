package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/restbind/restbind/internal/app"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var (
		argPairs []string
		inputDoc string
	)

	cmd := &cobra.Command{
		Use:   "watch <location> <resource>.<operation>",
		Short: "Stream events from a websocket operation",
		Long: `Connect to a websocket operation and print each event as one JSON
line on stdout. Query parameters bind from --arg pairs the same way
call binds them. Interrupt with Ctrl-C to close the stream.

Examples:
  restbind watch http://petstore.example.com/api-docs pet.watchPets -a channel=pets
  restbind watch ./api-docs.json events.onEvent | jq .data`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, operation, err := splitOpRef(args[1])
			if err != nil {
				return err
			}
			callArgs, err := app.ParseCallArgs(argPairs, inputDoc)
			if err != nil {
				return app.ExitResult{Code: 2, Message: err.Error(), ToStderr: true}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			session, err := app.Watch(ctx, app.CallInput{
				Location:  args[0],
				Resource:  resource,
				Operation: operation,
				Args:      callArgs,
			})
			if err != nil {
				return exitFor(err)
			}
			defer session.Close()

			enc := json.NewEncoder(os.Stdout)
			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-session.Events():
					if !ok {
						return nil
					}
					line := app.ShapeEvent(ev)
					if line.Error != "" {
						fmt.Fprintf(os.Stderr, "stream error: %s\n", line.Error)
						continue
					}
					if err := enc.Encode(line); err != nil {
						return app.ExitResult{Code: 1, Message: fmt.Sprintf("write error: %v", err), ToStderr: true}
					}
				}
			}
		},
	}

	cmd.Flags().StringArrayVarP(&argPairs, "arg", "a", nil, "argument as name=value (repeatable)")
	cmd.Flags().StringVar(&inputDoc, "input", "", "argument document as inline JSON or @file")

	return cmd
}
