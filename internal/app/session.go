// Package app implements the command handlers: loading descriptions,
// navigating resources, binding and dispatching calls, and rendering
// results for the terminal.
package app

import (
	"context"
	"log/slog"

	"github.com/restbind/restbind"
)

// LoadClient builds a bound client for the description at location.
func LoadClient(ctx context.Context, location string) (*restbind.Client, error) {
	return restbind.New(ctx, location, restbind.WithLogger(slog.Default()))
}

// ResolveOperation loads the description and walks to a single operation.
// The returned client owns the transport; callers close it when done.
func ResolveOperation(ctx context.Context, location, resource, nickname string) (*restbind.Client, *restbind.Operation, error) {
	client, err := LoadClient(ctx, location)
	if err != nil {
		return nil, nil, err
	}
	op, err := client.Operation(resource, nickname)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return client, op, nil
}
