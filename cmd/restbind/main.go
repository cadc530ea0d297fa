package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/restbind/restbind/internal/app"
	"github.com/restbind/restbind/internal/cmd"
)

func main() {
	root := cmd.NewRoot()
	if err := root.Execute(); err != nil {
		var exit app.ExitResult
		if errors.As(err, &exit) {
			if exit.Message != "" {
				out := os.Stdout
				if exit.UseStderr() {
					out = os.Stderr
				}
				fmt.Fprintln(out, exit.Message)
			}
			os.Exit(exit.ExitCode())
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
